package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/economy"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
)

type PurchaseItemRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	ItemID    string `json:"item_id" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100"`
}

// HandlePurchaseItem buys catalog items with flies.
func HandlePurchaseItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode purchase request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Purchase request", "account_id", req.AccountID, "item", req.ItemID, "quantity", req.Quantity)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid purchase request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Purchase(r.Context(), req.AccountID, req.ItemID, req.Quantity)
		if err != nil {
			log.Error("Failed to purchase item", "error", err, "account_id", req.AccountID, "item", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item purchased",
			"account_id", req.AccountID,
			"item", result.ItemID,
			"quantity", result.Quantity,
			"cost", result.Cost)

		metrics.ItemsPurchased.WithLabelValues(result.ItemID).Add(float64(result.Quantity))
		metrics.FliesSpent.Add(float64(result.Cost))

		respondJSON(w, http.StatusOK, result)
	}
}

type SellItemRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	ItemID    string `json:"item_id" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100"`
}

// HandleSellItem sells owned items back for half price.
func HandleSellItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SellItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sell request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Sell request", "account_id", req.AccountID, "item", req.ItemID, "quantity", req.Quantity)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid sell request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Sell(r.Context(), req.AccountID, req.ItemID, req.Quantity)
		if err != nil {
			log.Error("Failed to sell item", "error", err, "account_id", req.AccountID, "item", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item sold",
			"account_id", req.AccountID,
			"item", result.ItemID,
			"quantity", result.Quantity,
			"proceeds", result.Proceeds)

		metrics.ItemsSold.WithLabelValues(result.ItemID).Add(float64(result.Quantity))
		metrics.FliesEarned.Add(float64(result.Proceeds))

		respondJSON(w, http.StatusOK, result)
	}
}

type TradeUpRequest struct {
	AccountID string   `json:"account_id" validate:"required,max=100"`
	ItemIDs   []string `json:"item_ids" validate:"required,len=10,dive,required,max=100"`
}

// HandleTradeUp consumes ten same-rarity items for one of the next tier.
func HandleTradeUp(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TradeUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode trade-up request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Trade-up request", "account_id", req.AccountID, "items", len(req.ItemIDs))

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid trade-up request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.TradeUp(r.Context(), req.AccountID, req.ItemIDs)
		if err != nil {
			log.Error("Failed to trade up", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Info("Trade-up completed",
			"account_id", req.AccountID,
			"reward", result.ItemID,
			"rarity", result.Rarity)

		metrics.TradeUps.WithLabelValues(string(result.Rarity)).Inc()

		respondJSON(w, http.StatusOK, result)
	}
}

type OpenGiftRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	ItemID    string `json:"item_id" validate:"required,max=100"`
}

// HandleOpenGift consumes a gift container and rolls its reward.
func HandleOpenGift(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req OpenGiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode open gift request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Open gift request", "account_id", req.AccountID, "item", req.ItemID)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid open gift request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.OpenGift(r.Context(), req.AccountID, req.ItemID)
		if err != nil {
			log.Error("Failed to open gift", "error", err, "account_id", req.AccountID, "item", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Gift opened",
			"account_id", req.AccountID,
			"gift", req.ItemID,
			"reward", result.ItemID,
			"rarity", result.Rarity)

		metrics.GiftsOpened.WithLabelValues(string(result.Rarity)).Inc()

		respondJSON(w, http.StatusOK, result)
	}
}

type ShopItemsResponse struct {
	Items []domain.Item `json:"items"`
}

// HandleGetShopItems lists the full catalog.
func HandleGetShopItems(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ShopItemsResponse{Items: cat.Items()})
	}
}
