package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/economy"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

type EquipItemRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	Slot      string `json:"slot" validate:"required,slot"`

	// ItemID empty means unequip the slot.
	ItemID string `json:"item_id" validate:"max=100"`
}

// HandleEquipItem equips an owned cosmetic to a wardrobe slot, or clears the
// slot when no item is given.
func HandleEquipItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EquipItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode equip request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Equip request", "account_id", req.AccountID, "slot", req.Slot, "item", req.ItemID)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid equip request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.Equip(r.Context(), req.AccountID, domain.Slot(req.Slot), req.ItemID); err != nil {
			log.Error("Failed to equip item", "error", err, "account_id", req.AccountID, "slot", req.Slot)
			respondServiceError(w, err)
			return
		}

		log.Info("Wardrobe updated", "account_id", req.AccountID, "slot", req.Slot, "item", req.ItemID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Wardrobe updated"})
	}
}

type MarkItemsSeenRequest struct {
	AccountID string   `json:"account_id" validate:"required,max=100"`
	ItemIDs   []string `json:"item_ids" validate:"required,min=1,max=100,dive,required,max=100"`
}

// HandleMarkItemsSeen clears the new-item badge for the given items.
func HandleMarkItemsSeen(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MarkItemsSeenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode mark seen request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid mark seen request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.MarkItemsSeen(r.Context(), req.AccountID, req.ItemIDs); err != nil {
			log.Error("Failed to mark items seen", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Items marked seen", "account_id", req.AccountID, "count", len(req.ItemIDs))

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Items marked seen"})
	}
}
