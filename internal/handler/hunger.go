package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/hunger"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

type SettleHungerRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
}

type SettleHungerResponse struct {
	HungerMS    int64 `json:"hunger_ms"`
	Balance     int   `json:"balance"`
	StolenFlies int   `json:"stolen_flies"`
}

// HandleSettleHunger forces a hunger settlement for the account. Settlement
// also happens lazily on profile reads; this endpoint exists for clients that
// want fresh decay state without the full profile.
func HandleSettleHunger(svc hunger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SettleHungerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode settle hunger request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid settle hunger request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		account, err := svc.Settle(r.Context(), req.AccountID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to settle hunger", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Hunger settled",
			"account_id", req.AccountID,
			"hunger_ms", account.Hunger.Milliseconds(),
			"stolen_flies", account.StolenFlies)

		respondJSON(w, http.StatusOK, SettleHungerResponse{
			HungerMS:    account.Hunger.Milliseconds(),
			Balance:     account.Balance,
			StolenFlies: account.StolenFlies,
		})
	}
}

type AckStolenFliesRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
}

// HandleAckStolenFlies clears the stolen-flies counter after the client has
// shown the loss to the user. Idempotent.
func HandleAckStolenFlies(svc hunger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AckStolenFliesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode ack request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid ack request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if _, err := svc.Acknowledge(r.Context(), req.AccountID); err != nil {
			log.Error("Failed to acknowledge stolen flies", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Info("Stolen flies acknowledged", "account_id", req.AccountID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Acknowledged"})
	}
}
