package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/user"
)

// RegisterAccountRequest represents the request to create a new account.
type RegisterAccountRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50,excludesall=\x00\n\r\t"`
}

// HandleRegisterAccount creates a new account with a starter frog.
func HandleRegisterAccount(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid register request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		account, err := svc.Register(r.Context(), req.Username, time.Now().UTC())
		if err != nil {
			log.Error("Failed to register account", "error", err, "username", req.Username)
			respondServiceError(w, err)
			return
		}

		log.Info("Account registered", "account_id", account.ID, "username", account.Username)

		respondJSON(w, http.StatusCreated, account)
	}
}

// HandleGetProfile returns the account snapshot. Hunger is settled lazily on
// every read so the profile always reflects the decay up to now.
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID := chi.URLParam(r, "accountID")
		if accountID == "" {
			log.Warn("Missing account ID in profile request")
			respondError(w, http.StatusBadRequest, "Missing account ID")
			return
		}

		profile, err := svc.Profile(r.Context(), accountID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to get profile", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Profile retrieved", "account_id", accountID)

		respondJSON(w, http.StatusOK, profile)
	}
}
