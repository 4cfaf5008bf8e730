package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/calendar"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
)

// HandleGetCalendar returns the current month's reward calendar merged with
// the account's claim state.
func HandleGetCalendar(svc calendar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			log.Warn("Missing account_id query parameter")
			respondError(w, http.StatusBadRequest, "Missing account_id query parameter")
			return
		}

		status, err := svc.Status(r.Context(), accountID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to get calendar", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Calendar retrieved", "account_id", accountID, "month", status.Month)

		respondJSON(w, http.StatusOK, status)
	}
}

type ClaimCalendarDayRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	Day       int    `json:"day" validate:"min=1,max=31"`
	Premium   bool   `json:"premium"`
}

// HandleClaimCalendarDay claims today's calendar reward.
func HandleClaimCalendarDay(svc calendar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimCalendarDayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode claim calendar request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Claim calendar request", "account_id", req.AccountID, "day", req.Day, "premium", req.Premium)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid claim calendar request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Claim(r.Context(), req.AccountID, req.Day, req.Premium, time.Now().UTC())
		if err != nil {
			log.Error("Failed to claim calendar day", "error", err, "account_id", req.AccountID, "day", req.Day)
			respondServiceError(w, err)
			return
		}

		log.Info("Calendar day claimed",
			"account_id", req.AccountID,
			"day", result.Day,
			"flies", result.Flies,
			"streak", result.Streak)

		metrics.CalendarClaims.Inc()
		if result.Flies > 0 {
			metrics.FliesEarned.Add(float64(result.Flies))
		}

		respondJSON(w, http.StatusOK, result)
	}
}
