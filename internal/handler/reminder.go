package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

type RecordActivityRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	Hour      int    `json:"hour" validate:"min=0,max=23"`
	Timezone  string `json:"timezone" validate:"max=64"`
}

// HandleRecordActivity ingests one local-time interaction hour and recomputes
// the account's preferred reminder slots.
func HandleRecordActivity(svc reminder.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecordActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode activity request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid activity request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.RecordActivity(r.Context(), req.AccountID, req.Hour, req.Timezone); err != nil {
			log.Error("Failed to record activity", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Activity recorded", "account_id", req.AccountID, "hour", req.Hour)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Activity recorded"})
	}
}

type RegisterDeviceRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	Token     string `json:"token" validate:"required,max=4096"`
	Timezone  string `json:"timezone" validate:"max=64"`
}

// HandleRegisterDevice enables reminders for the account and stores a push
// token. Registering the same token twice is a no-op.
func HandleRegisterDevice(svc reminder.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register device request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid register device request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if err := svc.RegisterDevice(r.Context(), req.AccountID, req.Token, req.Timezone); err != nil {
			log.Error("Failed to register device", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Info("Device registered", "account_id", req.AccountID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Device registered"})
	}
}

// HandleSweepReminders runs one reminder sweep immediately. The scheduler runs
// sweeps on its own; this endpoint exists for operators.
func HandleSweepReminders(svc reminder.Service, budget time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), budget)
		defer cancel()

		result, err := svc.EvaluateAndDispatch(ctx, time.Now().UTC())
		if err != nil {
			log.Error("Reminder sweep failed", "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Reminder sweep completed",
			"evaluated", result.Evaluated,
			"notified", result.Notified,
			"pruned", result.Pruned,
			"skipped", result.Skipped)

		metrics.RemindersSent.Add(float64(result.Notified))
		metrics.TokensPruned.Add(float64(result.Pruned))

		respondJSON(w, http.StatusOK, result)
	}
}
