package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
	"github.com/pondkeeper/pondkeeper/internal/progression"
)

type CompleteTaskRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	TaskID    string `json:"task_id" validate:"required,max=100"`
}

// HandleCompleteTask records a task completion and pays the fly and hunger
// rewards. Repeat completions of the same task on the same day award nothing.
func HandleCompleteTask(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CompleteTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode complete task request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Debug("Complete task request", "account_id", req.AccountID, "task", req.TaskID)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid complete task request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.CompleteTask(r.Context(), req.AccountID, req.TaskID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to complete task", "error", err, "account_id", req.AccountID, "task", req.TaskID)
			respondServiceError(w, err)
			return
		}

		log.Info("Task completion recorded",
			"account_id", req.AccountID,
			"task", req.TaskID,
			"awarded", result.Awarded,
			"completed_today", result.CompletedToday)

		if result.Awarded {
			metrics.TasksCompleted.Inc()
			metrics.FliesEarned.Add(float64(result.Flies))
		}

		respondJSON(w, http.StatusOK, result)
	}
}

type MilestonesResponse struct {
	Slots []progression.Slot `json:"slots"`
}

// HandleGetMilestones returns today's three milestone gift slots.
func HandleGetMilestones(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			log.Warn("Missing account_id query parameter")
			respondError(w, http.StatusBadRequest, "Missing account_id query parameter")
			return
		}

		slots, err := svc.Slots(r.Context(), accountID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to get milestones", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		log.Debug("Milestones retrieved", "account_id", accountID)

		respondJSON(w, http.StatusOK, MilestonesResponse{Slots: slots})
	}
}

type ClaimMilestoneRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
}

// HandleClaimMilestone claims the next ready milestone gift for today.
func HandleClaimMilestone(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimMilestoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode claim milestone request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid claim milestone request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.ClaimGift(r.Context(), req.AccountID, time.Now().UTC())
		if err != nil {
			log.Error("Failed to claim milestone gift", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Info("Milestone gift claimed",
			"account_id", req.AccountID,
			"slot", result.SlotIndex,
			"gift", result.GiftItemID,
			"claimed_today", result.ClaimedToday)

		metrics.MilestoneClaims.Inc()

		respondJSON(w, http.StatusOK, result)
	}
}
