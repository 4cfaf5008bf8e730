package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing more we can do for the client
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto the wire and sends it
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Account messages
	ErrMsgAccountNotFoundError = "Account not found"

	// Item and wardrobe messages
	ErrMsgUnknownItemError  = "That item does not exist"
	ErrMsgNotOwnedError     = "You don't own that item"
	ErrMsgSlotMismatchError = "That item doesn't fit there"

	// Economy messages
	ErrMsgNotEnoughFliesError    = "Not enough flies"
	ErrMsgNotEnoughItemsError    = "Not enough of that item"
	ErrMsgInvalidTradeSetError   = "Trade-up needs ten items of the same rarity"
	ErrMsgNoRewardAvailableError = "No reward is available right now. Please try again later."

	// Milestone messages
	ErrMsgGiftLimitReachedError    = "You've claimed all gifts for today"
	ErrMsgMilestoneNotReachedError = "Complete more tasks to claim this gift"

	// Calendar messages
	ErrMsgWrongDayError       = "That reward isn't available today"
	ErrMsgAlreadyClaimedError = "You've already claimed this reward"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Validation problems map to 400, missing resources to 404,
// failed business preconditions to 409, and configuration faults to 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidTradeSet):
		return http.StatusBadRequest, ErrMsgInvalidTradeSetError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusNotFound, ErrMsgUnknownItemError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgNotEnoughFliesError
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusConflict, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusConflict, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrSlotMismatch):
		return http.StatusConflict, ErrMsgSlotMismatchError
	case errors.Is(err, domain.ErrGiftLimitReached):
		return http.StatusConflict, ErrMsgGiftLimitReachedError
	case errors.Is(err, domain.ErrMilestoneNotReached):
		return http.StatusConflict, ErrMsgMilestoneNotReachedError
	case errors.Is(err, domain.ErrWrongDay):
		return http.StatusConflict, ErrMsgWrongDayError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrNoRewardAvailable):
		return http.StatusInternalServerError, ErrMsgNoRewardAvailableError
	case errors.Is(err, domain.ErrNoRewardDefined):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
