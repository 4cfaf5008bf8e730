package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "Invalid input maps to 400",
			err:            domain.ErrInvalidInput,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    ErrMsgInvalidRequestError,
		},
		{
			name:           "Invalid trade set maps to 400",
			err:            domain.ErrInvalidTradeSet,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    ErrMsgInvalidTradeSetError,
		},
		{
			name:           "Account not found maps to 404",
			err:            domain.ErrAccountNotFound,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    ErrMsgAccountNotFoundError,
		},
		{
			name:           "Unknown item maps to 404",
			err:            domain.ErrUnknownItem,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    ErrMsgUnknownItemError,
		},
		{
			name:           "Insufficient funds maps to 409",
			err:            domain.ErrInsufficientFunds,
			expectedStatus: http.StatusConflict,
			expectedMsg:    ErrMsgNotEnoughFliesError,
		},
		{
			name:           "Already claimed maps to 409",
			err:            domain.ErrAlreadyClaimed,
			expectedStatus: http.StatusConflict,
			expectedMsg:    ErrMsgAlreadyClaimedError,
		},
		{
			name:           "Gift limit maps to 409",
			err:            domain.ErrGiftLimitReached,
			expectedStatus: http.StatusConflict,
			expectedMsg:    ErrMsgGiftLimitReachedError,
		},
		{
			name:           "Empty reward pool maps to 500",
			err:            domain.ErrNoRewardAvailable,
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrMsgNoRewardAvailableError,
		},
		{
			name:           "Wrapped errors unwrap to their sentinel",
			err:            fmt.Errorf("%w: item hat_leaf x3", domain.ErrInsufficientFunds),
			expectedStatus: http.StatusConflict,
			expectedMsg:    ErrMsgNotEnoughFliesError,
		},
		{
			name:           "Unknown error maps to generic 500",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrMsgGenericServerError,
		},
		{
			name:           "Nil error maps to 500",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrMsgUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, msg)
		})
	}
}
