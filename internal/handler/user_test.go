package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRegisterAccount(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			requestBody:    RegisterAccountRequest{Username: "kermit"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"kermit"`,
		},
		{
			name:           "Missing username",
			requestBody:    RegisterAccountRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name:           "Username too short",
			requestBody:    RegisterAccountRequest{Username: "k"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			handler := HandleRegisterAccount(env.userSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/accounts", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 42)

	router := chi.NewRouter()
	router.Get("/accounts/{accountID}", HandleGetProfile(env.userSvc))

	t.Run("Existing account", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/accounts/acc-1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"kermit"`)
		assert.Contains(t, w.Body.String(), `"balance":42`)
	})

	t.Run("Unknown account", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/accounts/nope", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgAccountNotFoundError)
	})
}
