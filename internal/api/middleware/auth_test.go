package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name            string
		cookie          *http.Cookie
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedMessage string
		expectValidate  bool
	}{
		{
			name:           "valid token",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: "valid-token"},
			claims:         &auth.Claims{UserID: userID, Email: "ada@example.com"},
			expectedStatus: http.StatusOK,
			expectValidate: true,
		},
		{
			name:            "missing cookie",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
		},
		{
			name:            "empty cookie",
			cookie:          &http.Cookie{Name: AccessTokenCookie, Value: ""},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
		},
		{
			name:            "token in another cookie",
			cookie:          &http.Cookie{Name: "refreshToken", Value: "refresh"},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
		},
		{
			name:            "expired token",
			cookie:          &http.Cookie{Name: AccessTokenCookie, Value: "expired-token"},
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Access token expired",
			expectValidate:  true,
		},
		{
			name:            "invalid token",
			cookie:          &http.Cookie{Name: AccessTokenCookie, Value: "invalid-token"},
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
			expectValidate:  true,
		},
		{
			name:            "wrong token type",
			cookie:          &http.Cookie{Name: AccessTokenCookie, Value: "refresh-token"},
			validateErr:     auth.ErrWrongTokenType,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
			expectValidate:  true,
		},
		{
			name:            "unexpected validation error stays opaque",
			cookie:          &http.Cookie{Name: AccessTokenCookie, Value: "token"},
			validateErr:     errors.New("secret key at /etc/tasker/key is unreadable"),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Unauthorized",
			expectValidate:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validated := false
			jwtService := &mocks.MockJWTService{
				ValidateAccessTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					validated = true
					return tt.claims, tt.validateErr
				},
			}

			var capturedUserID uuid.UUID
			var capturedEmail string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedUserID, _ = shared.UserIDFromContext(r.Context())
				capturedEmail = shared.UserEmailFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectValidate, validated)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, capturedUserID)
				assert.Equal(t, "ada@example.com", capturedEmail)
				return
			}

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.NotContains(t, rr.Body.String(), "/etc/tasker")
			assert.Equal(t, uuid.Nil, capturedUserID)
		})
	}
}
