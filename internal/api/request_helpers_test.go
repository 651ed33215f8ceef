package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(ctx context.Context, name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/tasks/"+value, nil)
	rctx := chi.NewRouteContext()
	if name != "" {
		rctx.URLParams.Add(name, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestGetPathUUID(t *testing.T) {
	validID := uuid.New()

	tests := []struct {
		name    string
		param   string
		value   string
		wantID  uuid.UUID
		wantErr bool
	}{
		{name: "valid", param: "id", value: validID.String(), wantID: validID},
		{name: "missing", param: "", value: "", wantErr: true},
		{name: "not a uuid", param: "id", value: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := getPathUUID(requestWithParam(context.Background(), tt.param, tt.value), "id")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestHandleUserIDAndPathUUID(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	authed := shared.WithUser(context.Background(), userID, "ada@example.com")

	tests := []struct {
		name        string
		ctx         context.Context
		value       string
		wantOK      bool
		wantStatus  int
		wantMessage string
	}{
		{name: "both present", ctx: authed, value: taskID.String(), wantOK: true},
		{
			name:        "no user",
			ctx:         context.Background(),
			value:       taskID.String(),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized",
		},
		{
			name:        "bad id",
			ctx:         authed,
			value:       "not-a-uuid",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid task ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			gotUser, gotTask, ok := handleUserIDAndPathUUID(rr, requestWithParam(tt.ctx, "id", tt.value), "id")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, userID, gotUser)
				assert.Equal(t, taskID, gotTask)
				return
			}
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, responseMessage(t, rr))
		})
	}
}

func TestHandleUserID(t *testing.T) {
	rr := httptest.NewRecorder()
	_, ok := handleUserID(rr, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
