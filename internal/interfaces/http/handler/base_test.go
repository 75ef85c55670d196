package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/b3erp/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(middleware.RequestIDKey, "ctx-request-id") },
			expectedID: "ctx-request-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-request-id") },
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext("GET", "/")
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestActorAndUserID(t *testing.T) {
	c, _ := newTestContext("GET", "/")
	assert.Equal(t, "system", actor(c))
	_, err := getUserID(c)
	assert.Error(t, err)

	id := uuid.New()
	c.Set(middleware.AuthUsernameKey, "priya")
	c.Set(middleware.AuthUserIDKey, id.String())
	assert.Equal(t, "priya", actor(c))
	got, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
		total              int64
		wantTotalPages     int
	}{
		{"explicit paging", 2, 10, 2, 10, 25, 3},
		{"defaults applied", 0, 0, 1, 20, 41, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext("GET", "/")
			h.SuccessWithMeta(c, []string{"a"}, tt.total, tt.page, tt.size)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.wantPage, resp.Meta.Page)
			assert.Equal(t, tt.wantSize, resp.Meta.PageSize)
			assert.Equal(t, tt.wantTotalPages, resp.Meta.TotalPages)
		})
	}
}

func TestBaseHandlerCreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext("POST", "/")
	h.Created(c, gin.H{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)

	c, w = newTestContext("DELETE", "/")
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", shared.NotFound("invoice"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"invalid input", shared.InvalidInput("bad"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
		{"invalid state", shared.InvalidState("posted"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"wrapped", fmt.Errorf("loading: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"unknown", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext("GET", "/")
			c.Set(middleware.RequestIDKey, "req-42")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError_HidesAndLogsUnknownErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := &BaseHandler{}
	c, w := newTestContext("GET", "/")
	c.Set(logger.GinLoggerKey, zap.New(core))

	h.HandleError(c, fmt.Errorf("pq: connection refused"))

	resp := decodeResponse(t, w)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.Equal(t, 1, logs.FilterMessage("Unhandled error").Len())
	assert.Len(t, c.Errors, 1)
}

func TestBaseHandlerHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext("GET", "/")
	h.HandleError(c, nil)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerBinding(t *testing.T) {
	type body struct {
		Name string `json:"name" binding:"required"`
	}
	type query struct {
		Page int `form:"page" binding:"omitempty,min=1"`
	}

	h := &BaseHandler{}
	router := gin.New()
	router.POST("/items/:id", func(c *gin.Context) {
		if _, ok := h.parseID(c, "id", "item"); !ok {
			return
		}
		var q query
		if !h.bindQuery(c, &q) {
			return
		}
		var b body
		if !h.bindJSON(c, &b) {
			return
		}
		h.Success(c, b)
	})
	router.POST("/optional", func(c *gin.Context) {
		var b body
		if !h.bindOptionalJSON(c, &b) {
			return
		}
		h.Success(c, b)
	})

	serve := func(target, payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", target, strings.NewReader(payload))
		if payload == "" {
			req = httptest.NewRequest("POST", target, nil)
		}
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	id := uuid.NewString()

	w := serve("/items/not-a-uuid", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid item ID format", decodeResponse(t, w).Error.Message)

	w = serve("/items/"+id+"?page=0x", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)

	w = serve("/items/"+id, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "name", resp.Error.Details[0].Field)

	assert.Equal(t, http.StatusOK, serve("/items/"+id+"?page=2", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusOK, serve("/optional", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve("/optional", `{}`).Code)
}
