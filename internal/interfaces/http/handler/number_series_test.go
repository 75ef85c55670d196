package handler

import (
	"context"
	"net/http"
	"testing"

	settingsapp "github.com/b3erp/backend/internal/application/settings"
	"github.com/b3erp/backend/internal/domain/settings"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNumberSeriesRepository struct {
	mock.Mock
}

func (m *MockNumberSeriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.NumberSeries, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.NumberSeries), args.Error(1)
}

func (m *MockNumberSeriesRepository) FindByCode(ctx context.Context, code string) (*settings.NumberSeries, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.NumberSeries), args.Error(1)
}

func (m *MockNumberSeriesRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settings.NumberSeries, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]settings.NumberSeries), args.Error(1)
}

func (m *MockNumberSeriesRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNumberSeriesRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockNumberSeriesRepository) Save(ctx context.Context, series *settings.NumberSeries) error {
	return m.Called(ctx, series).Error(0)
}

func (m *MockNumberSeriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNumberSeriesRepository) WithLocked(ctx context.Context, code string, fn func(*settings.NumberSeries) error) error {
	args := m.Called(ctx, code)
	if err := args.Error(1); err != nil {
		return err
	}
	return fn(args.Get(0).(*settings.NumberSeries))
}

func setupNumberSeriesRouter() (*gin.Engine, *MockNumberSeriesRepository) {
	repo := new(MockNumberSeriesRepository)
	svc := settingsapp.NewNumberSeriesService(repo, newQuietPublisher())
	router := gin.New()
	NewNumberSeriesHandler(svc).RegisterRoutes(router.Group("/api"))
	return router, repo
}

func newInvoiceSeries(t *testing.T) *settings.NumberSeries {
	t.Helper()
	s, err := settings.NewNumberSeries("INV", "Invoices", "finance",
		settings.FormatRule{Prefix: "INV", Separator: "-", Padding: 4}, settings.ResetNever)
	require.NoError(t, err)
	return s
}

func TestNumberSeriesHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, repo := setupNumberSeriesRouter()
		repo.On("ExistsByCode", mock.Anything, "SO").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*settings.NumberSeries")).Return(nil)

		w := performJSON(router, http.MethodPost, "/api/settings/number-series",
			`{"code":"SO","name":"Sales orders","prefix":"SO","padding":5}`)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "SO", data["code"])
		assert.Equal(t, "SO-00001", data["preview"])
		assert.Equal(t, "never", data["reset_policy"])
	})

	t.Run("duplicate code", func(t *testing.T) {
		router, repo := setupNumberSeriesRouter()
		repo.On("ExistsByCode", mock.Anything, "SO").Return(true, nil)

		w := performJSON(router, http.MethodPost, "/api/settings/number-series", `{"code":"SO","name":"Sales orders"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeResponse(t, w).Error.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		router, _ := setupNumberSeriesRouter()
		w := performJSON(router, http.MethodPost, "/api/settings/number-series", `{"code":"SO"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})
}

func TestNumberSeriesHandler_List(t *testing.T) {
	router, repo := setupNumberSeriesRouter()
	series := newInvoiceSeries(t)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["module"] == "finance" && f.Page == 1
	})).Return([]settings.NumberSeries{*series}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	w := performJSON(router, http.MethodGet, "/api/settings/number-series?module=finance", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, dto.DefaultPageSize, resp.Meta.PageSize)
	assert.Len(t, resp.Data.([]any), 1)
}

func TestNumberSeriesHandler_Lookup(t *testing.T) {
	router, repo := setupNumberSeriesRouter()
	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.NotFound("number series"))

	t.Run("malformed id", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/api/settings/number-series/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid number series ID format", decodeResponse(t, w).Error.Message)
	})

	t.Run("not found", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/api/settings/number-series/"+missing.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
	})
}

func TestNumberSeriesHandler_Allocation(t *testing.T) {
	router, repo := setupNumberSeriesRouter()
	series := newInvoiceSeries(t)
	base := "/api/settings/number-series/" + series.ID.String()
	repo.On("FindByID", mock.Anything, series.ID).Return(series, nil)
	repo.On("WithLocked", mock.Anything, "INV").Return(series, nil)
	repo.On("Save", mock.Anything, series).Return(nil)

	w := performJSON(router, http.MethodGet, base+"/preview", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-0001", decodeResponse(t, w).Data.(map[string]any)["value"])

	w = performJSON(router, http.MethodPost, base+"/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "INV", data["code"])
	assert.Equal(t, "INV-0001", data["value"])
	assert.Equal(t, int64(2), series.NextNumber)

	w = performJSON(router, http.MethodPost, base+"/reset", `{"start":50}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(50), decodeResponse(t, w).Data.(map[string]any)["next_number"])

	w = performJSON(router, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), series.NextNumber)

	t.Run("inactive series refuses", func(t *testing.T) {
		series.Deactivate()
		defer series.Activate()
		w := performJSON(router, http.MethodPost, base+"/next", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeResponse(t, w).Error.Code)
	})
}

func TestNumberSeriesHandler_FormatPreview(t *testing.T) {
	router, _ := setupNumberSeriesRouter()

	w := performJSON(router, http.MethodPost, "/api/settings/number-series/format",
		`{"prefix":"PO","padding":3,"sequence":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PO-007", decodeResponse(t, w).Data.(map[string]any)["value"])

	w = performJSON(router, http.MethodPost, "/api/settings/number-series/format", `{"padding":40}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNumberSeriesHandler_Delete(t *testing.T) {
	router, repo := setupNumberSeriesRouter()
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	w := performJSON(router, http.MethodDelete, "/api/settings/number-series/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
