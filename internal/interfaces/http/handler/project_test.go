package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	projectapp "github.com/b3erp/backend/internal/application/project"
	"github.com/b3erp/backend/internal/domain/project"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]project.Task, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]project.Task), args.Error(1)
}

func (m *MockProjectRepository) CountTasks(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func setupProjectRouter() (*gin.Engine, *MockProjectRepository, *MockNumberGenerator) {
	repo := new(MockProjectRepository)
	numbers := new(MockNumberGenerator)
	svc := projectapp.NewProjectService(repo, numbers, newQuietPublisher(), zap.NewNop())
	router := gin.New()
	NewProjectHandler(svc).RegisterRoutes(router.Group("/api"))
	return router, repo, numbers
}

// newLineUpgrade plans a project far enough ahead that it stays on track
func newLineUpgrade(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.NewProject("PRJ-0001", project.Details{
		Name:             "Line 3 upgrade",
		PlannedStartDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		PlannedEndDate:   time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC),
		Budget:           decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	return p
}

func TestProjectHandler_Create(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		router, repo, numbers := setupProjectRouter()
		numbers.On("Next", mock.Anything, "PROJECT").Return("PRJ-0007", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*project.Project")).Return(nil)

		w := performJSON(router, http.MethodPost, "/api/projects",
			`{"name":"ERP rollout","planned_start_date":"2030-01-01T00:00:00Z","planned_end_date":"2030-03-31T00:00:00Z","budget":"12000.5"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "PRJ-0007", data["project_code"])
		assert.Equal(t, "draft", data["status"])
		assert.Equal(t, "medium", data["priority"])
		assert.Equal(t, "on_track", data["health"])
		assert.Equal(t, "12000.5", data["budget"])
	})

	t.Run("end before start", func(t *testing.T) {
		router, _, numbers := setupProjectRouter()
		numbers.On("Next", mock.Anything, "PROJECT").Return("PRJ-0008", nil)

		w := performJSON(router, http.MethodPost, "/api/projects",
			`{"name":"Backwards","planned_start_date":"2030-03-01T00:00:00Z","planned_end_date":"2030-01-01T00:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
	})

	t.Run("missing dates", func(t *testing.T) {
		router, _, numbers := setupProjectRouter()
		numbers.On("Next", mock.Anything, "PROJECT").Return("PRJ-0009", nil).Maybe()

		w := performJSON(router, http.MethodPost, "/api/projects", `{"name":"Undated"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProjectHandler_StatusWorkflow(t *testing.T) {
	router, repo, _ := setupProjectRouter()
	p := newLineUpgrade(t)
	base := "/api/projects/" + p.ID.String()
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)
	repo.On("Delete", mock.Anything, p.ID).Return(nil)

	w := performJSON(router, http.MethodPost, base+"/status", `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(router, http.MethodPost, base+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, base+"/status", `{"status":"planned"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodPost, base+"/status", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "in_progress", data["status"])
	assert.NotNil(t, data["actual_start_date"])

	w = performJSON(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(router, http.MethodPost, base+"/status", `{"status":"cancelled","reason":"budget withdrawn"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodPut, base,
		`{"name":"Renamed","planned_start_date":"2030-01-01T00:00:00Z","planned_end_date":"2030-06-30T00:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertCalled(t, "Delete", mock.Anything, p.ID)
}

func TestProjectHandler_TasksAndMilestones(t *testing.T) {
	router, repo, _ := setupProjectRouter()
	p := newLineUpgrade(t)
	base := "/api/projects/" + p.ID.String()
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	w := performJSON(router, http.MethodPost, base+"/milestones", `{"name":"Commissioning","due_date":"2030-05-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	milestoneID := decodeResponse(t, w).Data.(map[string]any)["id"].(string)

	w = performJSON(router, http.MethodPost, base+"/tasks",
		fmt.Sprintf(`{"title":"Install conveyor","milestone_id":%q,"estimated_hours":"30","status":"done"}`, milestoneID))
	require.Equal(t, http.StatusCreated, w.Code)
	task := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "PRJ-0001-T001", task["task_code"])
	assert.Equal(t, float64(100), task["percent_complete"])

	w = performJSON(router, http.MethodPost, base+"/tasks", `{"title":"Train operators","estimated_hours":"10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	trainingID := decodeResponse(t, w).Data.(map[string]any)["id"].(string)

	w = performJSON(router, http.MethodPost, base+"/tasks",
		fmt.Sprintf(`{"title":"Orphan","milestone_id":%q}`, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, base+"/tasks", `{"title":"Overdone","percent_complete":120}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodGet, base+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(2), summary["total_tasks"])
	assert.Equal(t, float64(75), summary["progress"])
	assert.Equal(t, "40", summary["estimated_hours"])
	assert.Equal(t, float64(1), summary["milestones_total"])
	assert.Equal(t, "on_track", summary["health"])

	w = performJSON(router, http.MethodPut, base+"/tasks/"+trainingID,
		`{"title":"Train operators","estimated_hours":"10","percent_complete":50,"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", decodeResponse(t, w).Data.(map[string]any)["status"])
	assert.Equal(t, "87.5", p.Progress.String())

	w = performJSON(router, http.MethodPut, base+"/tasks/"+uuid.NewString(), `{"title":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(router, http.MethodPost, base+"/milestones/"+milestoneID+"/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decodeResponse(t, w).Data.(map[string]any)["status"])

	w = performJSON(router, http.MethodPost, base+"/milestones/"+milestoneID+"/complete", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(router, http.MethodPost, base+"/milestones/not-a-uuid/complete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid milestone ID format", decodeResponse(t, w).Error.Message)

	w = performJSON(router, http.MethodGet, base+"/milestones", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]any), 1)
}

func TestProjectHandler_Dependencies(t *testing.T) {
	router, repo, _ := setupProjectRouter()
	p := newLineUpgrade(t)
	design, err := p.AddTask(project.TaskInput{Title: "Design"})
	require.NoError(t, err)
	designID := design.ID
	build, err := p.AddTask(project.TaskInput{Title: "Build"})
	require.NoError(t, err)
	buildID := build.ID
	base := "/api/projects/" + p.ID.String() + "/tasks/"
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	w := performJSON(router, http.MethodPost, base+buildID.String()+"/dependencies",
		fmt.Sprintf(`{"predecessor_id":%q,"lag_days":2}`, designID))
	require.Equal(t, http.StatusCreated, w.Code)
	dep := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "FS", dep["dependency_type"])
	assert.Equal(t, designID.String(), dep["predecessor_id"])
	dependencyID := dep["id"].(string)

	w = performJSON(router, http.MethodPost, base+buildID.String()+"/dependencies",
		fmt.Sprintf(`{"predecessor_id":%q}`, designID))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(router, http.MethodPost, base+designID.String()+"/dependencies",
		fmt.Sprintf(`{"predecessor_id":%q}`, buildID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w).Error.Message, "cycle")

	w = performJSON(router, http.MethodPost, base+designID.String()+"/dependencies",
		fmt.Sprintf(`{"predecessor_id":%q}`, designID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, base+designID.String()+"/dependencies",
		fmt.Sprintf(`{"predecessor_id":%q,"dependency_type":"XX"}`, buildID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodDelete, base+buildID.String()+"/dependencies/"+dependencyID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, p.Dependencies)

	w = performJSON(router, http.MethodDelete, base+buildID.String()+"/dependencies/"+dependencyID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Lists(t *testing.T) {
	router, repo, _ := setupProjectRouter()
	p := newLineUpgrade(t)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "draft" && f.Page == 1 && f.PageSize == 20
	})).Return([]project.Project{*p}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("FindTasks", mock.Anything, p.ID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["assignee"] == "Ravi" && f.PageSize == 5
	})).Return([]project.Task{}, nil)
	repo.On("CountTasks", mock.Anything, p.ID, mock.Anything).Return(int64(7), nil)
	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.NotFound("project"))

	w := performJSON(router, http.MethodGet, "/api/projects?status=draft", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeResponse(t, w).Meta.Total)

	w = performJSON(router, http.MethodGet, "/api/projects?health=unknown", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodGet, "/api/projects/"+p.ID.String()+"/tasks?assignee=Ravi&page_size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	w = performJSON(router, http.MethodGet, "/api/projects/"+missing.String()+"/tasks", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(router, http.MethodGet, "/api/projects/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
