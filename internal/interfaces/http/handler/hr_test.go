package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	hrapp "github.com/b3erp/backend/internal/application/hr"
	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/export"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployed(ctx context.Context) ([]hr.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockLeaveRequestRepository struct {
	mock.Mock
}

func (m *MockLeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.LeaveRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindBlocking(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]hr.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, from, to)
	return args.Get(0).([]hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) Save(ctx context.Context, request *hr.LeaveRequest) error {
	return m.Called(ctx, request).Error(0)
}

type MockPayrollRunRepository struct {
	mock.Mock
}

func (m *MockPayrollRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.PayrollRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.PayrollRun, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]hr.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayrollRunRepository) ExistsForPeriod(ctx context.Context, periodStart time.Time) (bool, error) {
	args := m.Called(ctx, periodStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRunRepository) Save(ctx context.Context, run *hr.PayrollRun) error {
	return m.Called(ctx, run).Error(0)
}

type hrRig struct {
	router    *gin.Engine
	employees *MockEmployeeRepository
	leaves    *MockLeaveRequestRepository
	runs      *MockPayrollRunRepository
	numbers   *MockNumberGenerator
}

func setupHRRouter() *hrRig {
	rig := &hrRig{
		employees: new(MockEmployeeRepository),
		leaves:    new(MockLeaveRequestRepository),
		runs:      new(MockPayrollRunRepository),
		numbers:   new(MockNumberGenerator),
	}
	events := newQuietPublisher()
	logger := zap.NewNop()

	rig.router = gin.New()
	api := rig.router.Group("/api")
	NewEmployeeHandler(hrapp.NewEmployeeService(rig.employees, rig.leaves, rig.numbers, events, logger)).RegisterRoutes(api)
	NewLeaveHandler(hrapp.NewLeaveService(rig.leaves, rig.employees, rig.numbers, events, logger)).RegisterRoutes(api)
	NewPayrollHandler(hrapp.NewPayrollService(hrapp.PayrollServiceDeps{
		Runs:      rig.runs,
		Employees: rig.employees,
		Numbers:   rig.numbers,
		Events:    events,
		Logger:    logger,
	})).RegisterRoutes(api)
	return rig
}

func newInspector(t *testing.T, code string, employment hr.EmploymentType) *hr.Employee {
	t.Helper()
	e, err := hr.NewEmployee(code, hr.EmployeeProfile{
		FirstName:      "Priya",
		LastName:       "Nair",
		Email:          "priya@example.com",
		Department:     "Quality",
		Designation:    "Inspector",
		EmploymentType: employment,
		JoiningDate:    time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
		Compensation: hr.Compensation{
			BasicSalary:        decimal.NewFromInt(10000),
			HRA:                decimal.NewFromInt(4000),
			TransportAllowance: decimal.NewFromInt(1000),
		},
	})
	require.NoError(t, err)
	return e
}

const employeeBody = `{
	"first_name": "  priya ",
	"last_name": "nair",
	"email": "Priya@Example.com",
	"department": "Quality",
	"designation": "Inspector",
	"joining_date": "2023-04-01T00:00:00Z",
	"basic_salary": 10000,
	"hra": 4000,
	"transport_allowance": 1000
}`

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("hired on probation", func(t *testing.T) {
		rig := setupHRRouter()
		rig.employees.On("ExistsByEmail", mock.Anything, "priya@example.com", (*uuid.UUID)(nil)).Return(false, nil)
		rig.numbers.On("Next", mock.Anything, "EMPLOYEE").Return("EMP-0001", nil)
		rig.employees.On("Save", mock.Anything, mock.AnythingOfType("*hr.Employee")).Return(nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/employees", employeeBody)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "EMP-0001", data["employee_code"])
		assert.Equal(t, "Priya Nair", data["full_name"])
		assert.Equal(t, "probation", data["status"])
		assert.Equal(t, "full_time", data["employment_type"])
		assert.Equal(t, "15000", data["gross_salary"])
	})

	t.Run("email taken", func(t *testing.T) {
		rig := setupHRRouter()
		rig.employees.On("ExistsByEmail", mock.Anything, "priya@example.com", (*uuid.UUID)(nil)).Return(true, nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/employees", employeeBody)

		assert.Equal(t, http.StatusConflict, w.Code)
		rig.numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("malformed email", func(t *testing.T) {
		rig := setupHRRouter()
		w := performJSON(rig.router, http.MethodPost, "/api/hr/employees",
			`{"first_name":"A","last_name":"B","email":"nope","department":"Ops","designation":"Lead"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})
}

func TestEmployeeHandler_Separation(t *testing.T) {
	rig := setupHRRouter()
	employee := newInspector(t, "EMP-0002", hr.EmploymentFullTime)
	base := "/api/hr/employees/" + employee.ID.String()
	rig.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	rig.employees.On("Save", mock.Anything, employee).Return(nil)

	w := performJSON(rig.router, http.MethodPost, base+"/terminate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, hr.EmployeeProbation, employee.Status)

	w = performJSON(rig.router, http.MethodPost, base+"/resign", `{"exit_date":"2024-06-30T00:00:00Z","reason":"relocating"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "resigned", data["status"])
	assert.Equal(t, "2024-06-30T00:00:00Z", data["exit_date"])

	w = performJSON(rig.router, http.MethodPost, base+"/resign", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, decodeResponse(t, w).Error.Code)
}

func TestEmployeeHandler_StatisticsAndExport(t *testing.T) {
	rig := setupHRRouter()
	employee := newInspector(t, "EMP-0003", hr.EmploymentContract)
	rig.employees.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 0 && f.Filters["department"] == "Quality"
	})).Return([]hr.Employee{*employee}, nil)
	rig.leaves.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)

	w := performJSON(rig.router, http.MethodGet, "/api/hr/employees/statistics?department=Quality", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(1), data["total_employees"])
	assert.Equal(t, float64(3), data["pending_leave_requests"])

	w = performJSON(rig.router, http.MethodGet, "/api/hr/employees/export?department=Quality", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestLeaveHandler_Create(t *testing.T) {
	from := time.Now().AddDate(0, 0, 10).UTC().Truncate(24 * time.Hour)
	body := `{"employee_id":"%s","leave_type":"casual","from_date":"` + from.Format(time.RFC3339) +
		`","to_date":"` + from.AddDate(0, 0, 2).Format(time.RFC3339) + `","reason":"family event"}`

	t.Run("filed", func(t *testing.T) {
		rig := setupHRRouter()
		employee := newInspector(t, "EMP-0004", hr.EmploymentFullTime)
		rig.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		rig.leaves.On("FindBlocking", mock.Anything, employee.ID, mock.Anything, mock.Anything).Return([]hr.LeaveRequest{}, nil)
		rig.numbers.On("Next", mock.Anything, "LEAVE").Return("LV-0001", nil)
		rig.leaves.On("Save", mock.Anything, mock.AnythingOfType("*hr.LeaveRequest")).Return(nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/leave-requests", fmt.Sprintf(body, employee.ID))

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "LV-0001", data["request_number"])
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "3", data["days"])
		assert.Equal(t, "Priya Nair", data["employee_name"])
	})

	t.Run("overlap refused", func(t *testing.T) {
		rig := setupHRRouter()
		employee := newInspector(t, "EMP-0005", hr.EmploymentFullTime)
		existing, err := hr.NewLeaveRequest("LV-0009", employee, hr.LeaveType("casual"), from, from, false, "earlier")
		require.NoError(t, err)
		rig.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		rig.leaves.On("FindBlocking", mock.Anything, employee.ID, mock.Anything, mock.Anything).Return([]hr.LeaveRequest{*existing}, nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/leave-requests", fmt.Sprintf(body, employee.ID))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeResponse(t, w).Error.Message, "LV-0009")
		rig.leaves.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		rig := setupHRRouter()
		w := performJSON(rig.router, http.MethodPost, "/api/hr/leave-requests",
			fmt.Sprintf(`{"employee_id":"%s","leave_type":"sabbatical","from_date":"2024-01-01T00:00:00Z","to_date":"2024-01-02T00:00:00Z","reason":"x"}`, uuid.New()))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Decisions(t *testing.T) {
	rig := setupHRRouter()
	employee := newInspector(t, "EMP-0006", hr.EmploymentFullTime)
	from := time.Now().AddDate(0, 1, 0)
	request, err := hr.NewLeaveRequest("LV-0002", employee, hr.LeaveType("earned"), from, from.AddDate(0, 0, 4), false, "vacation")
	require.NoError(t, err)
	base := "/api/hr/leave-requests/" + request.ID.String()
	rig.leaves.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	rig.leaves.On("Save", mock.Anything, request).Return(nil)

	w := performJSON(rig.router, http.MethodGet, "/api/hr/leave-requests/stages", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]any), len(hr.LeaveApprovalStages))

	w = performJSON(rig.router, http.MethodPost, base+"/reject", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(rig.router, http.MethodPost, base+"/approve", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "approved", data["status"])
	assert.Equal(t, systemActor, data["approver_name"])
	assert.Equal(t, float64(len(hr.LeaveApprovalStages)), data["current_stage"])

	w = performJSON(rig.router, http.MethodPost, base+"/reject", `{"reason":"too late"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(rig.router, http.MethodPost, base+"/cancel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decodeResponse(t, w).Data.(map[string]any)["status"])
}

func TestPayrollHandler_Create(t *testing.T) {
	body := `{"period_start":"2024-06-01T00:00:00Z","period_end":"2024-06-30T00:00:00Z","pay_date":"2024-07-01T00:00:00Z"}`

	t.Run("draft run", func(t *testing.T) {
		rig := setupHRRouter()
		rig.runs.On("ExistsForPeriod", mock.Anything, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(false, nil)
		rig.numbers.On("Next", mock.Anything, "PAYROLL").Return("PR-2024-06", nil)
		rig.runs.On("Save", mock.Anything, mock.AnythingOfType("*hr.PayrollRun")).Return(nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/payroll-runs", body)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "PR-2024-06", data["run_number"])
		assert.Equal(t, "draft", data["status"])
	})

	t.Run("period already covered", func(t *testing.T) {
		rig := setupHRRouter()
		rig.runs.On("ExistsForPeriod", mock.Anything, mock.Anything).Return(true, nil)

		w := performJSON(rig.router, http.MethodPost, "/api/hr/payroll-runs", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		rig.numbers.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("pay date before period end", func(t *testing.T) {
		rig := setupHRRouter()
		w := performJSON(rig.router, http.MethodPost, "/api/hr/payroll-runs",
			`{"period_start":"2024-06-01T00:00:00Z","period_end":"2024-06-30T00:00:00Z","pay_date":"2024-06-15T00:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_Workflow(t *testing.T) {
	rig := setupHRRouter()
	employee := newInspector(t, "EMP-0007", hr.EmploymentFullTime)
	run, err := hr.NewPayrollRun("PR-2024-06",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	base := "/api/hr/payroll-runs/" + run.ID.String()
	rig.runs.On("FindByID", mock.Anything, run.ID).Return(run, nil)
	rig.runs.On("Save", mock.Anything, run).Return(nil)
	rig.employees.On("FindEmployed", mock.Anything).Return([]hr.Employee{*employee}, nil)

	w := performJSON(rig.router, http.MethodPost, base+"/process", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "processed", data["status"])
	assert.Equal(t, float64(1), data["employee_count"])
	assert.Equal(t, "15000", data["total_gross"])
	assert.Equal(t, "3012.5", data["total_deductions"])
	assert.Equal(t, "11987.5", data["total_net"])

	w = performJSON(rig.router, http.MethodPost, base+"/pay", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(rig.router, http.MethodPost, base+"/approve", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, systemActor, decodeResponse(t, w).Data.(map[string]any)["approved_by"])

	w = performJSON(rig.router, http.MethodPost, base+"/pay", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", decodeResponse(t, w).Data.(map[string]any)["status"])

	w = performJSON(rig.router, http.MethodPost, base+"/cancel", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(rig.router, http.MethodGet, "/api/hr/payroll-runs/stages", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]any), len(hr.PayrollStages))
}
