package handler

import (
	"context"
	"io"
	"time"

	hrapp "github.com/b3erp/backend/internal/application/hr"
	"github.com/b3erp/backend/internal/infrastructure/export"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeHandler handles employee records
type EmployeeHandler struct {
	BaseHandler
	service *hrapp.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(service *hrapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List godoc
// @ID           listEmployees
// @Summary      List employees
// @Tags         hr
// @Produce      json
// @Param        search query string false "Search by code, name or email"
// @Param        department query string false "Department"
// @Param        status query string false "Status" Enums(active, on_leave, probation, resigned, terminated)
// @Param        employment_type query string false "Employment type" Enums(full_time, part_time, contract, intern)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter hrapp.EmployeeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createEmployee
// @Summary      Hire an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} Envelope[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req hrapp.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// Statistics godoc
// @ID           employeeStatistics
// @Summary      Summarise the workforce
// @Tags         hr
// @Produce      json
// @Param        department query string false "Department"
// @Success      200 {object} Envelope[hrapp.EmployeeStatisticsResponse]
// @Security     BearerAuth
// @Router       /hr/employees/statistics [get]
func (h *EmployeeHandler) Statistics(c *gin.Context) {
	var filter hrapp.EmployeeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Export godoc
// @ID           exportEmployees
// @Summary      Export matching employees as an Excel workbook
// @Tags         hr
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        department query string false "Department"
// @Param        status query string false "Status"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /hr/employees/export [get]
func (h *EmployeeHandler) Export(c *gin.Context) {
	var filter hrapp.EmployeeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, err := h.service.ListForExport(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	name := "employees-" + time.Now().Format("20060102") + ".xlsx"
	h.Workbook(c, name, export.ContentType, func(w io.Writer) error {
		return export.Employees(w, list)
	})
}

// GetByID godoc
// @ID           getEmployee
// @Summary      Get an employee
// @Tags         hr
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.EmployeeResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// Update godoc
// @ID           updateEmployee
// @Summary      Update a current employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body hrapp.UpdateEmployeeRequest true "Employee"
// @Success      200 {object} Envelope[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "employee")
	if !ok {
		return
	}
	var req hrapp.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// Delete godoc
// @ID           deleteEmployee
// @Summary      Delete an employee
// @Tags         hr
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "employee")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Resign godoc
// @ID           resignEmployee
// @Summary      Record a resignation
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body hrapp.SeparationRequest false "Exit date and reason"
// @Success      200 {object} Envelope[hrapp.EmployeeResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees/{id}/resign [post]
func (h *EmployeeHandler) Resign(c *gin.Context) {
	h.separate(c, h.service.Resign)
}

// Terminate godoc
// @ID           terminateEmployee
// @Summary      Record a termination
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body hrapp.SeparationRequest true "Exit date and reason"
// @Success      200 {object} Envelope[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/employees/{id}/terminate [post]
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	h.separate(c, h.service.Terminate)
}

type separationAction func(ctx context.Context, id uuid.UUID, req hrapp.SeparationRequest) (*hrapp.EmployeeResponse, error)

func (h *EmployeeHandler) separate(c *gin.Context, action separationAction) {
	id, ok := h.parseID(c, "id", "employee")
	if !ok {
		return
	}
	var req hrapp.SeparationRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	employee, err := action(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// RegisterRoutes mounts the employee routes
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/hr/employees")
	employees.GET("", h.List)
	employees.POST("", h.Create)
	employees.GET("/statistics", h.Statistics)
	employees.GET("/export", h.Export)
	employees.GET("/:id", h.GetByID)
	employees.PUT("/:id", h.Update)
	employees.DELETE("/:id", h.Delete)
	employees.POST("/:id/resign", h.Resign)
	employees.POST("/:id/terminate", h.Terminate)
}

// LeaveHandler handles leave requests
type LeaveHandler struct {
	BaseHandler
	service *hrapp.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(service *hrapp.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// List godoc
// @ID           listLeaveRequests
// @Summary      List leave requests
// @Tags         hr
// @Produce      json
// @Param        status query string false "Status" Enums(pending, approved, rejected, cancelled)
// @Param        leave_type query string false "Leave type"
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]hrapp.LeaveRequestResponse]
// @Security     BearerAuth
// @Router       /hr/leave-requests [get]
func (h *LeaveHandler) List(c *gin.Context) {
	var filter hrapp.LeaveListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createLeaveRequest
// @Summary      File a leave request
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateLeaveRequest true "Leave request"
// @Success      201 {object} Envelope[hrapp.LeaveRequestResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/leave-requests [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	var req hrapp.CreateLeaveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	request, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// Stages godoc
// @ID           leaveApprovalStages
// @Summary      List the approval trail of leave requests
// @Tags         hr
// @Produce      json
// @Success      200 {object} Envelope[[]hr.ApprovalStage]
// @Security     BearerAuth
// @Router       /hr/leave-requests/stages [get]
func (h *LeaveHandler) Stages(c *gin.Context) {
	h.Success(c, h.service.Stages())
}

// Statistics godoc
// @ID           leaveStatistics
// @Summary      Summarise leave requests
// @Tags         hr
// @Produce      json
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Success      200 {object} Envelope[hr.LeaveStatistics]
// @Security     BearerAuth
// @Router       /hr/leave-requests/statistics [get]
func (h *LeaveHandler) Statistics(c *gin.Context) {
	var filter hrapp.LeaveListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID godoc
// @ID           getLeaveRequest
// @Summary      Get a leave request
// @Tags         hr
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.LeaveRequestResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/leave-requests/{id} [get]
func (h *LeaveHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "leave request")
	if !ok {
		return
	}

	request, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Approve godoc
// @ID           approveLeaveRequest
// @Summary      Approve a pending leave request
// @Tags         hr
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.LeaveRequestResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/leave-requests/{id}/approve [post]
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject godoc
// @ID           rejectLeaveRequest
// @Summary      Reject a pending leave request
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Param        request body hrapp.LeaveDecisionRequest true "Reason"
// @Success      200 {object} Envelope[hrapp.LeaveRequestResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/leave-requests/{id}/reject [post]
func (h *LeaveHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c, "id", "leave request")
	if !ok {
		return
	}
	var req hrapp.LeaveDecisionRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	request, err := h.service.Reject(c.Request.Context(), id, actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Cancel godoc
// @ID           cancelLeaveRequest
// @Summary      Withdraw a leave request
// @Tags         hr
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.LeaveRequestResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/leave-requests/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *gin.Context) {
	h.decide(c, h.service.Cancel)
}

type leaveAction func(ctx context.Context, id uuid.UUID, actor string) (*hrapp.LeaveRequestResponse, error)

func (h *LeaveHandler) decide(c *gin.Context, action leaveAction) {
	id, ok := h.parseID(c, "id", "leave request")
	if !ok {
		return
	}

	request, err := action(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// RegisterRoutes mounts the leave request routes
func (h *LeaveHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leaves := rg.Group("/hr/leave-requests")
	leaves.GET("", h.List)
	leaves.POST("", h.Create)
	leaves.GET("/stages", h.Stages)
	leaves.GET("/statistics", h.Statistics)
	leaves.GET("/:id", h.GetByID)
	leaves.POST("/:id/approve", h.Approve)
	leaves.POST("/:id/reject", h.Reject)
	leaves.POST("/:id/cancel", h.Cancel)
}

// PayrollHandler handles payroll runs
type PayrollHandler struct {
	BaseHandler
	service *hrapp.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(service *hrapp.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// List godoc
// @ID           listPayrollRuns
// @Summary      List payroll runs
// @Tags         hr
// @Produce      json
// @Param        status query string false "Status" Enums(draft, processed, approved, paid, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]hrapp.PayrollRunResponse]
// @Security     BearerAuth
// @Router       /hr/payroll-runs [get]
func (h *PayrollHandler) List(c *gin.Context) {
	var filter hrapp.PayrollListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createPayrollRun
// @Summary      Define a payroll run
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreatePayrollRunRequest true "Pay period"
// @Success      201 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs [post]
func (h *PayrollHandler) Create(c *gin.Context) {
	var req hrapp.CreatePayrollRunRequest
	if !h.bindJSON(c, &req) {
		return
	}

	run, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, run)
}

// Stages godoc
// @ID           payrollStages
// @Summary      List the payroll workflow
// @Tags         hr
// @Produce      json
// @Success      200 {object} Envelope[[]hr.PayrollStage]
// @Security     BearerAuth
// @Router       /hr/payroll-runs/stages [get]
func (h *PayrollHandler) Stages(c *gin.Context) {
	h.Success(c, h.service.Stages())
}

// Statistics godoc
// @ID           payrollStatistics
// @Summary      Summarise payroll runs
// @Tags         hr
// @Produce      json
// @Success      200 {object} Envelope[hr.PayrollStatistics]
// @Security     BearerAuth
// @Router       /hr/payroll-runs/statistics [get]
func (h *PayrollHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID godoc
// @ID           getPayrollRun
// @Summary      Get a payroll run with its entries
// @Tags         hr
// @Produce      json
// @Param        id path string true "Payroll run ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs/{id} [get]
func (h *PayrollHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payroll run")
	if !ok {
		return
	}

	run, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// Process godoc
// @ID           processPayrollRun
// @Summary      Compute entries for current employees
// @Tags         hr
// @Produce      json
// @Param        id path string true "Payroll run ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs/{id}/process [post]
func (h *PayrollHandler) Process(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payroll run")
	if !ok {
		return
	}

	run, err := h.service.Process(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// Approve godoc
// @ID           approvePayrollRun
// @Summary      Approve a processed run
// @Tags         hr
// @Produce      json
// @Param        id path string true "Payroll run ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs/{id}/approve [post]
func (h *PayrollHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Pay godoc
// @ID           payPayrollRun
// @Summary      Mark an approved run as paid
// @Tags         hr
// @Produce      json
// @Param        id path string true "Payroll run ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs/{id}/pay [post]
func (h *PayrollHandler) Pay(c *gin.Context) {
	h.transition(c, h.service.Pay)
}

// Cancel godoc
// @ID           cancelPayrollRun
// @Summary      Cancel an unpaid run
// @Tags         hr
// @Produce      json
// @Param        id path string true "Payroll run ID" format(uuid)
// @Success      200 {object} Envelope[hrapp.PayrollRunResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /hr/payroll-runs/{id}/cancel [post]
func (h *PayrollHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

type payrollAction func(ctx context.Context, id uuid.UUID, actor string) (*hrapp.PayrollRunResponse, error)

func (h *PayrollHandler) transition(c *gin.Context, action payrollAction) {
	id, ok := h.parseID(c, "id", "payroll run")
	if !ok {
		return
	}

	run, err := action(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// RegisterRoutes mounts the payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	runs := rg.Group("/hr/payroll-runs")
	runs.GET("", h.List)
	runs.POST("", h.Create)
	runs.GET("/stages", h.Stages)
	runs.GET("/statistics", h.Statistics)
	runs.GET("/:id", h.GetByID)
	runs.POST("/:id/process", h.Process)
	runs.POST("/:id/approve", h.Approve)
	runs.POST("/:id/pay", h.Pay)
	runs.POST("/:id/cancel", h.Cancel)
}
