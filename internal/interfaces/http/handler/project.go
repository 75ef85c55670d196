package handler

import (
	projectapp "github.com/b3erp/backend/internal/application/project"
	"github.com/gin-gonic/gin"
)

// ProjectHandler handles projects with their milestones, tasks and dependencies
type ProjectHandler struct {
	BaseHandler
	service *projectapp.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List godoc
// @ID           listProjects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        search query string false "Search by code, name or customer"
// @Param        status query string false "Status"
// @Param        priority query string false "Priority"
// @Param        health query string false "Health"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]projectapp.ProjectResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var filter projectapp.ProjectListFilter
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
// @ID           createProject
// @Summary      Create a draft project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectapp.ProjectRequest true "Project"
// @Success      201 {object} Envelope[projectapp.ProjectResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectapp.ProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// GetByID godoc
// @ID           getProject
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} Envelope[projectapp.ProjectResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Update godoc
// @ID           updateProject
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body projectapp.ProjectRequest true "Project"
// @Success      200 {object} Envelope[projectapp.ProjectResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	var req projectapp.ProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Delete godoc
// @ID           deleteProject
// @Summary      Delete a draft or cancelled project
// @Tags         projects
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangeStatus godoc
// @ID           changeProjectStatus
// @Summary      Move a project along its workflow
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body projectapp.ChangeStatusRequest true "Target status"
// @Success      200 {object} Envelope[projectapp.ProjectResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/status [post]
func (h *ProjectHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	var req projectapp.ChangeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.ChangeStatus(c.Request.Context(), id, actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Summary godoc
// @ID           projectSummary
// @Summary      Summarise tasks, milestones and budget of a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} Envelope[project.Summary]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/summary [get]
func (h *ProjectHandler) Summary(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListMilestones godoc
// @ID           listProjectMilestones
// @Summary      List the milestones of a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} Envelope[[]project.Milestone]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/milestones [get]
func (h *ProjectHandler) ListMilestones(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}

	list, err := h.service.ListMilestones(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// AddMilestone godoc
// @ID           addProjectMilestone
// @Summary      Add a milestone
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body projectapp.MilestoneRequest true "Milestone"
// @Success      201 {object} Envelope[project.Milestone]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/milestones [post]
func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	var req projectapp.MilestoneRequest
	if !h.bindJSON(c, &req) {
		return
	}

	m, err := h.service.AddMilestone(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, m)
}

// CompleteMilestone godoc
// @ID           completeProjectMilestone
// @Summary      Complete a milestone
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        milestoneId path string true "Milestone ID" format(uuid)
// @Success      200 {object} Envelope[project.Milestone]
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/milestones/{milestoneId}/complete [post]
func (h *ProjectHandler) CompleteMilestone(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	milestoneID, ok := h.parseID(c, "milestoneId", "milestone")
	if !ok {
		return
	}

	m, err := h.service.CompleteMilestone(c.Request.Context(), id, milestoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// ListTasks godoc
// @ID           listProjectTasks
// @Summary      List the tasks of a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        status query string false "Task status"
// @Param        priority query string false "Priority"
// @Param        assignee query string false "Assignee name"
// @Param        milestone_id query string false "Milestone ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]project.Task]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/tasks [get]
func (h *ProjectHandler) ListTasks(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	var filter projectapp.TaskListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// AddTask godoc
// @ID           addProjectTask
// @Summary      Add a task
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body projectapp.TaskRequest true "Task"
// @Success      201 {object} Envelope[project.Task]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/tasks [post]
func (h *ProjectHandler) AddTask(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	var req projectapp.TaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	t, err := h.service.AddTask(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, t)
}

// UpdateTask godoc
// @ID           updateProjectTask
// @Summary      Replace a task
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        taskId path string true "Task ID" format(uuid)
// @Param        request body projectapp.TaskRequest true "Task"
// @Success      200 {object} Envelope[project.Task]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/tasks/{taskId} [put]
func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	taskID, ok := h.parseID(c, "taskId", "task")
	if !ok {
		return
	}
	var req projectapp.TaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	t, err := h.service.UpdateTask(c.Request.Context(), id, taskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, t)
}

// AddDependency godoc
// @ID           addTaskDependency
// @Summary      Make a task depend on another task
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        taskId path string true "Successor task ID" format(uuid)
// @Param        request body projectapp.DependencyRequest true "Dependency"
// @Success      201 {object} Envelope[project.TaskDependency]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/tasks/{taskId}/dependencies [post]
func (h *ProjectHandler) AddDependency(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	taskID, ok := h.parseID(c, "taskId", "task")
	if !ok {
		return
	}
	var req projectapp.DependencyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	d, err := h.service.AddDependency(c.Request.Context(), id, taskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, d)
}

// RemoveDependency godoc
// @ID           removeTaskDependency
// @Summary      Remove a task dependency
// @Tags         projects
// @Param        id path string true "Project ID" format(uuid)
// @Param        taskId path string true "Task ID" format(uuid)
// @Param        dependencyId path string true "Dependency ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /projects/{id}/tasks/{taskId}/dependencies/{dependencyId} [delete]
func (h *ProjectHandler) RemoveDependency(c *gin.Context) {
	id, ok := h.parseID(c, "id", "project")
	if !ok {
		return
	}
	taskID, ok := h.parseID(c, "taskId", "task")
	if !ok {
		return
	}
	dependencyID, ok := h.parseID(c, "dependencyId", "dependency")
	if !ok {
		return
	}

	if err := h.service.RemoveDependency(c.Request.Context(), id, taskID, dependencyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes mounts the project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", h.List)
	projects.POST("", h.Create)
	projects.GET("/:id", h.GetByID)
	projects.PUT("/:id", h.Update)
	projects.DELETE("/:id", h.Delete)
	projects.POST("/:id/status", h.ChangeStatus)
	projects.GET("/:id/summary", h.Summary)
	projects.GET("/:id/milestones", h.ListMilestones)
	projects.POST("/:id/milestones", h.AddMilestone)
	projects.POST("/:id/milestones/:milestoneId/complete", h.CompleteMilestone)
	projects.GET("/:id/tasks", h.ListTasks)
	projects.POST("/:id/tasks", h.AddTask)
	projects.PUT("/:id/tasks/:taskId", h.UpdateTask)
	projects.POST("/:id/tasks/:taskId/dependencies", h.AddDependency)
	projects.DELETE("/:id/tasks/:taskId/dependencies/:dependencyId", h.RemoveDependency)
}
