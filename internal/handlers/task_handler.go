package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/pagination"
	"taskhub/internal/pdf"
	"taskhub/internal/services"
)

// exportLimit caps the number of tasks rendered into a PDF report.
const exportLimit = 1000

type TaskHandler struct {
	tasks   services.TaskService
	users   services.UserService
	reports pdf.ReportGenerator
}

func NewTaskHandler(tasks services.TaskService, users services.UserService, reports pdf.ReportGenerator) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users, reports: reports}
}

type createTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate"`
	Tags        []string            `json:"tags"`
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	uid := currentUserID(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []models.FieldError
	errs = append(errs, validateTitle(req.Title, true)...)
	errs = append(errs, validateDescription(req.Description)...)
	if req.Status != "" {
		errs = append(errs, validateStatus(req.Status)...)
	}
	if req.Priority != "" {
		errs = append(errs, validatePriority(req.Priority)...)
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.DueDate != "" {
		t, err := parseDate(req.DueDate)
		if err != nil {
			errs = append(errs, models.FieldError{Field: "dueDate", Message: "Invalid date format"})
		} else {
			task.DueDate = &t
		}
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	created, err := h.tasks.Create(c.Request.Context(), uid, task)
	if err != nil {
		log.Printf("[task][create][err] owner=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%s owner=%s", created.ID, uid)
	respondDataMessage(c, http.StatusCreated, created, "Task created successfully")
}

// @Summary      List tasks
// @Description  Lists the caller's tasks with filtering, sorting and pagination
// @Tags         Tasks
// @Produce      json
// @Param        search    query  string  false  "Substring match on title or description"
// @Param        status    query  string  false  "Filter by status"
// @Param        priority  query  string  false  "Filter by priority"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        limit     query  int     false  "Page size (default 10, max 100)"
// @Param        sortBy    query  string  false  "Sort field (default createdAt)"
// @Param        order     query  string  false  "asc or desc (default desc)"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	uid := currentUserID(c)

	filter := models.TaskFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	sortBy := c.DefaultQuery("sortBy", "createdAt")
	order := c.DefaultQuery("order", "desc")
	page, limit := pagination.Parse(c.Query("page"), c.Query("limit"))

	tasks, pageMeta, err := h.tasks.List(c.Request.Context(), uid, filter, sortBy, order, page, limit)
	if err != nil {
		log.Printf("[task][list][err] owner=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	respondList(c, tasks, pageMeta)
}

// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	uid := currentUserID(c)
	id := c.Param("id")

	task, err := h.tasks.Get(c.Request.Context(), id, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	// raw so that an explicit null (clear) is distinguishable from an
	// absent field (leave unchanged)
	DueDate json.RawMessage `json:"dueDate"`
	Tags    []string        `json:"tags"`
}

// @Summary      Update a task
// @Description  Partial update; absent fields are left unchanged, dueDate null clears the date
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        task  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	uid := currentUserID(c)
	id := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] id=%s: %v", id, err)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []models.FieldError
	upd := &models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.Title != nil {
		errs = append(errs, validateTitle(*req.Title, false)...)
	}
	if req.Description != nil {
		errs = append(errs, validateDescription(*req.Description)...)
	}
	if req.Status != nil {
		errs = append(errs, validateStatus(*req.Status)...)
	}
	if req.Priority != nil {
		errs = append(errs, validatePriority(*req.Priority)...)
	}
	if len(req.DueDate) > 0 {
		var s *string
		if err := json.Unmarshal(req.DueDate, &s); err != nil {
			errs = append(errs, models.FieldError{Field: "dueDate", Message: "Invalid date format"})
		} else if s == nil || *s == "" {
			upd.ClearDueDate = true
		} else if t, err := parseDate(*s); err != nil {
			errs = append(errs, models.FieldError{Field: "dueDate", Message: "Invalid date format"})
		} else {
			upd.DueDate = &t
		}
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, uid, upd)
	if err != nil {
		log.Printf("[task][update][err] id=%s owner=%s: %v", id, uid, err)
		serviceError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%s", id)
	respondDataMessage(c, http.StatusOK, task, "Task updated successfully")
}

// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := currentUserID(c)
	id := c.Param("id")

	if err := h.tasks.Delete(c.Request.Context(), id, uid); err != nil {
		log.Printf("[task][delete][err] id=%s owner=%s: %v", id, uid, err)
		serviceError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%s", id)
	respondDataMessage(c, http.StatusOK, gin.H{}, "Task deleted successfully")
}

// @Summary      Task statistics
// @Description  Counts of the caller's tasks grouped by status and priority
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	uid := currentUserID(c)

	stats, err := h.tasks.Stats(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[task][stats][err] owner=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// @Summary      Export tasks as PDF
// @Tags         Tasks
// @Produce      application/pdf
// @Success      200
// @Security     BearerAuth
// @Router       /api/tasks/export [get]
func (h *TaskHandler) Export(c *gin.Context) {
	uid := currentUserID(c)
	ctx := c.Request.Context()

	user, err := h.users.GetByID(ctx, uid)
	if err != nil || user == nil {
		serviceError(c, models.ErrUserNotFound)
		return
	}
	tasks, _, err := h.tasks.List(ctx, uid, models.TaskFilter{}, "createdAt", "desc", 1, exportLimit)
	if err != nil {
		log.Printf("[task][export][err] owner=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	stats, err := h.tasks.Stats(ctx, uid)
	if err != nil {
		log.Printf("[task][export][err] stats owner=%s: %v", uid, err)
		serviceError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	if err := h.reports.TaskReport(c.Writer, user, tasks, stats); err != nil {
		log.Printf("[task][export][err] render owner=%s: %v", uid, err)
	}
}
