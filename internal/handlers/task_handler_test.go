package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/models"
	"taskhub/internal/pagination"
	"taskhub/internal/services"
)

type mockTaskService struct {
	CreateFunc func(ctx context.Context, ownerID string, task *models.Task) (*models.Task, error)
	GetFunc    func(ctx context.Context, id, callerID string) (*models.Task, error)
	ListFunc   func(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error)
	UpdateFunc func(ctx context.Context, id, callerID string, upd *models.TaskUpdate) (*models.Task, error)
	DeleteFunc func(ctx context.Context, id, callerID string) error
	StatsFunc  func(ctx context.Context, ownerID string) (*models.TaskStats, error)
}

var _ services.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) Create(ctx context.Context, ownerID string, task *models.Task) (*models.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, task)
	}
	return task, nil
}

func (m *mockTaskService) Get(ctx context.Context, id, callerID string) (*models.Task, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, callerID)
	}
	return nil, models.ErrTaskNotFound
}

func (m *mockTaskService) List(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter, sortBy, order, page, limit)
	}
	return []models.Task{}, pagination.Page{}, nil
}

func (m *mockTaskService) Update(ctx context.Context, id, callerID string, upd *models.TaskUpdate) (*models.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, callerID, upd)
	}
	return nil, models.ErrTaskNotFound
}

func (m *mockTaskService) Delete(ctx context.Context, id, callerID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, callerID)
	}
	return nil
}

func (m *mockTaskService) Stats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, ownerID)
	}
	return &models.TaskStats{ByStatus: []models.StatGroup{}, ByPriority: []models.StatGroup{}}, nil
}

// taskRouter mounts the task routes behind a stub that injects the
// authenticated user, so handler behavior is tested without real JWTs.
func taskRouter(svc services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(svc, nil, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})
	r.POST("/api/tasks", h.Create)
	r.GET("/api/tasks", h.List)
	r.GET("/api/tasks/stats", h.Stats)
	r.GET("/api/tasks/:id", h.Get)
	r.PUT("/api/tasks/:id", h.Update)
	r.DELETE("/api/tasks/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Run("created task in envelope", func(t *testing.T) {
		svc := &mockTaskService{CreateFunc: func(ctx context.Context, ownerID string, task *models.Task) (*models.Task, error) {
			task.ID = "t1"
			task.OwnerID = ownerID
			return task, nil
		}}
		r := taskRouter(svc)

		w, resp := doJSON(t, r, http.MethodPost, "/api/tasks",
			`{"title":"Buy milk","priority":"high","dueDate":"2026-09-15"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "Task created successfully", resp["message"])
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "t1", data["id"])
		assert.Equal(t, "u1", data["user"])
	})

	t.Run("missing title is a field error", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})

		w, resp := doJSON(t, r, http.MethodPost, "/api/tasks", `{"description":"no title"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, resp["success"])
		errs := resp["errors"].([]interface{})
		require.Len(t, errs, 1)
		first := errs[0].(map[string]interface{})
		assert.Equal(t, "title", first["field"])
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})

		w, resp := doJSON(t, r, http.MethodPost, "/api/tasks",
			`{"title":"x","status":"paused"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs := resp["errors"].([]interface{})
		first := errs[0].(map[string]interface{})
		assert.Equal(t, "status", first["field"])
	})

	t.Run("malformed body", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})
		w, resp := doJSON(t, r, http.MethodPost, "/api/tasks", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, resp["success"])
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Run("query parameters reach the service", func(t *testing.T) {
		var gotFilter models.TaskFilter
		var gotSortBy, gotOrder string
		var gotPage, gotLimit int
		svc := &mockTaskService{ListFunc: func(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error) {
			gotFilter, gotSortBy, gotOrder, gotPage, gotLimit = filter, sortBy, order, page, limit
			return []models.Task{}, pagination.New(page, limit, 25), nil
		}}
		r := taskRouter(svc)

		w, resp := doJSON(t, r, http.MethodGet,
			"/api/tasks?search=milk&status=pending&priority=high&page=2&limit=10&sortBy=dueDate&order=asc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "milk", gotFilter.Search)
		assert.Equal(t, "pending", gotFilter.Status)
		assert.Equal(t, "high", gotFilter.Priority)
		assert.Equal(t, "dueDate", gotSortBy)
		assert.Equal(t, "asc", gotOrder)
		assert.Equal(t, 2, gotPage)
		assert.Equal(t, 10, gotLimit)

		page := resp["pagination"].(map[string]interface{})
		assert.Equal(t, float64(25), page["total"])
		assert.Equal(t, float64(2), page["page"])
		assert.Equal(t, float64(3), page["totalPages"])
		assert.Equal(t, true, page["hasMore"])
	})

	t.Run("defaults applied when query is empty", func(t *testing.T) {
		var gotSortBy, gotOrder string
		var gotPage, gotLimit int
		svc := &mockTaskService{ListFunc: func(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error) {
			gotSortBy, gotOrder, gotPage, gotLimit = sortBy, order, page, limit
			return []models.Task{}, pagination.Page{}, nil
		}}
		r := taskRouter(svc)

		_, resp := doJSON(t, r, http.MethodGet, "/api/tasks", "")

		assert.Equal(t, "createdAt", gotSortBy)
		assert.Equal(t, "desc", gotOrder)
		assert.Equal(t, 1, gotPage)
		assert.Equal(t, 10, gotLimit)
		// empty page still serializes as an array
		assert.Equal(t, []interface{}{}, resp["data"])
	})
}

func TestTaskHandlerGet(t *testing.T) {
	svc := &mockTaskService{GetFunc: func(ctx context.Context, id, callerID string) (*models.Task, error) {
		switch id {
		case "mine":
			return &models.Task{ID: id, OwnerID: callerID, Title: "x"}, nil
		case "foreign":
			return nil, models.ErrForbidden
		default:
			return nil, models.ErrTaskNotFound
		}
	}}
	r := taskRouter(svc)

	t.Run("own task", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/tasks/mine", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp["success"])
	})

	t.Run("missing task is 404", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/tasks/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, resp["success"])
	})

	t.Run("foreign task is 403", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/tasks/foreign", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, false, resp["success"])
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	capture := func(got **models.TaskUpdate) *mockTaskService {
		return &mockTaskService{UpdateFunc: func(ctx context.Context, id, callerID string, upd *models.TaskUpdate) (*models.Task, error) {
			*got = upd
			return &models.Task{ID: id, OwnerID: callerID}, nil
		}}
	}

	t.Run("absent dueDate stays untouched", func(t *testing.T) {
		var got *models.TaskUpdate
		r := taskRouter(capture(&got))

		w, _ := doJSON(t, r, http.MethodPut, "/api/tasks/t1", `{"title":"new"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		require.NotNil(t, got.Title)
		assert.Equal(t, "new", *got.Title)
		assert.Nil(t, got.DueDate)
		assert.False(t, got.ClearDueDate)
	})

	t.Run("explicit null clears the dueDate", func(t *testing.T) {
		var got *models.TaskUpdate
		r := taskRouter(capture(&got))

		w, _ := doJSON(t, r, http.MethodPut, "/api/tasks/t1", `{"dueDate":null}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.True(t, got.ClearDueDate)
	})

	t.Run("new dueDate is parsed", func(t *testing.T) {
		var got *models.TaskUpdate
		r := taskRouter(capture(&got))

		w, _ := doJSON(t, r, http.MethodPut, "/api/tasks/t1", `{"dueDate":"2026-10-01"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *got.DueDate)
	})

	t.Run("garbage dueDate is a field error", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})

		w, resp := doJSON(t, r, http.MethodPut, "/api/tasks/t1", `{"dueDate":"next tuesday"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs := resp["errors"].([]interface{})
		first := errs[0].(map[string]interface{})
		assert.Equal(t, "dueDate", first["field"])
	})

	t.Run("empty title on update is rejected", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})

		w, resp := doJSON(t, r, http.MethodPut, "/api/tasks/t1", `{"title":"   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs := resp["errors"].([]interface{})
		first := errs[0].(map[string]interface{})
		assert.Equal(t, "title", first["field"])
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Run("foreign task is 403", func(t *testing.T) {
		svc := &mockTaskService{DeleteFunc: func(ctx context.Context, id, callerID string) error {
			return models.ErrForbidden
		}}
		r := taskRouter(svc)

		w, resp := doJSON(t, r, http.MethodDelete, "/api/tasks/t1", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, false, resp["success"])
	})

	t.Run("deleted", func(t *testing.T) {
		r := taskRouter(&mockTaskService{})
		w, resp := doJSON(t, r, http.MethodDelete, "/api/tasks/t1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Task deleted successfully", resp["message"])
	})
}

func TestTaskHandlerStats(t *testing.T) {
	svc := &mockTaskService{StatsFunc: func(ctx context.Context, ownerID string) (*models.TaskStats, error) {
		return &models.TaskStats{
			Total:      3,
			ByStatus:   []models.StatGroup{{Key: "pending", Count: 2}, {Key: "completed", Count: 1}},
			ByPriority: []models.StatGroup{{Key: "medium", Count: 3}},
		}, nil
	}}
	r := taskRouter(svc)

	w, resp := doJSON(t, r, http.MethodGet, "/api/tasks/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	byStatus := data["byStatus"].([]interface{})
	require.Len(t, byStatus, 2)
	first := byStatus[0].(map[string]interface{})
	assert.Equal(t, "pending", first["key"])
	assert.Equal(t, float64(2), first["count"])
}
