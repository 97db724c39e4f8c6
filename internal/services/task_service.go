package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/models"
	"taskhub/internal/pagination"
	"taskhub/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
// Every single-item operation goes through the ownership check: a
// missing task is ErrTaskNotFound, a foreign one is ErrForbidden.
type TaskService interface {
	Create(ctx context.Context, ownerID string, task *models.Task) (*models.Task, error)
	Get(ctx context.Context, id, callerID string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error)
	Update(ctx context.Context, id, callerID string, upd *models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id, callerID string) error
	Stats(ctx context.Context, ownerID string) (*models.TaskStats, error)
}

type taskService struct {
	repo     repositories.TaskRepository
	users    repositories.UserRepository
	notifier TaskNotifier // may be nil
}

// NewTaskService creates a new instance of TaskService. notifier may be
// nil when telegram notifications are not configured.
func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository, notifier TaskNotifier) TaskService {
	return &taskService{repo: repo, users: users, notifier: notifier}
}

func (s *taskService) Create(ctx context.Context, ownerID string, task *models.Task) (*models.Task, error) {
	task.ID = uuid.NewString()
	task.OwnerID = ownerID
	task.Title = strings.TrimSpace(task.Title)
	task.Description = strings.TrimSpace(task.Description)
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Status == models.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}

	s.notifyOwner(ownerID, task, false)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id, callerID string) (*models.Task, error) {
	return s.authorize(ctx, id, callerID)
}

func (s *taskService) List(ctx context.Context, ownerID string, filter models.TaskFilter, sortBy, order string, page, limit int) ([]models.Task, pagination.Page, error) {
	// the caller can only ever see their own tasks
	filter.OwnerID = ownerID

	tasks, err := s.repo.FindPage(ctx, filter, sortBy, order, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, pagination.Page{}, err
	}
	// second, uncoupled read; a concurrent write may skew total slightly
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, pagination.New(page, limit, total), nil
}

func (s *taskService) Update(ctx context.Context, id, callerID string, upd *models.TaskUpdate) (*models.Task, error) {
	task, err := s.authorize(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	wasCompleted := task.Status == models.StatusCompleted

	if upd.Title != nil {
		task.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		task.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if upd.ClearDueDate {
		task.DueDate = nil
	} else if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.Tags != nil {
		task.Tags = upd.Tags
	}

	// completedAt is written once, on the first transition into
	// "completed", and survives any later status change (a renewed
	// task keeps the timestamp of its first completion)
	if task.Status == models.StatusCompleted && task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if !wasCompleted && task.Status == models.StatusCompleted {
		s.notifyOwner(callerID, task, true)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.authorize(ctx, id, callerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *taskService) Stats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.GroupByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.GroupByPriority(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if byStatus == nil {
		byStatus = []models.StatGroup{}
	}
	if byPriority == nil {
		byPriority = []models.StatGroup{}
	}
	return &models.TaskStats{Total: total, ByStatus: byStatus, ByPriority: byPriority}, nil
}

// authorize loads the task and decides whether the caller may touch it.
// A foreign task answers 403, not 404: existence is revealed to
// non-owners on purpose.
func (s *taskService) authorize(ctx context.Context, id, callerID string) (*models.Task, error) {
	// a non-uuid id cannot name any task; checking here keeps the
	// malformed value away from the uuid column
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrTaskNotFound
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, models.ErrTaskNotFound
	}
	if task.OwnerID != callerID {
		return nil, models.ErrForbidden
	}
	return task, nil
}

func (s *taskService) notifyOwner(ownerID string, task *models.Task, completed bool) {
	if s.notifier == nil {
		return
	}
	// snapshot for the goroutine; notification must not block the request
	t := *task
	go func() {
		user, err := s.users.GetByID(context.Background(), ownerID)
		if err != nil || user == nil {
			log.Printf("[task][notify] lookup owner=%s failed: %v", ownerID, err)
			return
		}
		if !user.NotifyTelegram || user.TelegramChatID == 0 {
			return
		}
		if completed {
			s.notifier.TaskCompleted(user.TelegramChatID, &t)
		} else {
			s.notifier.TaskCreated(user.TelegramChatID, &t)
		}
	}()
}
