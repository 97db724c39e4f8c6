package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"taskhub/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindPage(ctx context.Context, filter models.TaskFilter, sortBy, order string, limit, offset int) ([]models.Task, error)
	Count(ctx context.Context, filter models.TaskFilter) (int, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error

	// stats: three independent reads, no snapshot coupling
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	GroupByStatus(ctx context.Context, ownerID string) ([]models.StatGroup, error)
	GroupByPriority(ctx context.Context, ownerID string) ([]models.StatGroup, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date, owner_id, tags, completed_at, created_at, updated_at`

// buildTaskWhere translates a TaskFilter into a WHERE clause with
// numbered args. The owner constraint is always present; search matches
// the text case-insensitively in title OR description; status and
// priority are exact matches (invalid values simply match nothing).
func buildTaskWhere(filter models.TaskFilter) (string, []interface{}) {
	where := "owner_id = $1"
	args := []interface{}{filter.OwnerID}
	i := 2

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	if filter.Priority != "" {
		where += fmt.Sprintf(" AND priority = $%d", i)
		args = append(args, filter.Priority)
		i++
	}
	return where, args
}

// sortColumns whitelists the sortable fields. Request parameters use
// the JSON names; anything unknown falls back to created_at so a raw
// field name never reaches the SQL text.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"dueDate":     "due_date",
	"completedAt": "completed_at",
	"title":       "title",
	"status":      "status",
	"priority":    "priority",
}

func orderClause(sortBy, order string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	if order != "asc" {
		order = "desc"
	}
	return col + " " + order
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, status, priority, due_date, owner_id, tags, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.OwnerID, pq.Array(task.Tags), task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.OwnerID, pq.Array(&task.Tags), &task.CompletedAt,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindPage(ctx context.Context, filter models.TaskFilter, sortBy, order string, limit, offset int) ([]models.Task, error) {
	where, args := buildTaskWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		taskColumns, where, orderClause(sortBy, order), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.OwnerID, pq.Array(&t.Tags), &t.CompletedAt,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Count(ctx context.Context, filter models.TaskFilter) (int, error) {
	where, args := buildTaskWhere(filter)
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE "+where, args...).Scan(&count)
	return count, err
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	const query = `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, priority=$4, due_date=$5,
			tags=$6, completed_at=$7, updated_at=NOW()
		WHERE id=$8
		RETURNING updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		pq.Array(task.Tags), task.CompletedAt, task.ID,
	).Scan(&task.UpdatedAt)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

func (r *taskRepository) GroupByStatus(ctx context.Context, ownerID string) ([]models.StatGroup, error) {
	return r.groupBy(ctx, "status", ownerID)
}

func (r *taskRepository) GroupByPriority(ctx context.Context, ownerID string) ([]models.StatGroup, error) {
	return r.groupBy(ctx, "priority", ownerID)
}

// groupBy counts the owner's tasks per distinct value of col. Values
// with zero tasks are simply absent from the result.
func (r *taskRepository) groupBy(ctx context.Context, col, ownerID string) ([]models.StatGroup, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM tasks WHERE owner_id = $1 GROUP BY %s`, col, col)
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StatGroup
	for rows.Next() {
		var g models.StatGroup
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
