package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type CleaningTaskRepository struct {
	pool *pgxpool.Pool
}

func NewCleaningTaskRepository(pool *pgxpool.Pool) *CleaningTaskRepository {
	return &CleaningTaskRepository{pool: pool}
}

func (r *CleaningTaskRepository) List(ctx context.Context) ([]model.CleaningTask, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, description, area, assignee_id, due_date, done_at, created_at, updated_at
		 FROM cleaning_tasks ORDER BY due_date`)
	if err != nil {
		return nil, fmt.Errorf("list cleaning tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.CleaningTask, 0)
	for rows.Next() {
		var t model.CleaningTask
		if err := rows.Scan(&t.ID, &t.Description, &t.Area, &t.AssigneeID, &t.DueDate, &t.DoneAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cleaning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *CleaningTaskRepository) FindByID(ctx context.Context, id string) (model.CleaningTask, error) {
	var t model.CleaningTask
	err := r.pool.QueryRow(ctx,
		`SELECT id, description, area, assignee_id, due_date, done_at, created_at, updated_at
		 FROM cleaning_tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.Description, &t.Area, &t.AssigneeID, &t.DueDate, &t.DoneAt, &t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.CleaningTask{}, model.ErrCleaningTaskNotFound
	}
	if err != nil {
		return model.CleaningTask{}, fmt.Errorf("find cleaning task by id: %w", err)
	}
	return t, nil
}

func (r *CleaningTaskRepository) Create(ctx context.Context, t model.CleaningTask) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cleaning_tasks (id, description, area, assignee_id, due_date, done_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Description, t.Area, t.AssigneeID, t.DueDate, t.DoneAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create cleaning task: %w", err)
	}
	return nil
}

func (r *CleaningTaskRepository) MarkDone(ctx context.Context, id string, doneAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cleaning_tasks SET done_at = $2, updated_at = $3 WHERE id = $1`,
		id, doneAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark cleaning task done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCleaningTaskNotFound
	}
	return nil
}

func (r *CleaningTaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cleaning_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cleaning task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCleaningTaskNotFound
	}
	return nil
}
