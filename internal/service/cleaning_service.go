package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"house-admin/internal/model"
)

type cleaningTaskStore interface {
	List(ctx context.Context) ([]model.CleaningTask, error)
	FindByID(ctx context.Context, id string) (model.CleaningTask, error)
	Create(ctx context.Context, t model.CleaningTask) error
	MarkDone(ctx context.Context, id string, doneAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type CleaningService struct {
	tasks cleaningTaskStore
}

func NewCleaningService(tasks cleaningTaskStore) *CleaningService {
	return &CleaningService{tasks: tasks}
}

func (s *CleaningService) List(ctx context.Context) ([]model.CleaningTask, error) {
	return s.tasks.List(ctx)
}

func (s *CleaningService) Get(ctx context.Context, id string) (model.CleaningTask, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *CleaningService) Create(ctx context.Context, req model.CleaningTaskRequest) (model.CleaningTask, error) {
	if strings.TrimSpace(req.Description) == "" {
		return model.CleaningTask{}, fmt.Errorf("%w: description is required", model.ErrInvalidInput)
	}
	if req.DueDate.IsZero() {
		return model.CleaningTask{}, fmt.Errorf("%w: due_date is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	task := model.CleaningTask{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Area:        strings.TrimSpace(req.Area),
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.CleaningTask{}, err
	}
	return task, nil
}

func (s *CleaningService) MarkDone(ctx context.Context, id string) error {
	return s.tasks.MarkDone(ctx, id, time.Now().UTC())
}

func (s *CleaningService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
