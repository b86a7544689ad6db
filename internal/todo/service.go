package todo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akbarovz/gadgethub/internal/errorz"
)

var errTitleRequired = errors.New("is required")

// Service provides the rules for managing task lists.
type Service struct {
	store Store

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(s Store) *Service {
	return &Service{
		store:   s,
		NowFunc: time.Now,
	}
}

// Add creates a new pending task for the user.
func (s *Service) Add(ctx context.Context, userID int, title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, errorz.InvalidInput{errorz.Keyed{Key: "Title", Err: errTitleRequired}}
	}

	task := Task{
		UserID:    userID,
		Title:     title,
		Done:      false,
		CreatedAt: s.NowFunc(),
	}

	err := s.store.CreateTask(ctx, &task)
	if err != nil {
		return Task{}, err
	}

	return task, nil
}

// List returns the user's tasks, newest first.
func (s *Service) List(ctx context.Context, userID int) ([]Task, error) {
	return s.store.TasksForUser(ctx, userID)
}

// Toggle flips the done flag of the task if it's owned by the user.
// Toggling a task the user doesn't own is a no-op, not an error.
func (s *Service) Toggle(ctx context.Context, userID, taskID int) error {
	return s.store.ToggleTask(ctx, userID, taskID)
}

// Delete removes the task if it's owned by the user.
// Deleting a task the user doesn't own is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, userID, taskID int) error {
	return s.store.DeleteTask(ctx, userID, taskID)
}
