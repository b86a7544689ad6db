package todo

import "context"

// Store provides access to the task store.
//
// Every method that targets an existing task filters by both the task ID
// and the owning user ID. Mutations that match no row are silent no-ops,
// so a caller can't tell "not there" apart from "not yours".
type Store interface {
	CreateTask(ctx context.Context, t *Task) error
	// TasksForUser returns the user's tasks, newest first.
	TasksForUser(ctx context.Context, userID int) ([]Task, error)
	// ToggleTask flips the done flag of the task iff it's owned by userID.
	ToggleTask(ctx context.Context, userID, taskID int) error
	// DeleteTask deletes the task iff it's owned by userID.
	DeleteTask(ctx context.Context, userID, taskID int) error
}
