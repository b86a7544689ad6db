// Package db implements the task store on SQLite.
package db

import (
	"context"
	"database/sql"

	"github.com/akbarovz/gadgethub/internal/db"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/todo"
)

// Store is responsible for persisting tasks.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateTask creates a task in the database.
// It updates the task's ID field when successful.
func (s *Store) CreateTask(ctx context.Context, t *todo.Task) error {
	var q db.Query
	q.Unsafe(`INSERT INTO tasks (user_id, title, done, created_at) VALUES (`)
	q.Params(t.UserID, t.Title, t.Done, t.CreatedAt)
	q.Unsafe(`)`)

	query, params := q.Get()

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errorz.MapDBErr(err)
	}

	t.ID = int(id)

	return nil
}

// TasksForUser returns the user's tasks, newest first.
func (s *Store) TasksForUser(ctx context.Context, userID int) ([]todo.Task, error) {
	var q db.Query
	q.Unsafe(`SELECT id, user_id, title, done, created_at FROM tasks WHERE user_id = `)
	q.Param(userID)
	q.Unsafe(` ORDER BY created_at DESC, id DESC`)

	query, params := q.Get()

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errorz.MapDBErr(err)
	}

	defer rows.Close()

	out := make([]todo.Task, 0)
	for rows.Next() {
		var t todo.Task
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt)
		if err != nil {
			return nil, errorz.MapDBErr(err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errorz.MapDBErr(err)
	}

	return out, nil
}

// ToggleTask flips the done flag with a single statement scoped to both
// the task ID and the owner. Zero affected rows is not an error.
func (s *Store) ToggleTask(ctx context.Context, userID, taskID int) error {
	var q db.Query
	q.Unsafe(`UPDATE tasks SET done = 1 - done WHERE id = `)
	q.Param(taskID)
	q.Unsafe(` AND user_id = `)
	q.Param(userID)

	query, params := q.Get()

	_, err := s.db.ExecContext(ctx, query, params...)
	return errorz.MapDBErr(err)
}

// DeleteTask deletes the task with a single statement scoped to both the
// task ID and the owner. Zero affected rows is not an error.
func (s *Store) DeleteTask(ctx context.Context, userID, taskID int) error {
	var q db.Query
	q.Unsafe(`DELETE FROM tasks WHERE id = `)
	q.Param(taskID)
	q.Unsafe(` AND user_id = `)
	q.Param(userID)

	query, params := q.Get()

	_, err := s.db.ExecContext(ctx, query, params...)
	return errorz.MapDBErr(err)
}
