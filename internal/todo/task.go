// Package todo provides the per-user task list.
package todo

import "time"

// Task is a single to-do item. A task belongs to exactly one user and is
// only ever visible to and mutable by that user.
type Task struct {
	ID        int
	UserID    int
	Title     string
	Done      bool
	CreatedAt time.Time
}

// DoneCount returns the number of completed tasks in the slice.
func DoneCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Done {
			n++
		}
	}
	return n
}
