package todo_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akbarovz/gadgethub/internal/db/testdb"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/todo"
	tododb "github.com/akbarovz/gadgethub/internal/todo/db"
)

type serviceTest struct {
	svc *todo.Service
	db  *sql.DB
	now time.Time
}

func newServiceTest(t *testing.T) *serviceTest {
	t.Helper()

	sqlDB := testdb.RunWhile(t, true)

	svc := todo.NewService(tododb.New(sqlDB))

	st := &serviceTest{
		svc: svc,
		db:  sqlDB,
		now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	// Deterministic timestamps, each call one second later than the last.
	svc.NowFunc = func() time.Time {
		st.now = st.now.Add(time.Second)
		return st.now
	}

	return st
}

// seedUser inserts a user row directly, tasks have a foreign key to users.
func (st *serviceTest) seedUser(t *testing.T, username string) int {
	t.Helper()

	result, err := st.db.Exec(
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		username, username+"@x.com", "x", time.Now(),
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get user id: %v", err)
	}

	return int(id)
}

func (st *serviceTest) list(t *testing.T, userID int) []todo.Task {
	t.Helper()

	tasks, err := st.svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}

	return tasks
}

func Test_Service_Add(t *testing.T) {
	t.Run("ok, add task", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		task, err := st.svc.Add(context.Background(), userID, "buy milk")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if task.ID == 0 {
			t.Errorf("expected task to have an ID")
		}

		if task.Done {
			t.Errorf("new task should be pending")
		}

		tasks := st.list(t, userID)
		if len(tasks) != 1 || tasks[0].Title != "buy milk" {
			t.Fatalf("got %v, want a single 'buy milk' task", tasks)
		}
	})

	t.Run("ok, title is trimmed", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		task, err := st.svc.Add(context.Background(), userID, "  buy milk \t")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if task.Title != "buy milk" {
			t.Errorf("got title %q, want %q", task.Title, "buy milk")
		}
	})

	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("fail, blank title %q", title), func(t *testing.T) {
			st := newServiceTest(t)
			userID := st.seedUser(t, "alice")

			_, err := st.svc.Add(context.Background(), userID, title)

			var invalid errorz.InvalidInput
			if !errors.As(err, &invalid) {
				t.Fatalf("got %v, want InvalidInput", err)
			}

			if tasks := st.list(t, userID); len(tasks) != 0 {
				t.Fatalf("expected no tasks, got %v", tasks)
			}
		})
	}
}

func Test_Service_List(t *testing.T) {
	t.Run("ok, newest first", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		for _, title := range []string{"first", "second", "third"} {
			if _, err := st.svc.Add(context.Background(), userID, title); err != nil {
				t.Fatalf("failed to add task: %v", err)
			}
		}

		tasks := st.list(t, userID)

		want := []string{"third", "second", "first"}
		if len(tasks) != len(want) {
			t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
		}

		for i, title := range want {
			if tasks[i].Title != title {
				t.Errorf("task %d has title %q, want %q", i, tasks[i].Title, title)
			}
		}
	})

	t.Run("ok, only the user's own tasks", func(t *testing.T) {
		st := newServiceTest(t)
		alice := st.seedUser(t, "alice")
		bob := st.seedUser(t, "bob")

		if _, err := st.svc.Add(context.Background(), alice, "alice task"); err != nil {
			t.Fatalf("failed to add task: %v", err)
		}
		if _, err := st.svc.Add(context.Background(), bob, "bob task"); err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		tasks := st.list(t, alice)
		if len(tasks) != 1 || tasks[0].Title != "alice task" {
			t.Fatalf("got %v, want only alice's task", tasks)
		}
	})
}

func Test_Service_Toggle(t *testing.T) {
	t.Run("ok, toggle flips and flips back", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		task, err := st.svc.Add(context.Background(), userID, "buy milk")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if err := st.svc.Toggle(context.Background(), userID, task.ID); err != nil {
			t.Fatalf("failed to toggle task: %v", err)
		}

		if got := st.list(t, userID); !got[0].Done {
			t.Errorf("expected task to be done after one toggle")
		}

		if err := st.svc.Toggle(context.Background(), userID, task.ID); err != nil {
			t.Fatalf("failed to toggle task: %v", err)
		}

		if got := st.list(t, userID); got[0].Done {
			t.Errorf("expected task to be pending after two toggles")
		}
	})

	t.Run("ok, toggling another user's task is a no-op", func(t *testing.T) {
		st := newServiceTest(t)
		alice := st.seedUser(t, "alice")
		bob := st.seedUser(t, "bob")

		task, err := st.svc.Add(context.Background(), alice, "alice task")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if err := st.svc.Toggle(context.Background(), bob, task.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := st.list(t, alice); got[0].Done {
			t.Errorf("task was toggled by a non-owner")
		}
	})

	t.Run("ok, toggling an unknown task is a no-op", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		if err := st.svc.Toggle(context.Background(), userID, 12345); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func Test_Service_Delete(t *testing.T) {
	t.Run("ok, delete own task", func(t *testing.T) {
		st := newServiceTest(t)
		userID := st.seedUser(t, "alice")

		task, err := st.svc.Add(context.Background(), userID, "buy milk")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if err := st.svc.Delete(context.Background(), userID, task.ID); err != nil {
			t.Fatalf("failed to delete task: %v", err)
		}

		if tasks := st.list(t, userID); len(tasks) != 0 {
			t.Fatalf("expected no tasks, got %v", tasks)
		}
	})

	t.Run("ok, deleting another user's task is a no-op", func(t *testing.T) {
		st := newServiceTest(t)
		alice := st.seedUser(t, "alice")
		bob := st.seedUser(t, "bob")

		task, err := st.svc.Add(context.Background(), alice, "alice task")
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}

		if err := st.svc.Delete(context.Background(), bob, task.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if tasks := st.list(t, alice); len(tasks) != 1 {
			t.Fatalf("task was deleted by a non-owner")
		}
	})
}

func Test_DoneCount(t *testing.T) {
	tasks := []todo.Task{
		{Title: "a", Done: true},
		{Title: "b", Done: false},
		{Title: "c", Done: true},
	}

	if got := todo.DoneCount(tasks); got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	if got := todo.DoneCount(nil); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
