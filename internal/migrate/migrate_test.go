package migrate_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/akbarovz/gadgethub/internal/db/testdb"
	"github.com/akbarovz/gadgethub/internal/migrate"
)

func fsWith(files map[string]string) fstest.MapFS {
	m := make(fstest.MapFS, len(files))
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func Test_RunFS(t *testing.T) {
	meta := migrate.Metadata{
		AppVersion: "test",
		Timestamp:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("ok, runs migrations in order", func(t *testing.T) {
		db := testdb.RunUnmigratedWhile(t, true)

		files := fsWith(map[string]string{
			"0000_a.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
			"0001_b.sql": `CREATE TABLE b (id INTEGER PRIMARY KEY, a_id INTEGER REFERENCES a (id))`,
		})

		ran, err := migrate.RunFS(context.Background(), db, files, meta)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if len(ran) != 2 {
			t.Fatalf("got %d migrations, want 2", len(ran))
		}

		for i, m := range ran {
			if m.Sequence != i {
				t.Errorf("migration %d has sequence %d", i, m.Sequence)
			}
		}
	})

	t.Run("ok, second run is a no-op", func(t *testing.T) {
		db := testdb.RunUnmigratedWhile(t, true)

		files := fsWith(map[string]string{
			"0000_a.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
		})

		_, err := migrate.RunFS(context.Background(), db, files, meta)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		ran, err := migrate.RunFS(context.Background(), db, files, meta)
		if err != nil {
			t.Fatalf("failed to run migrations again: %v", err)
		}

		if len(ran) != 0 {
			t.Fatalf("got %d migrations on second run, want 0", len(ran))
		}
	})

	t.Run("ok, only new migrations run", func(t *testing.T) {
		db := testdb.RunUnmigratedWhile(t, true)

		files := fsWith(map[string]string{
			"0000_a.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
		})

		_, err := migrate.RunFS(context.Background(), db, files, meta)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		files["0001_b.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE b (id INTEGER PRIMARY KEY)`)}

		ran, err := migrate.RunFS(context.Background(), db, files, meta)
		if err != nil {
			t.Fatalf("failed to run migrations again: %v", err)
		}

		if len(ran) != 1 || ran[0].Filename != "0001_b.sql" {
			t.Fatalf("expected only 0001_b.sql to run, got %v", ran)
		}
	})

	t.Run("fail, renamed migration", func(t *testing.T) {
		db := testdb.RunUnmigratedWhile(t, true)

		_, err := migrate.RunFS(context.Background(), db, fsWith(map[string]string{
			"0000_a.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
		}), meta)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		_, err = migrate.RunFS(context.Background(), db, fsWith(map[string]string{
			"0000_renamed.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
		}), meta)
		if !errors.Is(err, migrate.ErrMigrationsMismatch) {
			t.Fatalf("got %v, want ErrMigrationsMismatch", err)
		}
	})

	t.Run("fail, invalid sql rolls back", func(t *testing.T) {
		db := testdb.RunUnmigratedWhile(t, true)

		_, err := migrate.RunFS(context.Background(), db, fsWith(map[string]string{
			"0000_a.sql": `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
			"0001_b.sql": `NOT VALID SQL`,
		}), meta)

		var mErr migrate.MigrationError
		if !errors.As(err, &mErr) {
			t.Fatalf("got %v, want MigrationError", err)
		}

		// The whole run is one transaction, even 0000_a.sql should be gone.
		_, err = migrate.QueryMigrations(context.Background(), db)
		if !errors.Is(err, migrate.ErrNoTable) {
			t.Fatalf("got %v, want ErrNoTable", err)
		}
	})
}
