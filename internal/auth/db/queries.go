package db

import (
	"context"
	"database/sql"

	"github.com/akbarovz/gadgethub/internal/auth"
	"github.com/akbarovz/gadgethub/internal/db"
	"github.com/akbarovz/gadgethub/internal/errorz"
)

func insertUser(ctx context.Context, ec *sql.DB, u *auth.User) error {
	var q db.Query
	q.Unsafe(`INSERT INTO users (username, email, password_hash, created_at) VALUES (`)
	q.Params(u.Username, string(u.Email), u.PasswordHash.String(), u.CreatedAt)
	q.Unsafe(`)`)

	s, params := q.Get()

	result, err := ec.ExecContext(ctx, s, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errorz.MapDBErr(err)
	}

	u.ID = int(id)

	return nil
}

func selectUsers(ctx context.Context, ec *sql.DB, f *auth.UserFilter) ([]auth.User, error) {
	var q db.Query
	q.Unsafe(`SELECT id, username, email, password_hash, created_at FROM users WHERE 1=1 `)

	if len(f.IDs) > 0 {
		q.Unsafe(`AND id IN (`)
		q.Params(anySlice(f.IDs)...)
		q.Unsafe(`) `)
	}

	if len(f.Emails) > 0 {
		q.Unsafe(`AND email IN (`)
		params := make([]any, len(f.Emails))
		for i, addr := range f.Emails {
			params[i] = string(addr)
		}
		q.Params(params...)
		q.Unsafe(`) `)
	}

	q.Unsafe(`ORDER BY id ASC`)

	s, params := q.Get()

	rows, err := ec.QueryContext(ctx, s, params...)
	if err != nil {
		return nil, errorz.MapDBErr(err)
	}

	defer rows.Close()

	out := make([]auth.User, 0)
	for rows.Next() {
		var u auth.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
		if err != nil {
			return nil, errorz.MapDBErr(err)
		}

		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		return nil, errorz.MapDBErr(err)
	}

	return out, nil
}

func anySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
