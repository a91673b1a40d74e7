package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Explicitly list columns; scanUser depends on this order.
const userColumns = "id, name, email, age, student_id"

func scanUser(row scanner) (types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.StudentID)
	return u, err
}

func getUser(ctx context.Context, q querier, id int64) (types.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, fmt.Errorf("no user found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.User{}, fmt.Errorf("getUser: scan: %w", err)
	}
	return u, nil
}

func updateUser(ctx context.Context, tx *sql.Tx, op string, id int64, u types.User) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, age = ?, student_id = ? WHERE id = ?",
		u.Name, u.Email, u.Age, u.StudentID, id,
	)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, classify(err))
	}
	return mustAffect(res, op, id)
}

// CreateUser inserts a new row into the users table. A duplicate
// student_id surfaces as storage.ErrConflict.
func (s *SQLite) CreateUser(ctx context.Context, u types.User) (types.User, error) {
	err := s.withTx(ctx, "CreateUser", func(tx *sql.Tx) error {
		// Placeholders keep values out of the SQL text; the driver sends
		// them separately.
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (name, email, age, student_id) VALUES (?, ?, ?, ?)",
			u.Name, u.Email, u.Age, u.StudentID,
		)
		if err != nil {
			return fmt.Errorf("CreateUser: exec: %w", classify(err))
		}

		u.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateUser: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.User{}, err
	}
	return u, nil
}

func (s *SQLite) GetUserByID(ctx context.Context, id int64) (types.User, error) {
	return getUser(ctx, s.Db, id)
}

// GetUserWithProjects returns the user together with every project it owns.
func (s *SQLite) GetUserWithProjects(ctx context.Context, id int64) (types.UserWithProjects, error) {
	u, err := getUser(ctx, s.Db, id)
	if err != nil {
		return types.UserWithProjects{}, err
	}

	projects, err := listProjects(ctx, s.Db, "GetUserWithProjects",
		"SELECT "+projectColumns+" FROM projects WHERE owner_id = ? ORDER BY id", id)
	if err != nil {
		return types.UserWithProjects{}, err
	}

	return types.UserWithProjects{User: u, Projects: projects}, nil
}

// GetUsers returns one page of users ordered by id. The slice is empty,
// never nil, when there are no rows.
func (s *SQLite) GetUsers(ctx context.Context, limit, offset int) ([]types.User, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("GetUsers: query: %w", err)
	}
	// Closing rows returns the connection to the pool.
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("GetUsers: scan row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetUsers: rows iteration: %w", err)
	}

	return users, nil
}

// UpdateUserByID replaces every column of the user and returns the row
// as stored.
func (s *SQLite) UpdateUserByID(ctx context.Context, id int64, u types.User) (types.User, error) {
	var updated types.User
	err := s.withTx(ctx, "UpdateUserByID", func(tx *sql.Tx) error {
		if err := updateUser(ctx, tx, "UpdateUserByID", id, u); err != nil {
			return err
		}

		var err error
		updated, err = getUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return types.User{}, err
	}
	return updated, nil
}

// PatchUserByID loads the row, applies the supplied fields of p, writes it
// back and returns the re-read row, all in one transaction.
func (s *SQLite) PatchUserByID(ctx context.Context, id int64, p types.UserPatch) (types.User, error) {
	var updated types.User
	err := s.withTx(ctx, "PatchUserByID", func(tx *sql.Tx) error {
		current, err := getUser(ctx, tx, id)
		if err != nil {
			return err
		}

		p.Apply(&current)

		if err := updateUser(ctx, tx, "PatchUserByID", id, current); err != nil {
			return err
		}

		updated, err = getUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return types.User{}, err
	}
	return updated, nil
}

// DeleteUserByID removes a user row by primary key. The user's projects
// go with it (ON DELETE CASCADE).
func (s *SQLite) DeleteUserByID(ctx context.Context, id int64) error {
	return s.withTx(ctx, "DeleteUserByID", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("DeleteUserByID: exec: %w", err)
		}
		return mustAffect(res, "DeleteUserByID", id)
	})
}
