package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

const courseColumns = "id, code, name, credits"

func scanCourse(row scanner) (types.Course, error) {
	var c types.Course
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Credits)
	return c, err
}

// CreateCourse inserts a course. A duplicate code surfaces as
// storage.ErrConflict.
func (s *SQLite) CreateCourse(ctx context.Context, c types.Course) (types.Course, error) {
	err := s.withTx(ctx, "CreateCourse", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO courses (code, name, credits) VALUES (?, ?, ?)",
			c.Code, c.Name, c.Credits,
		)
		if err != nil {
			return fmt.Errorf("CreateCourse: exec: %w", classify(err))
		}

		c.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateCourse: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Course{}, err
	}
	return c, nil
}

func (s *SQLite) GetCourseByID(ctx context.Context, id int64) (types.Course, error) {
	c, err := scanCourse(s.Db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Course{}, fmt.Errorf("no course found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Course{}, fmt.Errorf("GetCourseByID: scan: %w", err)
	}
	return c, nil
}

func (s *SQLite) GetCourses(ctx context.Context, limit, offset int) ([]types.Course, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("GetCourses: query: %w", err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("GetCourses: scan row: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetCourses: rows iteration: %w", err)
	}

	return courses, nil
}
