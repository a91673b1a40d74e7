package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

const projectColumns = "id, name, description, owner_id"

func scanProject(row scanner) (types.Project, error) {
	var (
		p    types.Project
		desc sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.OwnerID); err != nil {
		return types.Project{}, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return p, nil
}

func getProject(ctx context.Context, q querier, id int64) (types.Project, error) {
	p, err := scanProject(q.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Project{}, fmt.Errorf("no project found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Project{}, fmt.Errorf("getProject: scan: %w", err)
	}
	return p, nil
}

func listProjects(ctx context.Context, q querier, op, query string, args ...any) ([]types.Project, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	projects := make([]types.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return projects, nil
}

func updateProject(ctx context.Context, tx *sql.Tx, op string, id int64, p types.Project) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE projects SET name = ?, description = ?, owner_id = ? WHERE id = ?",
		p.Name, p.Description, p.OwnerID, id,
	)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, classify(err))
	}
	return mustAffect(res, op, id)
}

// CreateProject inserts a project. An owner_id with no matching user
// surfaces as storage.ErrOwnerNotFound.
func (s *SQLite) CreateProject(ctx context.Context, p types.Project) (types.Project, error) {
	err := s.withTx(ctx, "CreateProject", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO projects (name, description, owner_id) VALUES (?, ?, ?)",
			p.Name, p.Description, p.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("CreateProject: exec: %w", classify(err))
		}

		p.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateProject: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Project{}, err
	}
	return p, nil
}

func (s *SQLite) GetProjectByID(ctx context.Context, id int64) (types.Project, error) {
	return getProject(ctx, s.Db, id)
}

// GetProjectWithOwner reads a project and its owner in one JOIN.
func (s *SQLite) GetProjectWithOwner(ctx context.Context, id int64) (types.ProjectWithOwner, error) {
	var (
		pw   types.ProjectWithOwner
		desc sql.NullString
	)
	err := s.Db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.description, p.owner_id,
		       u.id, u.name, u.email, u.age, u.student_id
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = ?
		LIMIT 1`, id,
	).Scan(
		&pw.ID, &pw.Name, &desc, &pw.OwnerID,
		&pw.Owner.ID, &pw.Owner.Name, &pw.Owner.Email, &pw.Owner.Age, &pw.Owner.StudentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ProjectWithOwner{}, fmt.Errorf("no project found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.ProjectWithOwner{}, fmt.Errorf("GetProjectWithOwner: scan: %w", err)
	}
	if desc.Valid {
		pw.Description = &desc.String
	}
	return pw, nil
}

func (s *SQLite) GetProjects(ctx context.Context, limit, offset int) ([]types.Project, error) {
	return listProjects(ctx, s.Db, "GetProjects",
		"SELECT "+projectColumns+" FROM projects ORDER BY id LIMIT ? OFFSET ?", limit, offset)
}

func (s *SQLite) GetProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]types.Project, error) {
	return listProjects(ctx, s.Db, "GetProjectsByOwner",
		"SELECT "+projectColumns+" FROM projects WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, offset)
}

// UpdateProjectByID replaces every column of the project.
func (s *SQLite) UpdateProjectByID(ctx context.Context, id int64, p types.Project) (types.Project, error) {
	var updated types.Project
	err := s.withTx(ctx, "UpdateProjectByID", func(tx *sql.Tx) error {
		if err := updateProject(ctx, tx, "UpdateProjectByID", id, p); err != nil {
			return err
		}

		var err error
		updated, err = getProject(ctx, tx, id)
		return err
	})
	if err != nil {
		return types.Project{}, err
	}
	return updated, nil
}

// PatchProjectByID applies the supplied fields of p and returns the
// re-read row.
func (s *SQLite) PatchProjectByID(ctx context.Context, id int64, p types.ProjectPatch) (types.Project, error) {
	var updated types.Project
	err := s.withTx(ctx, "PatchProjectByID", func(tx *sql.Tx) error {
		current, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}

		p.Apply(&current)

		if err := updateProject(ctx, tx, "PatchProjectByID", id, current); err != nil {
			return err
		}

		updated, err = getProject(ctx, tx, id)
		return err
	})
	if err != nil {
		return types.Project{}, err
	}
	return updated, nil
}
