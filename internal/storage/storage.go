// Package storage defines the Storage interface, the contract any
// database backend must satisfy, and the sentinel errors handlers use to
// tell expected outcomes (missing row, duplicate key) from failures.
//
// Handlers depend only on this package, never on a concrete driver.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/campus-api/internal/types"
)

var (
	// ErrNotFound is returned when the target row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness
	// constraint. The enclosing transaction has been rolled back.
	ErrConflict = errors.New("record already exists")

	// ErrOwnerNotFound is returned when a project write references a
	// user that does not exist.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Storage is the database contract.
//
// Every mutating method runs in a single transaction: it either commits
// all of its statements or none. Reads never mutate. List methods order
// by ascending id and honour limit/offset.
type Storage interface {
	// CreateUser inserts u and returns the stored record with its new id.
	CreateUser(ctx context.Context, u types.User) (types.User, error)
	GetUserByID(ctx context.Context, id int64) (types.User, error)
	GetUserWithProjects(ctx context.Context, id int64) (types.UserWithProjects, error)
	GetUsers(ctx context.Context, limit, offset int) ([]types.User, error)
	// UpdateUserByID replaces every field of the user.
	UpdateUserByID(ctx context.Context, id int64, u types.User) (types.User, error)
	// PatchUserByID applies only the supplied fields of p.
	PatchUserByID(ctx context.Context, id int64, p types.UserPatch) (types.User, error)
	// DeleteUserByID removes the user and, by cascade, their projects.
	DeleteUserByID(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, p types.Project) (types.Project, error)
	GetProjectByID(ctx context.Context, id int64) (types.Project, error)
	GetProjectWithOwner(ctx context.Context, id int64) (types.ProjectWithOwner, error)
	GetProjects(ctx context.Context, limit, offset int) ([]types.Project, error)
	GetProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]types.Project, error)
	UpdateProjectByID(ctx context.Context, id int64, p types.Project) (types.Project, error)
	PatchProjectByID(ctx context.Context, id int64, p types.ProjectPatch) (types.Project, error)

	CreateCourse(ctx context.Context, c types.Course) (types.Course, error)
	GetCourseByID(ctx context.Context, id int64) (types.Course, error)
	GetCourses(ctx context.Context, limit, offset int) ([]types.Course, error)

	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error
	Close() error
}
