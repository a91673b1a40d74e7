// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and validation can all import types without
// depending on each other.
//
// Two kinds of struct live here:
//
//   - records (User, Project, Course) are what the store persists and
//     what every read returns. They always carry the full row.
//   - inputs (UserInput, ProjectInput, ...) are decoded request bodies.
//     Their validate:"..." tags are checked by the validation package
//     before anything reaches the store.
package types

// User represents a user record.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	StudentID string `json:"student_id"`
}

// UserWithProjects is a User with its projects loaded eagerly.
type UserWithProjects struct {
	User
	Projects []Project `json:"projects"`
}

// Project represents a project record. Description is nil when the
// project has none, which encodes to JSON null.
type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     int64   `json:"owner_id"`
}

// ProjectWithOwner is a Project with its owning User embedded.
type ProjectWithOwner struct {
	Project
	Owner User `json:"owner"`
}

// Course represents a course record.
type Course struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// UserInput is the body of POST /api/users and PUT /api/users/{id}.
//
// Fields are pointers so a missing key (nil) fails "required" while a
// legitimate zero value such as "age": 0 passes.
type UserInput struct {
	Name      *string `json:"name"       validate:"required,min=1,max=100"`
	Email     *string `json:"email"      validate:"required,email"`
	Age       *int    `json:"age"        validate:"required,gte=0,lte=150"`
	StudentID *string `json:"student_id" validate:"required,student_id"`
}

// User converts a validated input into a record without an id.
func (in UserInput) User() User {
	return User{
		Name:      *in.Name,
		Email:     *in.Email,
		Age:       *in.Age,
		StudentID: *in.StudentID,
	}
}

// ProjectInput is the body of POST /api/projects and PUT /api/projects/{id}.
type ProjectInput struct {
	Name        *string `json:"name"        validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	OwnerID     *int64  `json:"owner_id"    validate:"required"`
}

func (in ProjectInput) Project() Project {
	return Project{
		Name:        *in.Name,
		Description: in.Description,
		OwnerID:     *in.OwnerID,
	}
}

// UserProjectInput is the body of POST /api/users/{id}/projects.
// The owner comes from the path, so there is no owner_id.
type UserProjectInput struct {
	Name        *string `json:"name"        validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
}

func (in UserProjectInput) Project(ownerID int64) Project {
	return Project{
		Name:        *in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
	}
}

// CourseInput is the body of POST /api/courses.
type CourseInput struct {
	Code    *string `json:"code"    validate:"required,min=1,max=32"`
	Name    *string `json:"name"    validate:"required,min=1,max=255"`
	Credits *int    `json:"credits" validate:"required,gte=1,lte=120"`
}

func (in CourseInput) Course() Course {
	return Course{
		Code:    *in.Code,
		Name:    *in.Name,
		Credits: *in.Credits,
	}
}
