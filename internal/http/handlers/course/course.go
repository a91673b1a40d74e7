// Package course contains the HTTP handlers for the Course resource.
// Courses are created and read; there is no update or delete.
package course

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/http/request"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
	"github.com/aanand-mishra/campus-api/internal/validation"
)

// New handles POST /api/courses
//
//	{ "code": "CS101", "name": "Intro to Programming", "credits": 5 }
//
// 201 with the stored course, 409 if the code is taken, 422 on bad input.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		var in types.CourseInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		created, err := store.CreateCourse(r.Context(), in.Course())
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				response.Conflict(w, "Course already exists")
				return
			}
			response.Internal(w, r, err)
			return
		}

		slog.Info("course created", slog.Int64("id", created.ID), slog.String("code", created.Code))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/courses/{id}
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}

		c, err := store.GetCourseByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.NotFound(w, "Course not found")
				return
			}
			response.Internal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, c)
	}
}

// GetList handles GET /api/courses?limit=&offset=
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := request.Page(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting courses", slog.Int("limit", limit), slog.Int("offset", offset))

		courses, err := store.GetCourses(r.Context(), limit, offset)
		if err != nil {
			response.Internal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}
