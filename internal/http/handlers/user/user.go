// Package user contains the HTTP handlers for the User resource.
//
// Every handler is a factory: it receives its dependencies once at
// startup and returns the http.HandlerFunc the router calls on every
// request.
//
//	router.HandleFunc("POST /api/users", user.New(store))
package user

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

const (
	msgNotFound = "User not found"
	msgConflict = "User already exists"
)

// writeStoreError maps a storage error onto its HTTP status.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.NotFound(w, msgNotFound)
	case errors.Is(err, storage.ErrConflict):
		response.Conflict(w, msgConflict)
	default:
		response.Internal(w, r, err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/users
//
// Request body:
//
//	{ "name": "Alex", "email": "alex@atu.ie", "age": 25, "student_id": "S1234567" }
//
// 201 with the stored user (including its id), 409 if the student_id is
// taken, 422 on any validation failure.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a user")

		var in types.UserInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		// A duplicate student_id is detected by the store at commit time,
		// not pre-checked here.
		created, err := store.CreateUser(r.Context(), in.User())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("user created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/users/{id}
//
// With ?include=projects the response carries the user's projects:
//
//	{ "id": 1, "name": "Alex", ..., "projects": [ ... ] }
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting a user", slog.Int64("id", id))

		if r.URL.Query().Get("include") == "projects" {
			u, err := store.GetUserWithProjects(r.Context(), id)
			if err != nil {
				writeStoreError(w, r, err)
				return
			}
			response.WriteJSON(w, http.StatusOK, u)
			return
		}

		u, err := store.GetUserByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, u)
	}
}

// GetList handles GET /api/users?limit=&offset=
// Returns [] (not null) when there are no users.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := request.Page(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting users", slog.Int("limit", limit), slog.Int("offset", offset))

		users, err := store.GetUsers(r.Context(), limit, offset)
		if err != nil {
			response.Internal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, users)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/users/{id}
// Replaces ALL fields of an existing user; every field is required.
//
// 404 if the user does not exist (checked before the body is validated),
// 409 if the new student_id belongs to another user, 422 on bad input.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("updating a user", slog.Int64("id", id))

		if _, err := store.GetUserByID(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}

		var in types.UserInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		updated, err := store.UpdateUserByID(r.Context(), id, in.User())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("user updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Patch handles PATCH /api/users/{id}
// Changes only the fields present in the body:
//
//	{ "name": "X" }   → name changes, age/email/student_id stay as they are
//
// A field sent as null is a 422; none of the user columns are nullable.
// ─────────────────────────────────────────────────────────────────────────────
func Patch(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("patching a user", slog.Int64("id", id))

		if _, err := store.GetUserByID(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}

		var patch types.UserPatch
		if err := request.DecodePatch(r, &patch, &patch.Fields); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Partial(patch, patch.Fields); err != nil {
			response.Invalid(w, err)
			return
		}

		updated, err := store.PatchUserByID(r.Context(), id, patch)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("user patched", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/users/{id}
// 204 with an empty body; the user's projects are deleted with it.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("deleting a user", slog.Int64("id", id))

		if err := store.DeleteUserByID(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("user deleted", slog.Int64("id", id))
		response.NoContent(w)
	}
}
