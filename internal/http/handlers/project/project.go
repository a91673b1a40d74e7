// Package project contains the HTTP handlers for the Project resource,
// including the routes nested under a user (/api/users/{id}/projects).
package project

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
	msgNotFound      = "Project not found"
	msgOwnerNotFound = "Owner not found"
	msgUserNotFound  = "User not found"
	msgConflict      = "Project already exists"
)

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Checked first: a bad owner reference is a 404, never a 409.
	case errors.Is(err, storage.ErrOwnerNotFound):
		response.NotFound(w, msgOwnerNotFound)
	case errors.Is(err, storage.ErrNotFound):
		response.NotFound(w, msgNotFound)
	// Unreachable while projects have no unique column.
	case errors.Is(err, storage.ErrConflict):
		response.Conflict(w, msgConflict)
	default:
		response.Internal(w, r, err)
	}
}

// checkOwner writes a 404 and returns false when ownerID names no user.
func checkOwner(w http.ResponseWriter, r *http.Request, store storage.Storage, ownerID int64) bool {
	if _, err := store.GetUserByID(r.Context(), ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, msgOwnerNotFound)
		} else {
			response.Internal(w, r, err)
		}
		return false
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/projects
//
//	{ "name": "Thesis", "description": "optional", "owner_id": 1 }
//
// 201 with the stored project, 404 if owner_id names no user, 422 on bad input.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a project")

		var in types.ProjectInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		if !checkOwner(w, r, store, *in.OwnerID) {
			return
		}

		created, err := store.CreateProject(r.Context(), in.Project())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("project created", slog.Int64("id", created.ID), slog.Int64("owner_id", created.OwnerID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/projects/{id}
// The owning user is embedded under "owner".
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting a project", slog.Int64("id", id))

		p, err := store.GetProjectWithOwner(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, p)
	}
}

// GetList handles GET /api/projects?limit=&offset=
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := request.Page(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting projects", slog.Int("limit", limit), slog.Int("offset", offset))

		projects, err := store.GetProjects(r.Context(), limit, offset)
		if err != nil {
			response.Internal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, projects)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/projects/{id}
// Replaces every field. The project must exist and owner_id must name an
// existing user; both are 404 otherwise.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("updating a project", slog.Int64("id", id))

		if _, err := store.GetProjectByID(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}

		var in types.ProjectInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		if !checkOwner(w, r, store, *in.OwnerID) {
			return
		}

		updated, err := store.UpdateProjectByID(r.Context(), id, in.Project())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("project updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Patch handles PATCH /api/projects/{id}
// Only supplied fields change. "description": null clears the description;
// owner_id, when supplied, is re-checked against the users table.
// ─────────────────────────────────────────────────────────────────────────────
func Patch(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("patching a project", slog.Int64("id", id))

		if _, err := store.GetProjectByID(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}

		var patch types.ProjectPatch
		if err := request.DecodePatch(r, &patch, &patch.Fields); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Partial(patch, patch.Fields, types.NullableProjectFields...); err != nil {
			response.Invalid(w, err)
			return
		}

		if patch.OwnerID != nil && !checkOwner(w, r, store, *patch.OwnerID) {
			return
		}

		updated, err := store.PatchProjectByID(r.Context(), id, patch)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("project patched", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// NewForUser handles POST /api/users/{id}/projects
// The owner is the user in the path, so the body has no owner_id:
//
//	{ "name": "Thesis", "description": "optional" }
// ─────────────────────────────────────────────────────────────────────────────
func NewForUser(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("creating a project for user", slog.Int64("owner_id", ownerID))

		if _, err := store.GetUserByID(r.Context(), ownerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.NotFound(w, msgUserNotFound)
			} else {
				response.Internal(w, r, err)
			}
			return
		}

		var in types.UserProjectInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.Invalid(w, err)
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Invalid(w, err)
			return
		}

		created, err := store.CreateProject(r.Context(), in.Project(ownerID))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.Info("project created", slog.Int64("id", created.ID), slog.Int64("owner_id", ownerID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetListForUser handles GET /api/users/{id}/projects?limit=&offset=
// A user with no projects, or no such user, yields [].
func GetListForUser(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := request.PathID(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		limit, offset, err := request.Page(r)
		if err != nil {
			response.Invalid(w, err)
			return
		}
		slog.Info("getting projects for user", slog.Int64("owner_id", ownerID))

		projects, err := store.GetProjectsByOwner(r.Context(), ownerID, limit, offset)
		if err != nil {
			response.Internal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, projects)
	}
}
