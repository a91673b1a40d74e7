// Package router wires every HTTP route to its handler.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/http/handlers/course"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/health"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/project"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/user"
	"github.com/aanand-mishra/campus-api/internal/http/middleware"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/go-chi/cors"
)

// New returns the application handler.
//
// Route table (Go 1.22 method patterns):
//
//	GET    /api/users                 list users
//	GET    /api/users/{id}            get one user (?include=projects)
//	POST   /api/users                 create a user
//	PUT    /api/users/{id}            replace a user
//	PATCH  /api/users/{id}            change some fields of a user
//	DELETE /api/users/{id}            delete a user and their projects
//	GET    /api/users/{id}/projects   list a user's projects
//	POST   /api/users/{id}/projects   create a project owned by the user
//	GET    /api/projects              list projects
//	GET    /api/projects/{id}         get one project with its owner
//	POST   /api/projects              create a project
//	PUT    /api/projects/{id}         replace a project
//	PATCH  /api/projects/{id}         change some fields of a project
//	GET    /api/courses               list courses
//	GET    /api/courses/{id}          get one course
//	POST   /api/courses               create a course
//	GET    /health                    liveness
func New(store storage.Storage, log *slog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users", user.GetList(store))
	mux.HandleFunc("GET /api/users/{id}", user.GetByID(store))
	mux.HandleFunc("POST /api/users", user.New(store))
	mux.HandleFunc("PUT /api/users/{id}", user.Update(store))
	mux.HandleFunc("PATCH /api/users/{id}", user.Patch(store))
	mux.HandleFunc("DELETE /api/users/{id}", user.Delete(store))

	mux.HandleFunc("GET /api/users/{id}/projects", project.GetListForUser(store))
	mux.HandleFunc("POST /api/users/{id}/projects", project.NewForUser(store))

	mux.HandleFunc("GET /api/projects", project.GetList(store))
	mux.HandleFunc("GET /api/projects/{id}", project.GetByID(store))
	mux.HandleFunc("POST /api/projects", project.New(store))
	mux.HandleFunc("PUT /api/projects/{id}", project.Update(store))
	mux.HandleFunc("PATCH /api/projects/{id}", project.Patch(store))

	mux.HandleFunc("GET /api/courses", course.GetList(store))
	mux.HandleFunc("GET /api/courses/{id}", course.GetByID(store))
	mux.HandleFunc("POST /api/courses", course.New(store))

	mux.HandleFunc("GET /health", health.Check())

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})

	return middleware.Logger(log)(corsHandler(mux))
}
