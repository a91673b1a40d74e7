// Package health serves the liveness endpoint.
package health

import (
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// Check handles GET /health and always answers {"status":"ok"}.
func Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}
