package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"https://app.teamflow.app",
	"https://staging.teamflow.app",
}

// CORS returns middleware that applies the API's allowed origin policy.
// The configured frontend origin is appended so staging and preview
// deployments work without a code change.
func CORS(frontendOrigin string) func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if o := strings.TrimSpace(frontendOrigin); o != "" && !contains(origins, o) {
		origins = append(append([]string{}, origins...), o)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-Actor-Name", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
