package api

import (
	"net/http"

	"lumina/internal/version"
)

// StatusBanner is the root endpoint's status string.
const StatusBanner = "LuminaCode Core System Online"

// protectedPaths require a bearer token when auth is enabled.
var protectedPaths = map[string]bool{
	"/analyze": true,
	"/chat":    true,
}

// RootResponse is returned by GET /
type RootResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Liveness
	s.router.HandleFunc("/health", s.handleHealth)

	// Analysis and project state
	s.router.HandleFunc("/analyze", s.handleAnalyze)            // POST
	s.router.HandleFunc("/system-health", s.handleSystemHealth) // GET
	s.router.HandleFunc("/history", s.handleHistory)            // GET ?limit=N

	// Assistant
	s.router.HandleFunc("/chat", s.handleChat) // POST

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		NotFound(w, "No route for "+r.URL.Path)
		return
	}

	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	response := RootResponse{
		Status:  StatusBanner,
		Version: version.Version,
		Endpoints: []string{
			"GET /health - Liveness check",
			"POST /analyze - Analyze a code snippet and update the project snapshot",
			"GET /system-health - Current project snapshot",
			"GET /history?limit=N - Recent analyses, newest first",
			"POST /chat - Ask the code quality assistant",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
