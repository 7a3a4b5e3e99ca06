package api

import (
	"net/http"
	"time"

	"lumina/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string             `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	Version   string             `json:"version"`
	Uptime    string             `json:"uptime"`
	Snapshot  SnapshotHealthInfo `json:"snapshot"`
	Journal   JournalHealthInfo  `json:"journal"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// SnapshotHealthInfo describes how often the project snapshot was replaced
type SnapshotHealthInfo struct {
	Revision  uint64     `json:"revision"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// JournalHealthInfo contains journal health information
type JournalHealthInfo struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path,omitempty"`
	EntryCount int    `json:"entryCount"`
}

// handleHealth responds to liveness checks. A failing journal degrades
// the status but never the analysis endpoints.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	}

	rev, updatedAt := s.snapshots.Revision()
	response.Snapshot.Revision = rev
	if !updatedAt.IsZero() {
		response.Snapshot.UpdatedAt = &updatedAt
	}

	if s.journal != nil {
		response.Journal.Enabled = true
		response.Journal.Path = s.journal.Path()
		count, err := s.journal.Count(r.Context())
		if err != nil {
			response.Status = "degraded"
			response.Warnings = append(response.Warnings, "Journal unavailable: "+err.Error())
		} else {
			response.Journal.EntryCount = count
		}
	}

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, response, statusCode)
}
