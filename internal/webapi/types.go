package webapi

import (
	"time"

	"github.com/spboyer/vitta/internal/models"
)

// PlanSummary is the API response for a single saved plan in the list.
type PlanSummary struct {
	Name         string    `json:"name"`
	Timestamp    time.Time `json:"timestamp"`
	DateReadable string    `json:"dateReadable"`
	SizeKB       float64   `json:"sizeKB"`
}

// PlanDetail is the API response for a single plan with its full transcript.
type PlanDetail struct {
	Name       string             `json:"name"`
	Transcript *models.Transcript `json:"transcript"`
	Summary    string             `json:"summary"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
