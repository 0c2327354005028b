// Package server exposes the extraction pipeline over HTTP: multipart
// screenshot upload in, JSON result out, plus health and metrics
// endpoints.
package server

import (
	"image"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/screentime/internal/extract"
)

// extractorInterface defines the methods the server needs from the
// extraction pipeline.
type extractorInterface interface {
	OverallImage(img image.Image) (*extract.Result, error)
	CategoryDetailImage(img image.Image) (*extract.CategoryDetail, error)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	extractor       extractorInterface
	host            string
	port            int
	maxUploadMB     int64
	timeoutSec      int
	shutdownTimeout int
}

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	MaxUploadMB     int64
	TimeoutSec      int
	ShutdownTimeout int
}

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ExtractResponse wraps every extraction endpoint's JSON payload.
type ExtractResponse struct {
	Success  bool                    `json:"success"`
	Overall  *extract.Result         `json:"overall,omitempty"`
	Category *extract.CategoryDetail `json:"category,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// NewServer creates a new extraction server instance.
func NewServer(ex extractorInterface, config Config) *Server {
	return &Server{
		extractor:       ex,
		host:            config.Host,
		port:            config.Port,
		maxUploadMB:     config.MaxUploadMB,
		timeoutSec:      config.TimeoutSec,
		shutdownTimeout: config.ShutdownTimeout,
	}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.observe(s.healthHandler))
	mux.HandleFunc("/extract/overall", s.observe(s.extractOverallHandler))
	mux.HandleFunc("/extract/category", s.observe(s.extractCategoryHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
