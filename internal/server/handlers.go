package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/screentime/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// extractOverallHandler extracts a full summary record from an uploaded
// overall screenshot.
func (s *Server) extractOverallHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readImageUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := s.extractor.OverallImage(img)
	observeExtraction("overall", start, err)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Extraction failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s.writeJSON(w, ExtractResponse{Success: true, Overall: result})
}

// extractCategoryHandler extracts the per-app breakdown from an
// uploaded category detail screenshot.
func (s *Server) extractCategoryHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readImageUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := s.extractor.CategoryDetailImage(img)
	observeExtraction("category", start, err)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Extraction failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s.writeJSON(w, ExtractResponse{Success: true, Category: result})
}

// readImageUpload validates the request and decodes the multipart
// "image" field. On failure it writes the error response itself and
// returns ok=false.
func (s *Server) readImageUpload(w http.ResponseWriter, r *http.Request) (image.Image, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	maxBytes := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return nil, false
	}
	uploadSizeBytes.Observe(float64(len(imageData)))

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return nil, false
	}
	return img, true
}

// writeJSON writes a successful JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, response ExtractResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding response: %v\n", err)
	}
}

// writeErrorResponse writes a JSON error response with the given status.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ExtractResponse{Success: false, Error: message}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding error response: %v\n", err)
	}
}
