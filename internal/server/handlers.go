package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/skill-extractor/internal/extraction"
	"github.com/jonathan/skill-extractor/internal/logger"
	"github.com/jonathan/skill-extractor/internal/server/middleware"
	"github.com/jonathan/skill-extractor/internal/types"
	"go.uber.org/zap"
)

// ExtractRequest represents the request body for /v1/extract
type ExtractRequest struct {
	Text           string `json:"text"`
	Industry       string `json:"industry"`
	JobDescription string `json:"job_description,omitempty"`
}

// IndustriesResponse represents the response for /v1/industries
type IndustriesResponse struct {
	Industries []string `json:"industries"`
}

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status           string `json:"status"`
	KnowledgeVersion string `json:"knowledge_version"`
}

// validate checks the request against the size limits.
func (req *ExtractRequest) validate() error {
	if len(req.Text) > MaxTextBytes {
		return &ErrTextTooLarge{Field: "text", Size: len(req.Text), Limit: MaxTextBytes}
	}
	if len(req.JobDescription) > MaxTextBytes {
		return &ErrTextTooLarge{Field: "job_description", Size: len(req.JobDescription), Limit: MaxTextBytes}
	}
	return nil
}

// handleExtract runs one extraction
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result := s.extractor.Extract(r.Context(), extraction.Request{
		Text:           req.Text,
		Industry:       types.ParseIndustry(req.Industry),
		JobDescription: req.JobDescription,
	})

	meta := result.Metadata
	fields := logger.RequestFields(meta.RequestID, meta.Industry.String(), meta.KnowledgeVersion)
	fields = append(fields,
		zap.String("http_request_id", middleware.GetRequestID(r)),
		zap.Int("matches", len(result.Matches)),
		zap.Bool("ai_signal", meta.AISignal),
	)
	s.logger.Info("extraction served", fields...)

	s.jsonResponse(w, http.StatusOK, result)
}

// handleIndustries lists the industries with dedicated rule sets
func (s *Server) handleIndustries(w http.ResponseWriter, _ *http.Request) {
	known := types.KnownIndustries()
	names := make([]string, 0, len(known))
	for _, industry := range known {
		names = append(names, industry.String())
	}
	s.jsonResponse(w, http.StatusOK, IndustriesResponse{Industries: names})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:           "ok",
		KnowledgeVersion: s.extractor.KnowledgeVersion(),
	})
}
