package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
	httperrors "github.com/quizforge/studyrag/pkg/http/errors"
)

// ProjectCreator persists new projects.
type ProjectCreator interface {
	Create(ctx context.Context, name, ownerRef string) (repository.Project, error)
}

// HTTPHandlers provides REST endpoints for projects and ingestion.
type HTTPHandlers struct {
	svc      *Service
	projects ProjectCreator
	logger   zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the write path.
func NewHTTPHandlers(svc *Service, projects ProjectCreator, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, projects: projects, logger: logger}
}

// CreateProject handles POST /v1/projects
func (h *HTTPHandlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "name is required")
		return
	}

	project, err := h.projects.Create(r.Context(), req.Name, req.OwnerRef)
	if err != nil {
		h.logger.Error().Err(err).Msg("project creation failed")
		httperrors.RespondInternalError(w, "could not create project")
		return
	}

	respondJSON(w, http.StatusCreated, ProjectResponse{
		ProjectID: project.ID.String(),
		Name:      project.Name,
		OwnerRef:  project.OwnerRef,
		CreatedAt: project.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// IngestDocuments handles POST /v1/projects/{id}/documents
func (h *HTTPHandlers) IngestDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid project id")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	resp, err := h.svc.Ingest(r.Context(), projectID, req.Documents)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch fault.KindOf(err) {
	case fault.KindInvalid, fault.KindConfig:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
	case fault.KindNotFound:
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, err.Error())
	case fault.KindUpstream:
		h.logger.Error().Err(err).Msg("ingest upstream failure")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, err.Error())
	default:
		h.logger.Error().Err(err).Msg("ingest failed")
		httperrors.RespondInternalError(w, "ingest failed")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
