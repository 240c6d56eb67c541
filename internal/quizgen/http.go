package quizgen

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/fault"
	httperrors "github.com/quizforge/studyrag/pkg/http/errors"
)

// HTTPHandlers provides the quiz generation endpoint.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz generation.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// GenerateQuiz handles POST /v1/projects/{id}/quiz
func (h *HTTPHandlers) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid project id")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	quiz, err := h.svc.Generate(r.Context(), projectID, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(quiz)
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch fault.KindOf(err) {
	case fault.KindInvalid:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
	case fault.KindNotFound:
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, err.Error())
	case fault.KindPrecondition:
		httperrors.RespondUnprocessable(w, httperrors.ErrCodePreconditionFailed, err.Error())
	case fault.KindMalformed:
		h.logger.Warn().Err(err).Msg("quiz output rejected")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeMalformedOutput, err.Error())
	case fault.KindUpstream:
		h.logger.Error().Err(err).Msg("quiz upstream failure")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, err.Error())
	default:
		h.logger.Error().Err(err).Msg("quiz generation failed")
		httperrors.RespondInternalError(w, "quiz generation failed")
	}
}
