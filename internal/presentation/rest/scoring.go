package rest

import (
	"log/slog"
	"net/http"

	"github.com/bibbank/loanscore/internal/application/dto"
	"github.com/bibbank/loanscore/internal/application/usecase"
)

// ScoringHandler exposes the scoring use cases over HTTP.
type ScoringHandler struct {
	assessApplication *usecase.AssessApplication
	listVariants      *usecase.ListVariants
	logger            *slog.Logger
}

// NewScoringHandler creates a scoring HTTP handler.
func NewScoringHandler(
	assessApplication *usecase.AssessApplication,
	listVariants *usecase.ListVariants,
	logger *slog.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		assessApplication: assessApplication,
		listVariants:      listVariants,
		logger:            logger,
	}
}

// RegisterRoutes attaches the scoring routes to the given mux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assessments", h.AssessApplication)
	mux.HandleFunc("GET /v1/variants", h.ListVariants)
}

// AssessApplication handles POST /v1/assessments.
func (h *ScoringHandler) AssessApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessApplicationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.assessApplication.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListVariants handles GET /v1/variants.
func (h *ScoringHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listVariants.Execute(r.Context())
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	if usecase.IsClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
