package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/repos"
	"github.com/unbiaslab/unbias-backend/internal/services"
)

type CitationHandler struct {
	log             *logger.Logger
	citationService services.CitationService
}

func NewCitationHandler(log *logger.Logger, citationService services.CitationService) *CitationHandler {
	return &CitationHandler{
		log:             log.With("handler", "CitationHandler"),
		citationService: citationService,
	}
}

type addCitationRequest struct {
	CitationText string `json:"citation_text" binding:"required"`
	Source       string `json:"source"`
	User         string `json:"user"`
}

type validateCitationRequest struct {
	CitationID uuid.UUID `json:"citation_id" binding:"required"`
	User       string    `json:"user"`
}

// POST /api/theories/:id/citations
func (h *CitationHandler) AddCitation(c *gin.Context) {
	theoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req addCitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	citation, err := h.citationService.Add(c.Request.Context(), theoryID, services.CitationAddInput{
		CitationText: req.CitationText,
		Source:       req.Source,
		User:         req.User,
	})
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "theory_not_found", err)
			return
		}
		h.log.Error("AddCitation failed", "error", err, "theory_id", theoryID)
		RespondError(c, http.StatusInternalServerError, "add_citation_failed", err)
		return
	}
	RespondOK(c, citation)
}

// POST /api/citations/validate
//
// Remote validation failures do not surface here: they arrive as a
// verdict with status "error" and go out as a 200 like any other.
func (h *CitationHandler) ValidateCitation(c *gin.Context) {
	var req validateCitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	outcome, err := h.citationService.Validate(c.Request.Context(), req.CitationID, req.User)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "citation_not_found", err)
			return
		}
		h.log.Error("ValidateCitation failed", "error", err, "citation_id", req.CitationID)
		RespondError(c, http.StatusInternalServerError, "validate_citation_failed", err)
		return
	}
	RespondOK(c, outcome)
}
