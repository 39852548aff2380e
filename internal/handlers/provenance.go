package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/services"
)

type ProvenanceHandler struct {
	log               *logger.Logger
	provenanceService services.ProvenanceService
}

func NewProvenanceHandler(log *logger.Logger, provenanceService services.ProvenanceService) *ProvenanceHandler {
	return &ProvenanceHandler{
		log:               log.With("handler", "ProvenanceHandler"),
		provenanceService: provenanceService,
	}
}

// GET /api/theories/:id/provenance
//
// No 404 here: a theory with no history (or no theory at all) is an
// empty list.
func (h *ProvenanceHandler) GetTheoryProvenance(c *gin.Context) {
	theoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	history, err := h.provenanceService.History(c.Request.Context(), theoryID)
	if err != nil {
		h.log.Error("GetTheoryProvenance failed", "error", err, "theory_id", theoryID)
		RespondError(c, http.StatusInternalServerError, "load_provenance_failed", err)
		return
	}
	RespondOK(c, history)
}
