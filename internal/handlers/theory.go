package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/repos"
	"github.com/unbiaslab/unbias-backend/internal/services"
)

type TheoryHandler struct {
	log           *logger.Logger
	theoryService services.TheoryService
}

func NewTheoryHandler(log *logger.Logger, theoryService services.TheoryService) *TheoryHandler {
	return &TheoryHandler{
		log:           log.With("handler", "TheoryHandler"),
		theoryService: theoryService,
	}
}

type createTheoryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author"`
	User    string `json:"user"`
}

type updateTheoryRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
	User    string  `json:"user"`
}

// POST /api/theories
func (h *TheoryHandler) CreateTheory(c *gin.Context) {
	var req createTheoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	theory, err := h.theoryService.Create(c.Request.Context(), services.TheoryCreateInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		User:    req.User,
	})
	if err != nil {
		h.log.Error("CreateTheory failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "create_theory_failed", err)
		return
	}
	RespondOK(c, theory)
}

// GET /api/theories?skip=&limit=
func (h *TheoryHandler) ListTheories(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	theories, err := h.theoryService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("ListTheories failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_theories_failed", err)
		return
	}
	RespondOK(c, theories)
}

// GET /api/theories/:id
func (h *TheoryHandler) GetTheory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	theory, err := h.theoryService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "theory_not_found", err)
			return
		}
		h.log.Error("GetTheory failed", "error", err, "theory_id", id)
		RespondError(c, http.StatusInternalServerError, "get_theory_failed", err)
		return
	}
	RespondOK(c, theory)
}

// PUT /api/theories/:id
func (h *TheoryHandler) UpdateTheory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateTheoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	theory, err := h.theoryService.Update(c.Request.Context(), id, services.TheoryUpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		User:    req.User,
	})
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "theory_not_found", err)
			return
		}
		h.log.Error("UpdateTheory failed", "error", err, "theory_id", id)
		RespondError(c, http.StatusInternalServerError, "update_theory_failed", err)
		return
	}
	RespondOK(c, theory)
}

// DELETE /api/theories/:id
func (h *TheoryHandler) DeleteTheory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.theoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "theory_not_found", err)
			return
		}
		h.log.Error("DeleteTheory failed", "error", err, "theory_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_theory_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "Theory deleted successfully"})
}

// GET /api/theories/:id/assumptions
func (h *TheoryHandler) ListAssumptions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	assumptions, err := h.theoryService.Assumptions(c.Request.Context(), id)
	if err != nil {
		h.log.Error("ListAssumptions failed", "error", err, "theory_id", id)
		RespondError(c, http.StatusInternalServerError, "list_assumptions_failed", err)
		return
	}
	RespondOK(c, assumptions)
}

// GET /api/theories/:id/contradictions
func (h *TheoryHandler) ListContradictions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	contradictions, err := h.theoryService.Contradictions(c.Request.Context(), id)
	if err != nil {
		h.log.Error("ListContradictions failed", "error", err, "theory_id", id)
		RespondError(c, http.StatusInternalServerError, "list_contradictions_failed", err)
		return
	}
	RespondOK(c, contradictions)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
