package http

import (
	"net/http"
	"time"

	"mapban/internal/application"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *application.Service
	logger   application.Logger
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateMatch(c *gin.Context) {
	var in application.CreateMatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.MatchService.CreateMatch(in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListMatches(c *gin.Context) {
	matches, err := h.services.MatchService.ListMatches()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *Handler) DeleteMatch(c *gin.Context) {
	if err := h.services.MatchService.DeleteMatch(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) PublicState(c *gin.Context) {
	view, err := h.services.MatchService.PublicState(c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) PlayState(c *gin.Context) {
	view, err := h.services.MatchService.PlayState(c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type banRequest struct {
	Map string `json:"map"`
}

func (h *Handler) SubmitBan(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.MatchService.SubmitBan(c.Param("token"), req.Map)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"state":        result.State,
		"current_turn": result.CurrentTurn,
		"remaining":    result.Remaining,
		"final_map":    result.FinalMap,
	})
}

func (h *Handler) AdminMatches(c *gin.Context) {
	matches, err := h.services.MatchService.AdminMatches()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

type bulkDeleteRequest struct {
	MatchIDs []string `json:"matchIds"`
}

func (h *Handler) DeleteMatches(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deleted, err := h.services.MatchService.DeleteMatches(req.MatchIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}

func (h *Handler) ExportMatches(c *gin.Context) {
	data, err := h.services.MatchService.ExportMatches()
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := "matches-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
