package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
	"github.com/exam-portal/backend/internal/store"
)

type StatsHandler struct {
	store  *store.Store
	schema []models.QuestionSpec
}

func NewStatsHandler(st *store.Store) *StatsHandler {
	return &StatsHandler{store: st, schema: models.DefaultQuestions}
}

// GetStats recomputes the summary from the full result set on every read.
// Responds with a JSON null body when no results are stored; the dashboard
// branches on that.
func (h *StatsHandler) GetStats(c *gin.Context) {
	rs, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results.ComputeStats(rs, h.schema))
}
