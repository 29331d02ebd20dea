package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/exam-portal/backend/internal/ai"
	"github.com/exam-portal/backend/internal/config"
	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/store"
)

type AIHandler struct {
	store  *store.Store
	client *ai.Client
	cfg    *config.Config
}

func NewAIHandler(st *store.Store, client *ai.Client, cfg *config.Config) *AIHandler {
	return &AIHandler{store: st, client: client, cfg: cfg}
}

func (h *AIHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.AISettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model":      settings.Model,
		"configured": settings.APIKey != "",
	})
}

func (h *AIHandler) UpdateSettings(c *gin.Context) {
	var req models.AISettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Model == "" {
		req.Model = h.cfg.AI.DefaultModel
	}

	if err := h.store.SaveAISettings(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}

// Chat forwards one student message about a result to the assistant. The
// conversation lives client-side; prior turns ride along in the request and
// nothing is stored on failure or success.
func (h *AIHandler) Chat(c *gin.Context) {
	var req struct {
		Message string       `json:"message" binding:"required"`
		History []ai.Message `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.store.AISettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if settings.APIKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "AI assistant is not configured"})
		return
	}
	if settings.Model == "" {
		settings.Model = h.cfg.AI.DefaultModel
	}

	reply, err := h.client.Chat(c.Request.Context(), settings, ai.BuildSystemPrompt(*result), req.History, req.Message)
	if err != nil {
		logrus.WithError(err).Error("chat completion failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
