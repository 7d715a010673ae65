package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scbizu/umbreon/app/database"
	"github.com/scbizu/umbreon/app/timeline"
)

func NewHandler(service *timeline.Service, settingsRepo database.SettingsRepository) *Handler {
	return &Handler{
		service:      service,
		settingsRepo: settingsRepo,
	}
}

func (h *Handler) GetTimeline(c *gin.Context) {
	items := h.service.Items()

	response := TimelineResponse{
		Items:  make([]ItemResponse, 0, len(items)),
		Status: h.service.Status(),
		Busy:   h.service.IsBusy(),
	}
	for _, item := range items {
		response.Items = append(response.Items, itemResponse(item))
	}

	c.JSON(http.StatusOK, response)
}

// TriggerSync starts one sync pass in the background. Overlapping syncs
// against the same item store are rejected here; the facade itself does
// not serialize invocations.
func (h *Handler) TriggerSync(c *gin.Context) {
	if h.service.IsBusy() {
		c.JSON(http.StatusConflict, gin.H{"error": "sync already in progress"})
		return
	}

	url := h.service.FeedServerURL()
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a Feed Server URL."})
		return
	}

	go h.service.Sync(context.Background(), url)

	c.JSON(http.StatusAccepted, gin.H{"status": "Syncing feeds..."})
}

func (h *Handler) RefreshModels(c *gin.Context) {
	models, err := h.service.RefreshModels(c.Request.Context())
	if err != nil {
		slog.Error("Model refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := []struct {
		value *string
		store func(string) error
	}{
		{req.LLMEndpoint, h.settingsRepo.SetLLMEndpoint},
		{req.LLMAPIKey, h.settingsRepo.SetLLMAPIKey},
		{req.LLMModel, h.settingsRepo.SetLLMModel},
		{req.Theme, h.settingsRepo.SetTheme},
	}
	for _, update := range updates {
		if update.value == nil {
			continue
		}
		if err := update.store(*update.value); err != nil {
			slog.Error("Failed to store setting", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.FeedServerURL != nil {
		if err := h.settingsRepo.SetFeedServerURL(*req.FeedServerURL); err != nil {
			slog.Error("Failed to store feed server URL", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.service.SetFeedServerURL(*req.FeedServerURL)
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"items":     len(h.service.Items()),
		"busy":      h.service.IsBusy(),
	})
}
