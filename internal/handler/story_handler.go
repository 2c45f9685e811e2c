package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"story-server/internal/models"
	"story-server/internal/query"
	"story-server/internal/service"
)

// StoryHandler maps the HTTP surface onto the story service.
type StoryHandler struct {
	service *service.StoryService
	logger  *zap.Logger
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(s *service.StoryService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		service: s,
		logger:  logger.Named("StoryHandler"),
	}
}

// RegisterRoutes registers the API routes on the router. Everything lives
// under /api, matching the path the frontend client is built against.
func (h *StoryHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/stories", h.listStories)
		api.GET("/stories/:id", h.getStory)
		api.POST("/stories", h.createStory)
		api.PUT("/stories/:id", h.updateStory)
		api.DELETE("/stories/:id", h.deleteStory)

		api.GET("/categories", h.listCategories)
		api.GET("/statuses", h.listStatuses)
		api.GET("/health", h.health)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Fail("Route not found"))
	})
}

// listStories returns the stories matching the optional search/category/
// status query parameters, newest first.
func (h *StoryHandler) listStories(c *gin.Context) {
	criteria := query.Criteria{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	stories, total := h.service.List(criteria)
	c.JSON(http.StatusOK, models.OKList(stories, total))
}

func (h *StoryHandler) getStory(c *gin.Context) {
	story, err := h.service.Get(c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(story))
}

func (h *StoryHandler) createStory(c *gin.Context) {
	var payload models.StoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid create request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	story, err := h.service.Create(payload)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	storiesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, models.OKWithMessage(story, "Story created successfully"))
}

func (h *StoryHandler) updateStory(c *gin.Context) {
	var payload models.StoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid update request body", zap.String("storyID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	story, err := h.service.Update(c.Param("id"), payload)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	storiesUpdatedTotal.Inc()
	c.JSON(http.StatusOK, models.OKWithMessage(story, "Story updated successfully"))
}

func (h *StoryHandler) deleteStory(c *gin.Context) {
	story, err := h.service.Delete(c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	storiesDeletedTotal.Inc()
	c.JSON(http.StatusOK, models.OKWithMessage(story, "Story deleted successfully"))
}

func (h *StoryHandler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.OK(models.Categories()))
}

func (h *StoryHandler) listStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, models.OK(models.Statuses()))
}

func (h *StoryHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, models.OKWithMessage(
		gin.H{"timestamp": time.Now().UTC().Format(time.RFC3339)},
		"Story App API is running",
	))
}
