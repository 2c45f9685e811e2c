package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"story-server/internal/client"
	"story-server/internal/handler"
	"story-server/internal/models"
	"story-server/internal/query"
	"story-server/internal/repository"
	"story-server/internal/service"
)

func newTestServer(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryStoryRepository(repository.SeedStories()...)
	svc := service.NewStoryService(repo, nil, zap.NewNop())
	h := handler.NewStoryHandler(svc, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return client.New(client.Config{BaseURL: srv.URL + "/api"})
}

func TestClient_ListStories(t *testing.T) {
	c := newTestServer(t)

	stories, total, err := c.ListStories(context.Background(), query.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, stories, 2)

	stories, total, err = c.ListStories(context.Background(), query.Criteria{Search: "moon", Status: "Draft"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, stories, 1)
	assert.Equal(t, "1", stories[0].ID)
}

func TestClient_GetStory(t *testing.T) {
	c := newTestServer(t)

	story, err := c.GetStory(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Given", story.Title)

	_, err = c.GetStory(context.Background(), "missing")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Story not found", apiErr.Message)
}

func TestClient_CreateUpdateDelete(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	created, err := c.CreateStory(ctx, models.StoryPayload{
		Title:    "Round Trip",
		Author:   "Avery",
		Category: models.CategoryTechnology,
		Status:   models.StatusDraft,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := c.UpdateStory(ctx, created.ID, models.StoryPayload{
		Title:    "Round Trip (edited)",
		Author:   "Avery",
		Category: models.CategoryTechnology,
		Status:   models.StatusPublish,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, models.StatusPublish, updated.Status)

	removed, err := c.DeleteStory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, total, err := c.ListStories(ctx, query.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestClient_CreateValidationError(t *testing.T) {
	c := newTestServer(t)

	_, err := c.CreateStory(context.Background(), models.StoryPayload{Author: "No Title"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestClient_Metadata(t *testing.T) {
	c := newTestServer(t)

	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Financial", "Technology", "Health"}, categories)

	statuses, err := c.Statuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Publish", "Draft"}, statuses)
}

func TestClient_Health(t *testing.T) {
	c := newTestServer(t)

	message, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Story App API is running", message)
}
