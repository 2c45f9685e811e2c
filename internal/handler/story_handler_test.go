package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"story-server/internal/handler"
	"story-server/internal/models"
	"story-server/internal/repository"
	"story-server/internal/service"
)

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Total   *int            `json:"total"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryStoryRepository(repository.SeedStories()...)
	svc := service.NewStoryService(repo, nil, zap.NewNop())
	h := handler.NewStoryHandler(svc, zap.NewNop())

	router := gin.New()
	router.Use(handler.Recovery(zap.NewNop(), "development"))
	h.RegisterRoutes(router)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func decodeStories(t *testing.T, env envelope) []models.Story {
	t.Helper()
	var stories []models.Story
	require.NoError(t, json.Unmarshal(env.Data, &stories))
	return stories
}

func decodeStory(t *testing.T, env envelope) models.Story {
	t.Helper()
	var story models.Story
	require.NoError(t, json.Unmarshal(env.Data, &story))
	return story
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"title":    "Fresh Story",
		"author":   "Avery",
		"category": "Financial",
		"status":   "Publish",
	}
}

func TestListStories(t *testing.T) {
	router := newTestRouter(t)

	t.Run("no filters returns everything with total", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/stories", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		require.NotNil(t, env.Total)
		assert.Equal(t, 2, *env.Total)
		assert.Len(t, decodeStories(t, env), 2)
	})

	t.Run("search matches case-insensitively on title", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/stories?search=moon", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		stories := decodeStories(t, env)
		require.Len(t, stories, 1)
		assert.Equal(t, "The Moon that Can't be Seen", stories[0].Title)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		_, env := perform(t, router, http.MethodGet, "/api/stories?category=Health&status=Draft", nil)

		stories := decodeStories(t, env)
		require.Len(t, stories, 1)
		assert.Equal(t, "2", stories[0].ID)

		_, env = perform(t, router, http.MethodGet, "/api/stories?category=Health&status=Publish", nil)
		assert.Empty(t, decodeStories(t, env))
	})
}

func TestGetStory(t *testing.T) {
	router := newTestRouter(t)

	t.Run("found", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/stories/1", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "The Moon that Can't be Seen", decodeStory(t, env).Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/stories/nope", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Story not found", env.Message)
	})
}

func TestCreateStory(t *testing.T) {
	router := newTestRouter(t)

	t.Run("success", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodPost, "/api/stories", validBody())

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Story created successfully", env.Message)

		created := decodeStory(t, env)
		assert.NotEmpty(t, created.ID)

		// Newest-first: the new story leads the next listing.
		_, listEnv := perform(t, router, http.MethodGet, "/api/stories", nil)
		stories := decodeStories(t, listEnv)
		require.NotEmpty(t, stories)
		assert.Equal(t, created.ID, stories[0].ID)
	})

	t.Run("missing required fields", func(t *testing.T) {
		body := validBody()
		delete(body, "title")
		delete(body, "status")

		rec, env := perform(t, router, http.MethodPost, "/api/stories", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "title")
		assert.Contains(t, env.Message, "status")
	})

	t.Run("unknown category", func(t *testing.T) {
		body := validBody()
		body["category"] = "Romance"

		rec, env := perform(t, router, http.MethodPost, "/api/stories", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Message, "Romance")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateStory(t *testing.T) {
	router := newTestRouter(t)

	t.Run("total replacement keeps id", func(t *testing.T) {
		body := validBody()
		body["title"] = "Given (Second Edition)"

		rec, env := perform(t, router, http.MethodPut, "/api/stories/2", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Story updated successfully", env.Message)

		updated := decodeStory(t, env)
		assert.Equal(t, "2", updated.ID)
		assert.Equal(t, "Given (Second Edition)", updated.Title)
		// Omitted synopsis resets to its default.
		assert.Equal(t, "", updated.Synopsis)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodPut, "/api/stories/nope", validBody())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Story not found", env.Message)
	})

	t.Run("missing required fields", func(t *testing.T) {
		body := validBody()
		delete(body, "author")

		rec, _ := perform(t, router, http.MethodPut, "/api/stories/1", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteStory(t *testing.T) {
	router := newTestRouter(t)

	rec, env := perform(t, router, http.MethodDelete, "/api/stories/2", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Story deleted successfully", env.Message)
	assert.Equal(t, "Given", decodeStory(t, env).Title)

	// Second delete on the same id fails.
	rec, env = perform(t, router, http.MethodDelete, "/api/stories/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Story not found", env.Message)

	// Exactly one record was removed.
	_, listEnv := perform(t, router, http.MethodGet, "/api/stories", nil)
	require.NotNil(t, listEnv.Total)
	assert.Equal(t, 1, *listEnv.Total)
}

func TestMetadataEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("categories", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/categories", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var categories []string
		require.NoError(t, json.Unmarshal(env.Data, &categories))
		assert.Equal(t, []string{"Financial", "Technology", "Health"}, categories)
	})

	t.Run("statuses", func(t *testing.T) {
		rec, env := perform(t, router, http.MethodGet, "/api/statuses", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var statuses []string
		require.NoError(t, json.Unmarshal(env.Data, &statuses))
		assert.Equal(t, []string{"Publish", "Draft"}, statuses)
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec, env := perform(t, router, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Story App API is running", env.Message)

	var data struct {
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Timestamp)
}

func TestUnmatchedRoute(t *testing.T) {
	router := newTestRouter(t)

	rec, env := perform(t, router, http.MethodGet, "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestSeedScenarioEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	_, env := perform(t, router, http.MethodGet, "/api/stories?category=Technology", nil)
	stories := decodeStories(t, env)
	require.Len(t, stories, 1)
	assert.Equal(t, "1", stories[0].ID)

	_, env = perform(t, router, http.MethodGet, "/api/stories?status=Draft", nil)
	require.NotNil(t, env.Total)
	assert.Equal(t, 2, *env.Total)

	rec, _ := perform(t, router, http.MethodDelete, "/api/stories/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = perform(t, router, http.MethodGet, "/api/stories", nil)
	stories = decodeStories(t, env)
	require.NotNil(t, env.Total)
	assert.Equal(t, 1, *env.Total)
	require.Len(t, stories, 1)
	assert.Equal(t, "1", stories[0].ID)
}
