package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"story-server/internal/models"
	"story-server/internal/query"
	"story-server/internal/repository"
)

// EventPublisher receives a notification after every successful mutation so
// connected UIs can refresh without polling. Implemented by the websocket
// manager; a nil publisher disables notifications.
type EventPublisher interface {
	StoryCreated(story models.Story)
	StoryUpdated(story models.Story)
	StoryDeleted(story models.Story)
}

// StoryService is the validated entry point over the story store.
type StoryService struct {
	repo   repository.StoryRepository
	events EventPublisher
	logger *zap.Logger

	// Serializes mutations. Lookups run unsynchronized against repository
	// snapshots; the only anomaly class otherwise is lost updates from
	// interleaved find-then-replace sequences.
	mu sync.Mutex
}

// NewStoryService creates a service over the given repository. events may be
// nil.
func NewStoryService(repo repository.StoryRepository, events EventPublisher, logger *zap.Logger) *StoryService {
	return &StoryService{
		repo:   repo,
		events: events,
		logger: logger.Named("StoryService"),
	}
}

// List returns the stories matching the criteria, newest first, with the
// match count. It never fails.
func (s *StoryService) List(criteria query.Criteria) ([]models.Story, int) {
	return query.Filter(s.repo.All(), criteria)
}

// Get returns the story with the given id or models.ErrNotFound.
func (s *StoryService) Get(id string) (models.Story, error) {
	story, ok := s.repo.FindByID(id)
	if !ok {
		return models.Story{}, models.ErrNotFound
	}
	return story, nil
}

// Create validates the payload, assigns a fresh id, applies defaults and
// inserts the story at the front of the store.
func (s *StoryService) Create(payload models.StoryPayload) (models.Story, error) {
	if err := validatePayload(payload); err != nil {
		return models.Story{}, err
	}

	story := storyFromPayload(payload)
	story.ID = uuid.NewString()

	s.mu.Lock()
	s.repo.InsertFront(story)
	s.mu.Unlock()

	s.logger.Info("story created",
		zap.String("storyID", story.ID),
		zap.String("title", story.Title),
	)
	if s.events != nil {
		s.events.StoryCreated(story)
	}
	return story, nil
}

// Update replaces every mutable field of the story with the payload's values,
// preserving id and store position. Fields omitted from the payload reset to
// their defaults; this is a total replacement, not a patch.
func (s *StoryService) Update(id string, payload models.StoryPayload) (models.Story, error) {
	if err := validatePayload(payload); err != nil {
		return models.Story{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.repo.IndexOf(id)
	if index == -1 {
		return models.Story{}, models.ErrNotFound
	}

	story := storyFromPayload(payload)
	story.ID = id
	s.repo.ReplaceAt(index, story)

	s.logger.Info("story updated", zap.String("storyID", id))
	if s.events != nil {
		s.events.StoryUpdated(story)
	}
	return story, nil
}

// Delete removes the story with the given id and returns the removed record.
func (s *StoryService) Delete(id string) (models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.repo.IndexOf(id)
	if index == -1 {
		return models.Story{}, models.ErrNotFound
	}

	removed := s.repo.RemoveAt(index)

	s.logger.Info("story deleted", zap.String("storyID", id))
	if s.events != nil {
		s.events.StoryDeleted(removed)
	}
	return removed, nil
}

// validatePayload enforces required-field presence and enum membership. The
// store itself never sees an out-of-set category or status.
func validatePayload(p models.StoryPayload) error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Author) == "" {
		missing = append(missing, "author")
	}
	if p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Status == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", models.ErrValidation, strings.Join(missing, ", "))
	}

	if !p.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", models.ErrValidation, p.Category)
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrValidation, p.Status)
	}
	return nil
}

// storyFromPayload builds a store record from a validated payload, applying
// defaults and normalizing chapters. The id is left for the caller to set.
func storyFromPayload(p models.StoryPayload) models.Story {
	keywords := p.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	chapters := make([]models.Chapter, len(p.Chapters))
	now := time.Now().UTC()
	for i, ch := range p.Chapters {
		if ch.ID == "" {
			ch.ID = uuid.NewString()
		}
		if ch.LastUpdated.IsZero() {
			ch.LastUpdated = now
		}
		chapters[i] = ch
	}

	return models.Story{
		Title:    p.Title,
		Author:   p.Author,
		Synopsis: p.Synopsis,
		Category: p.Category,
		Keywords: keywords,
		Status:   p.Status,
		Chapters: chapters,
	}
}
