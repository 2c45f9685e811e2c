package repository

import (
	"sync"

	"story-server/internal/models"
)

// StoryRepository is the storage contract the service layer works against.
// The in-memory implementation below is the only one today; keeping the
// interface lets a persistent backend slot in without touching the service.
type StoryRepository interface {
	// All returns a snapshot of the stories in store order (newest first).
	All() []models.Story
	// FindByID returns the story with the given id, if any.
	FindByID(id string) (models.Story, bool)
	// IndexOf returns the position of the story with the given id, or -1.
	IndexOf(id string) int
	// InsertFront adds a story at the head of the sequence.
	InsertFront(story models.Story)
	// ReplaceAt overwrites the story at the given position.
	ReplaceAt(index int, story models.Story)
	// RemoveAt removes and returns the story at the given position.
	RemoveAt(index int) models.Story
	// Len returns the number of stored stories.
	Len() int
}

// MemoryStoryRepository holds the canonical ordered story sequence for the
// process lifetime. Records are replaced wholesale, never edited in place,
// so readers only need a consistent view of the slice itself.
type MemoryStoryRepository struct {
	mu      sync.RWMutex
	stories []models.Story
}

// NewMemoryStoryRepository creates a store pre-populated with the given
// stories, kept in the order supplied.
func NewMemoryStoryRepository(seed ...models.Story) *MemoryStoryRepository {
	stories := make([]models.Story, len(seed))
	copy(stories, seed)
	return &MemoryStoryRepository{stories: stories}
}

func (r *MemoryStoryRepository) All() []models.Story {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]models.Story, len(r.stories))
	copy(snapshot, r.stories)
	return snapshot
}

func (r *MemoryStoryRepository) FindByID(id string) (models.Story, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, story := range r.stories {
		if story.ID == id {
			return story, true
		}
	}
	return models.Story{}, false
}

func (r *MemoryStoryRepository) IndexOf(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, story := range r.stories {
		if story.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryStoryRepository) InsertFront(story models.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stories = append([]models.Story{story}, r.stories...)
}

func (r *MemoryStoryRepository) ReplaceAt(index int, story models.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stories[index] = story
}

func (r *MemoryStoryRepository) RemoveAt(index int) models.Story {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.stories[index]
	r.stories = append(r.stories[:index], r.stories[index+1:]...)
	return removed
}

func (r *MemoryStoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stories)
}
