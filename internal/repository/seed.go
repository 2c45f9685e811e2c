package repository

import (
	"time"

	"story-server/internal/models"
)

// SeedStories returns the demo records the service starts with. The store has
// no persistence, so a restart always comes back to this set.
func SeedStories() []models.Story {
	return []models.Story{
		{
			ID:       "1",
			Title:    "The Moon that Can't be Seen",
			Author:   "Rara",
			Synopsis: "A mysterious story about a moon that cannot be seen by anyone.",
			Category: models.CategoryTechnology,
			Keywords: []string{"school", "fiction"},
			Status:   models.StatusDraft,
			Chapters: []models.Chapter{
				{
					ID:          "1",
					Title:       "Chapter 1: The Beginning",
					Content:     "This is the content of chapter 1...",
					LastUpdated: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				},
				{
					ID:          "2",
					Title:       "Chapter 2: The Journey",
					Content:     "This is the content of chapter 2...",
					LastUpdated: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:       "2",
			Title:    "Given",
			Author:   "Sansa S.",
			Synopsis: "A story about music and its healing power.",
			Category: models.CategoryHealth,
			Keywords: []string{"music"},
			Status:   models.StatusDraft,
			Chapters: []models.Chapter{
				{
					ID:          "3",
					Title:       "Chapter 1: Introduction",
					Content:     "This is the content of chapter 1...",
					LastUpdated: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}
