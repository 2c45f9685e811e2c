// Package query computes the visible subset of stories for the listing
// endpoint. It never mutates its input and keeps the input order.
package query

import (
	"strings"

	"story-server/internal/models"
)

// Criteria are the optional listing filters. Empty fields impose no
// constraint; supplied fields are conjunctive.
type Criteria struct {
	Search   string
	Category string
	Status   string
}

// Filter returns the stories matching the criteria, in input order, together
// with the match count.
//
// Search is a case-insensitive substring match against title OR author.
// Category and status are case-sensitive exact matches.
func Filter(stories []models.Story, c Criteria) ([]models.Story, int) {
	matched := make([]models.Story, 0, len(stories))
	search := strings.ToLower(c.Search)

	for _, story := range stories {
		if search != "" &&
			!strings.Contains(strings.ToLower(story.Title), search) &&
			!strings.Contains(strings.ToLower(story.Author), search) {
			continue
		}
		if c.Category != "" && string(story.Category) != c.Category {
			continue
		}
		if c.Status != "" && string(story.Status) != c.Status {
			continue
		}
		matched = append(matched, story)
	}

	return matched, len(matched)
}
