package models

import "time"

// Category classifies a story. The set is fixed; the service boundary rejects
// anything outside it.
type Category string

const (
	CategoryFinancial  Category = "Financial"
	CategoryTechnology Category = "Technology"
	CategoryHealth     Category = "Health"
)

// Status is the publication state of a story.
type Status string

const (
	StatusPublish Status = "Publish"
	StatusDraft   Status = "Draft"
)

// Categories lists the allowed categories in the order the API exposes them.
func Categories() []Category {
	return []Category{CategoryFinancial, CategoryTechnology, CategoryHealth}
}

// Statuses lists the allowed statuses in the order the API exposes them.
func Statuses() []Status {
	return []Status{StatusPublish, StatusDraft}
}

// IsValid reports whether the category belongs to the fixed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFinancial, CategoryTechnology, CategoryHealth:
		return true
	}
	return false
}

// IsValid reports whether the status belongs to the fixed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusPublish, StatusDraft:
		return true
	}
	return false
}

// Chapter is one titled content unit owned by exactly one story.
type Chapter struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Story is a top-level authored work with its nested chapters.
// The ID is assigned at creation and immutable thereafter.
type Story struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Synopsis string    `json:"synopsis"`
	Category Category  `json:"category"`
	Keywords []string  `json:"keywords"`
	Status   Status    `json:"status"`
	Chapters []Chapter `json:"chapters"`
}

// StoryPayload is the request body shape for create and update. Update is a
// total replacement: fields omitted here reset to their defaults, they are
// not inherited from the stored record.
type StoryPayload struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Synopsis string    `json:"synopsis"`
	Category Category  `json:"category"`
	Keywords []string  `json:"keywords"`
	Status   Status    `json:"status"`
	Chapters []Chapter `json:"chapters"`
}
