package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storiesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_creations_total",
		Help: "Total number of successfully created stories.",
	})

	storiesUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_updates_total",
		Help: "Total number of successful story updates.",
	})

	storiesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_deletions_total",
		Help: "Total number of successfully deleted stories.",
	})
)
