// Package observability exposes prometheus metrics for the application's
// domain events. Request-level metrics come from the fiberprometheus
// middleware; the counters here track what the handlers actually did.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successful uploads appended to the content log.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memebin_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsDeleted counts posts removed from the content log by their owner.
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memebin_posts_deleted_total",
		Help: "Total number of posts deleted",
	})

	// UploadsRejected counts uploads refused by extension validation.
	UploadsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memebin_uploads_rejected_total",
		Help: "Total number of uploads rejected by the extension allow-list",
	})

	// ChatMessages counts messages appended to the shared chat log.
	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memebin_chat_messages_total",
		Help: "Total number of chat messages posted",
	})

	// SignupsTotal counts account registrations by outcome.
	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memebin_signups_total",
		Help: "Total number of signup attempts by outcome",
	}, []string{"outcome"})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memebin_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})
)
