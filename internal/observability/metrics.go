package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MediaUploads counts media uploads by kind (video, thumbnail, avatar) and outcome.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_media_uploads_total",
		Help: "Total number of media uploads by kind and outcome",
	}, []string{"kind", "outcome"})

	// MediaUploadBytes records uploaded object sizes by kind.
	MediaUploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_media_upload_bytes",
		Help:    "Size of uploaded media objects in bytes",
		Buckets: prometheus.ExponentialBuckets(64<<10, 4, 8),
	}, []string{"kind"})

	// Toggles counts like and subscription toggles by subject and resulting state.
	Toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_toggles_total",
		Help: "Total number of like and subscription toggles",
	}, []string{"subject", "state"})

	// EventsPublished counts domain events handed to the broker by type and outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_events_published_total",
		Help: "Total number of domain events published",
	}, []string{"type", "outcome"})

	// CacheLookups counts cache-aside lookups by key family and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_cache_lookups_total",
		Help: "Total number of cache-aside lookups by result",
	}, []string{"family", "result"})
)

// ToggleState renders a toggle outcome as a metric label.
func ToggleState(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
