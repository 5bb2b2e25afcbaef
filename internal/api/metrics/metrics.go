// Package metrics defines and registers all custom Prometheus metrics for the
// brandbook entries API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "brandbook"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login/password-change outcomes.
// Labels:
//   - action: "register", "login" or "change_password"
//   - result: "success", "invalid", "exists", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Entry metrics ─────────────────────────────────────────────────────────────

// EntryMutationsTotal counts entry collection writes.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "applied", "noop" or "error"
var EntryMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entry_mutations_total",
		Help:      "Total number of entry mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Image metrics ─────────────────────────────────────────────────────────────

// ImageUploadsTotal counts uploads forwarded to object storage.
// Label:
//   - result: "success" or "error"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image uploads, by result.",
	},
	[]string{"result"},
)

// ImageUploadBytes observes the size of uploaded images.
var ImageUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_bytes",
		Help:      "Size in bytes of uploaded images.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6), // 16KiB … 16MiB
	},
)

// Recorder feeds core operation outcomes into the metrics above.
type Recorder struct{}

func (Recorder) AuthAttempt(action, result string) {
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

func (Recorder) EntryMutation(op, result string) {
	EntryMutationsTotal.WithLabelValues(op, result).Inc()
}

func (Recorder) ImageUpload(result string, size int) {
	ImageUploadsTotal.WithLabelValues(result).Inc()
	if result == "success" {
		ImageUploadBytes.Observe(float64(size))
	}
}
