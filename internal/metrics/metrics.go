package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var totalSequences atomic.Int64

var (
	PromptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_prompts_total",
		Help: "The total number of CSV prompt rows processed",
	})

	PromptsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_prompts_skipped_total",
		Help: "The total number of prompt rows skipped (empty prompt)",
	})

	SequencesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_sequences_total",
		Help: "The total number of generated sequences",
	})

	GenerationDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "scribe_generation_duration_seconds",
		Help: "Duration of single generation calls",
	})

	GenerationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_generation_errors_total",
		Help: "Total number of failed generation calls",
	}, []string{"family"})

	PromptLengthChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scribe_prompt_length_chars",
		Help:    "Distribution of raw prompt lengths in characters",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	PrepareWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_prepare_warnings_total",
		Help: "Total number of prompt preparation warnings",
	}, []string{"family", "reason"})

	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_sink_errors_total",
		Help: "Total number of result sink write failures",
	}, []string{"sink"})
)

// RecordGeneration records one completed generation call.
func RecordGeneration(sequences int, duration time.Duration) {
	SequencesTotal.Add(float64(sequences))
	GenerationDuration.Observe(duration.Seconds())
	totalSequences.Add(int64(sequences))
}

// RecordPrompt records one prompt row entering the loop.
func RecordPrompt(lengthChars int) {
	PromptsTotal.Inc()
	PromptLengthChars.Observe(float64(lengthChars))
}

// RecordPrepareWarning records a preparation warning for a model family.
func RecordPrepareWarning(family, reason string) {
	PrepareWarnings.WithLabelValues(family, reason).Inc()
}

// RecordGenerationError records a failed generation call.
func RecordGenerationError(family string) {
	GenerationErrors.WithLabelValues(family).Inc()
}

// RecordSinkError records a result sink write failure.
func RecordSinkError(sink string) {
	SinkErrors.WithLabelValues(sink).Inc()
}

// TotalSequences returns the process-lifetime sequence count.
func TotalSequences() int64 {
	return totalSequences.Load()
}
