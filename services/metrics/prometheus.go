package metricsvc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/lessonnotes/core/submission"
)

// Recorder counts workflow events as prometheus metrics.
type Recorder struct {
	created     prometheus.Counter
	transitions *prometheus.CounterVec
}

var _ submission.Recorder = (*Recorder)(nil)

// NewRecorder registers the lesson-note counters with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lessonnotes",
			Name:      "submissions_created_total",
			Help:      "Number of lesson notes submitted.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonnotes",
			Name:      "status_transitions_total",
			Help:      "Number of reviews, by previous and new status.",
		}, []string{"from", "to"}),
	}
	for _, c := range []prometheus.Collector{r.created, r.transitions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) SubmissionCreated(submission.Submission) {
	r.created.Inc()
}

func (r *Recorder) StatusChanged(from, to submission.Status) {
	r.transitions.WithLabelValues(string(from), string(to)).Inc()
}
