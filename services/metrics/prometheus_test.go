package metricsvc

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lessonnotes/core/submission"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.SubmissionCreated(submission.Submission{ID: 6})
	r.SubmissionCreated(submission.Submission{ID: 7})
	r.StatusChanged(submission.StatusPending, submission.StatusNeedsCorrection)
	r.StatusChanged(submission.StatusNeedsCorrection, submission.StatusApproved)
	r.StatusChanged(submission.StatusPending, submission.StatusNeedsCorrection)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.created))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.transitions.WithLabelValues("Pending", "Needs Correction")))

	expected := `
# HELP lessonnotes_status_transitions_total Number of reviews, by previous and new status.
# TYPE lessonnotes_status_transitions_total counter
lessonnotes_status_transitions_total{from="Needs Correction",to="Approved"} 1
lessonnotes_status_transitions_total{from="Pending",to="Needs Correction"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lessonnotes_status_transitions_total"))

	// registering twice fails
	_, err = NewRecorder(reg)
	assert.Error(t, err)
}
