package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSubmission(t *testing.T) {
	m := New()

	m.ObserveSubmission(ResultAccepted)
	m.ObserveSubmission(ResultAccepted)
	m.ObserveSubmission(ResultRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(ResultRejected)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Submissions.WithLabelValues(ResultFailed)))
}

func TestNewUsesIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.Entries.Set(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.Entries))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Entries))
}
