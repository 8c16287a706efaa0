package promobserver

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/purememo/purefn"
)

func TestObserver_CountsProtocolSteps(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := New(reg, "test")
	require.NoError(t, err)

	square := purefn.TableizeI1O1(func(n int) int {
		return n * n
	}, purefn.WithName("square"), purefn.WithSize(1), purefn.WithObserver(obs))

	assert.Equal(t, 4, square(2)) // miss, store
	assert.Equal(t, 4, square(2)) // hit
	assert.Equal(t, 9, square(3)) // miss, store, evict

	assert.Equal(t, 1.0, testutil.ToFloat64(obs.hits.WithLabelValues("square")))
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.misses.WithLabelValues("square")))
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.stores.WithLabelValues("square")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.evictions.WithLabelValues("square")))
}

func TestObserver_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "dup")
	require.NoError(t, err)

	_, err = New(reg, "dup")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
