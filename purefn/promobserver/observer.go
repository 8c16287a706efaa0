// Package promobserver exports binding activity as Prometheus counters.
package promobserver

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/on-the-ground/purememo/pure"
)

var _ pure.Observer = (*Observer)(nil)

// Observer counts hits, misses, stores and evictions per binding.
type Observer struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	stores    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// New creates the counters under namespace and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Observer, error) {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memo",
			Name:      name,
			Help:      help,
		}, []string{"binding"})
	}
	o := &Observer{
		hits:      counter("hits_total", "Calls answered from the cache."),
		misses:    counter("misses_total", "Calls that ran the function body."),
		stores:    counter("stores_total", "Results written to the cache."),
		evictions: counter("evictions_total", "Entries evicted as least recently used."),
	}
	for _, c := range []prometheus.Collector{o.hits, o.misses, o.stores, o.evictions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) OnHit(binding string)   { o.hits.WithLabelValues(binding).Inc() }
func (o *Observer) OnMiss(binding string)  { o.misses.WithLabelValues(binding).Inc() }
func (o *Observer) OnStore(binding string) { o.stores.WithLabelValues(binding).Inc() }
func (o *Observer) OnEvict(binding string) { o.evictions.WithLabelValues(binding).Inc() }
