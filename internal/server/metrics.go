/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/botobag/relgraph/graphql/handler"
	"github.com/botobag/relgraph/store"
)

const metricsNamespace = "relgraph"

// Metrics holds the collectors exported at the metrics endpoint.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	entities *entityCollector
}

// NewMetrics creates collectors registered in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "graphql_requests_total",
			Help:      "Number of GraphQL requests served, by endpoint, operation type and outcome.",
		}, []string{"endpoint", "operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "graphql_request_duration_seconds",
			Help:      "Time spent serving GraphQL requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "operation"}),
		entities: &entityCollector{
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(metricsNamespace, "", "entities"),
				"Number of stored entities by endpoint and kind.",
				[]string{"endpoint", "kind"},
				nil,
			),
		},
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		m.requests,
		m.latency,
		m.entities,
	)
	return m
}

// Registry returns the registry to be exposed.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observer returns a handler.Observer that records requests to the endpoint.
func (m *Metrics) Observer(endpoint string) handler.Observer {
	return &requestObserver{
		endpoint: endpoint,
		metrics:  m,
	}
}

// WatchDB exports the entity counts of db under endpoint.
func (m *Metrics) WatchDB(endpoint string, db *store.DB) {
	m.entities.dbs = append(m.entities.dbs, watchedDB{endpoint, db})
}

type requestObserver struct {
	endpoint string
	metrics  *Metrics
}

func (o *requestObserver) ObserveRequest(observation *handler.Observation) {
	operation := observation.OperationType()
	o.metrics.requests.WithLabelValues(o.endpoint, operation, string(observation.Outcome)).Inc()
	o.metrics.latency.WithLabelValues(o.endpoint, operation).Observe(observation.Duration.Seconds())
}

type watchedDB struct {
	endpoint string
	db       *store.DB
}

// entityCollector reports table sizes at scrape time. dbs is only appended before the server
// starts.
type entityCollector struct {
	desc *prometheus.Desc
	dbs  []watchedDB
}

// Describe implements prometheus.Collector.
func (c *entityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *entityCollector) Collect(ch chan<- prometheus.Metric) {
	for _, watched := range c.dbs {
		for kind, count := range watched.db.Counts() {
			ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(count),
				watched.endpoint, kind.String())
		}
	}
}
