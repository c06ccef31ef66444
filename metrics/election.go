// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registerer is re-exported so callers don't need a direct
// client_golang/prometheus import just to construct an Election.
type Registerer = prometheus.Registerer

// Election holds the election provider's Prometheus collectors.
type Election struct {
	PhaseTransitions   *prometheus.CounterVec
	SignedQueueLen     prometheus.Gauge
	SolutionsStored    *prometheus.CounterVec
	ElectionsFinalized *prometheus.CounterVec
	OffchainAccepted   prometheus.Counter
	OffchainRejected   *prometheus.CounterVec
}

// NewElection constructs and registers the election provider's
// collectors against reg. A nil reg is tolerated by using a private
// registry, so tests and demo binaries can construct a Provider without
// wiring a real metrics endpoint.
func NewElection(reg Registerer) *Election {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	e := &Election{
		PhaseTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "election",
			Name:      "phase_transitions_total",
			Help:      "Count of phase transitions by destination phase.",
		}, []string{"phase"}),
		SignedQueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "election",
			Name:      "signed_queue_length",
			Help:      "Current number of entries in the signed submission queue.",
		}),
		SolutionsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "election",
			Name:      "solutions_stored_total",
			Help:      "Count of solutions stored as the queued solution, by compute kind.",
		}, []string{"compute"}),
		ElectionsFinalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "election",
			Name:      "elections_finalized_total",
			Help:      "Count of finalized elections, by the compute kind of the winning solution.",
		}, []string{"compute"}),
		OffchainAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "election",
			Name:      "offchain_worker_accepted_total",
			Help:      "Count of off-chain worker runs that passed the fork/re-run guard.",
		}),
		OffchainRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "election",
			Name:      "offchain_worker_rejected_total",
			Help:      "Count of off-chain worker runs rejected by the fork/re-run guard, by reason.",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{
		e.PhaseTransitions, e.SignedQueueLen, e.SolutionsStored,
		e.ElectionsFinalized, e.OffchainAccepted, e.OffchainRejected,
	} {
		_ = reg.Register(c)
	}

	return e
}
