// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuardDenials counts failed permission checks by required permission.
	GuardDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_guard_denials_total",
		Help: "Number of denied permission checks.",
	}, []string{"permission"})

	// AgentSteps counts persisted agent steps by kind
	// (narration, tool_call, final).
	AgentSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_agent_steps_total",
		Help: "Number of agent steps persisted to the message stream.",
	}, []string{"kind"})

	// AgentToolCalls counts tool invocations by tool name and outcome.
	AgentToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_agent_tool_calls_total",
		Help: "Number of agent tool invocations.",
	}, []string{"tool", "outcome"})

	// AgentRunDuration tracks wall-clock duration of complete agent runs.
	AgentRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "helpdesk_agent_run_duration_seconds",
		Help:    "Duration of agent loop runs.",
		Buckets: prometheus.DefBuckets,
	})
)
