// Package metrics defines and registers all custom Prometheus metrics for
// the monitoring-system account API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monitoring"

// AccountOpsTotal counts account-management operations by outcome.
// Labels:
//   - op: "create", "get", "list", "update", "delete", "change_role"
//   - result: "success" or "error"
var AccountOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_ops_total",
		Help:      "Total number of account-management operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ChannelSessions tracks the number of open event-channel sessions.
var ChannelSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "channel_sessions",
		Help:      "Current number of open event-channel sessions.",
	},
)

// ChannelCommandsTotal counts event-channel commands by action and outcome.
// Labels:
//   - action: the command name (e.g. "createUser")
//   - result: "ok" or "error"
var ChannelCommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "channel_commands_total",
		Help:      "Total number of event-channel commands, by action and result.",
	},
	[]string{"action", "result"},
)
