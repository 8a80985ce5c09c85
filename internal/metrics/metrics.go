package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Business Metrics
var (
	ItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsAdded,
			Help: HelpTextItemsAdded,
		},
		[]string{LabelItem},
	)

	ItemsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRemoved,
			Help: HelpTextItemsRemoved,
		},
		[]string{LabelItem},
	)

	StacksDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStacksDeleted,
			Help: HelpTextStacksDeleted,
		},
		[]string{LabelItem},
	)

	QuestsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestsAccepted,
			Help: HelpTextQuestsAccepted,
		},
	)

	QuestsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)
)

// Reliability Metrics
var (
	TxRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTxRollbacks,
			Help: HelpTextTxRollbacks,
		},
		[]string{LabelReason},
	)

	AuditEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuditEntries,
			Help: HelpTextAuditEntries,
		},
		[]string{LabelAction},
	)

	AuditEntriesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuditEntriesDropped,
			Help: HelpTextAuditEntriesDropped,
		},
	)
)
