package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "dustbound_http_requests_total"
	MetricNameHTTPRequestDuration = "dustbound_http_request_duration_seconds"

	MetricNameItemsAdded      = "dustbound_inventory_items_added_total"
	MetricNameItemsRemoved    = "dustbound_inventory_items_removed_total"
	MetricNameStacksDeleted   = "dustbound_inventory_stacks_deleted_total"
	MetricNameQuestsAccepted  = "dustbound_quests_accepted_total"
	MetricNameQuestsCompleted = "dustbound_quests_completed_total"
	MetricNameLevelUps        = "dustbound_character_level_ups_total"

	MetricNameTxRollbacks         = "dustbound_tx_rollbacks_total"
	MetricNameAuditEntries        = "dustbound_audit_entries_total"
	MetricNameAuditEntriesDropped = "dustbound_audit_entries_dropped_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests on the ops listener"
	HelpTextHTTPRequestDuration = "HTTP request latency on the ops listener"

	HelpTextItemsAdded      = "Total item quantity added to inventories"
	HelpTextItemsRemoved    = "Total item quantity removed from inventories"
	HelpTextStacksDeleted   = "Total inventory stacks deleted by depletion"
	HelpTextQuestsAccepted  = "Total quest attempts accepted"
	HelpTextQuestsCompleted = "Total quest attempts completed"
	HelpTextLevelUps        = "Total character level-ups resolved"

	HelpTextTxRollbacks         = "Total transactions rolled back by domain services"
	HelpTextAuditEntries        = "Total audit entries recorded"
	HelpTextAuditEntriesDropped = "Total audit entries dropped due to a full buffer"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
	LabelAction = "action"
	LabelReason = "reason"
)

// HTTPLatencyBuckets are the histogram buckets for ops request latency.
var HTTPLatencyBuckets = prometheus.DefBuckets
