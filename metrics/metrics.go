package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TagCategoryMutationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tagcat_tag_category_mutations_total",
	Help: "The total number of tag category creates, updates and deletes",
}, []string{"operation"})

var ValidationFailureCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tagcat_validation_failures_total",
	Help: "The total number of rejected tag category payloads",
}, []string{"operation"})

var SchemaIssueCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tagcat_schema_issues_total",
	Help: "The total number of schema diagnostics reported on write",
}, []string{"code"})

var ChangeEventCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tagcat_change_events_total",
	Help: "The total number of change events by publish outcome",
}, []string{"outcome"})
