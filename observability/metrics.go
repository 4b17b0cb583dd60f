package observability

import (
	"fmt"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PathRewritesTotal counts rewritten path strings by construct kind and direction
	PathRewritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohintpath_path_rewrites_total",
			Help: "Total number of rewritten paths by construct kind and direction",
		},
		[]string{"kind", "direction"}, // kind: HintPath, Import, ...; direction: forward, backward
	)

	// PathSkipsTotal counts candidates that were left untouched because they could not be rewritten
	PathSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohintpath_path_skips_total",
			Help: "Total number of skipped path candidates by construct kind and reason",
		},
		[]string{"kind", "reason"},
	)

	// ProjectsProcessedTotal counts processed projects by outcome
	ProjectsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohintpath_projects_processed_total",
			Help: "Total number of processed projects by status",
		},
		[]string{"status"}, // changed, unchanged, failed
	)

	// PackagesExcludedTotal counts package records dropped for having no install path
	PackagesExcludedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gohintpath_packages_excluded_total",
			Help: "Total number of package records excluded because their install path is empty",
		},
	)
)

// WriteMetricsFile writes all registered metrics to path in the Prometheus text
// format, for pickup by a node_exporter textfile collector.
func WriteMetricsFile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// CounterTotals gathers the counter family with the given name and sums its samples
// by the value of one label.
func CounterTotals(name, label string) (map[string]float64, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	totals := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != name || family.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range family.GetMetric() {
			totals[labelValue(m, label)] += m.GetCounter().GetValue()
		}
	}
	return totals, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, pair := range m.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}
