package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricDefinitions(t *testing.T) {
	PathRewritesTotal.WithLabelValues("HintPath", "forward").Inc()
	PathSkipsTotal.WithLabelValues("Import", "invalid_characters").Inc()
	ProjectsProcessedTotal.WithLabelValues("changed").Inc()
	PackagesExcludedTotal.Inc()

	for _, name := range []string{
		"gohintpath_path_rewrites_total",
		"gohintpath_path_skips_total",
		"gohintpath_projects_processed_total",
		"gohintpath_packages_excluded_total",
	} {
		totals, err := CounterTotals(name, "")
		if err != nil {
			t.Fatalf("CounterTotals(%q) failed: %v", name, err)
		}
		if totals[""] < 1 {
			t.Errorf("%s total = %v, want at least 1", name, totals[""])
		}
	}
}

func TestCounterTotals_ByLabel(t *testing.T) {
	before := testutil.ToFloat64(PathRewritesTotal.WithLabelValues("Error", "backward"))
	beforeTotals, err := CounterTotals("gohintpath_path_rewrites_total", "direction")
	if err != nil {
		t.Fatalf("CounterTotals() failed: %v", err)
	}

	PathRewritesTotal.WithLabelValues("Error", "backward").Add(2)

	if got := testutil.ToFloat64(PathRewritesTotal.WithLabelValues("Error", "backward")); got != before+2 {
		t.Errorf("counter = %v, want %v", got, before+2)
	}

	totals, err := CounterTotals("gohintpath_path_rewrites_total", "direction")
	if err != nil {
		t.Fatalf("CounterTotals() failed: %v", err)
	}
	if got := totals["backward"] - beforeTotals["backward"]; got != 2 {
		t.Errorf("backward delta = %v, want 2", got)
	}

	unknown, err := CounterTotals("gohintpath_no_such_metric", "kind")
	if err != nil {
		t.Fatalf("CounterTotals() failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown metric totals = %v, want empty", unknown)
	}
}

func TestWriteMetricsFile(t *testing.T) {
	ProjectsProcessedTotal.WithLabelValues("unchanged").Inc()
	path := filepath.Join(t.TempDir(), "gohintpath.prom")

	if err := WriteMetricsFile(path); err != nil {
		t.Fatalf("WriteMetricsFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file failed: %v", err)
	}
	if !strings.Contains(string(data), `gohintpath_projects_processed_total{status="unchanged"}`) {
		t.Errorf("metrics file missing projects counter:\n%s", data)
	}
}

func TestWriteMetricsFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "gohintpath.prom")
	if err := WriteMetricsFile(path); err == nil {
		t.Error("WriteMetricsFile() should fail for a missing directory")
	}
}
