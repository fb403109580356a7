package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	c := New(nil)

	c.File("ok", 2*time.Millisecond)
	c.File("ok", 3*time.Millisecond)
	c.File("fatal", time.Millisecond)
	c.File("cached", 0)
	c.Problem("no-var", "error")
	c.Problem("no-var", "error")
	c.Problem("", "error")
	c.Fix("no-var")
	c.CacheLookup(true)
	c.CacheLookup(false)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ok files", testutil.ToFloat64(c.files.WithLabelValues("ok")), 2},
		{"fatal files", testutil.ToFloat64(c.files.WithLabelValues("fatal")), 1},
		{"cached files", testutil.ToFloat64(c.files.WithLabelValues("cached")), 1},
		{"no-var problems", testutil.ToFloat64(c.problems.WithLabelValues("no-var", "error")), 2},
		{"fatal problems", testutil.ToFloat64(c.problems.WithLabelValues("fatal", "error")), 1},
		{"fixes", testutil.ToFloat64(c.fixes.WithLabelValues("no-var")), 1},
		{"cache hits", testutil.ToFloat64(c.cache.WithLabelValues("hit")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(c.fileDuration); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.File("ok", time.Second)
	c.Problem("x", "warning")
	c.Fix("x")
	c.CacheLookup(true)
	c.Run(time.Second)
	if err := c.WriteFile(filepath.Join(t.TempDir(), "m.prom")); err != nil {
		t.Fatalf("nil collector write: %v", err)
	}
	if c.Registry() != nil {
		t.Errorf("nil collector has a registry")
	}
}

func TestWriteFile(t *testing.T) {
	c := New(nil)
	c.Problem("eqeqeq", "warning")
	c.Run(1500 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "lint.prom")
	if err := c.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`typedlint_problems_total{rule="eqeqeq",severity="warning"} 1`,
		"typedlint_run_duration_seconds 1.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
