package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cascade/pkg/config"
)

func TestScheduleSummary(t *testing.T) {
	c := New(os.Stderr, log.WarnLevel)
	cfg := config.Default()
	c.cfg = &cfg

	var out bytes.Buffer
	cmd := c.scheduleCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--grid", "3x1", "--sort", "linear", "--direction", "right-to-left", "--delay", "0", "--summary", "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("summary has %d lines, want 3:\n%s", len(lines), out.String())
	}
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) != 2 || fields[0] != "0s" {
			t.Errorf("line %q, want a zero offset and an id", line)
		}
	}
	if !strings.HasSuffix(lines[0], "r0c2") {
		t.Errorf("first line %q, want the rightmost cell", lines[0])
	}
}

func TestScheduleJSONAndSummaryExclusive(t *testing.T) {
	c := New(os.Stderr, log.WarnLevel)
	cfg := config.Default()
	c.cfg = &cfg

	cmd := c.scheduleCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--grid", "2x1", "--json", "--summary", "--no-cache"})
	if err := cmd.Execute(); err == nil {
		t.Error("--json with --summary should fail")
	}
}
