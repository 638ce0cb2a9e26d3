package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		stats   layoutStats
		want    []string
		notWant []string
	}{
		{
			name:    "fresh",
			stats:   layoutStats{placed: 40, total: 200, materialized: 12},
			want:    []string{"40/200 placed", "12 live", iconFresh},
			notWant: []string{"failed", iconCached},
		},
		{
			name:  "cached with failures",
			stats: layoutStats{placed: 5, total: 5, failed: 2, cached: true},
			want:  []string{"5/5 placed", "2 failed", iconCached},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("statsLine() = %q, missing %q", line, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(line, w) {
					t.Errorf("statsLine() = %q, unexpected %q", line, w)
				}
			}
		})
	}
}
