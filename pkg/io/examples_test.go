package io

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/flowdraw/pkg/core/flow/transform"
)

func TestImportShippedExamples(t *testing.T) {
	tests := []struct {
		file       string
		tasks      int
		links      int
		cyclic     bool
		firstLayer []string
	}{
		{"etl_retry.json", 7, 7, true, []string{"extract", "reference", "repair"}},
		{"diamond.toml", 4, 4, false, []string{"fetch"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			g, err := ImportFile(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("ImportFile() error: %v", err)
			}
			if g.TaskCount() != tt.tasks || g.LinkCount() != tt.links {
				t.Errorf("counts = %d tasks, %d links, want %d, %d", g.TaskCount(), g.LinkCount(), tt.tasks, tt.links)
			}

			links := transform.BreakCycles(g)
			if got := transform.CutCount(links) > 0; got != tt.cyclic {
				t.Errorf("has cuts = %v, want %v", got, tt.cyclic)
			}

			layers := transform.AssignLayers(g, links)
			if len(layers) == 0 {
				t.Fatal("AssignLayers() returned no layers")
			}
			if got := layers[0]; !equalStrings(got, tt.firstLayer) {
				t.Errorf("layers[0] = %v, want %v", got, tt.firstLayer)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
