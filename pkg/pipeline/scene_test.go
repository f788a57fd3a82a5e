package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/scene"
)

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ok.yaml")
	if err := os.WriteFile(good, []byte("name: page\nwidth: 100\nheight: 50\nelements:\n  - {id: a, x: 0, y: 0, width: 10, height: 10}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := LoadScene(good)
	if err != nil {
		t.Fatal(err)
	}
	if root.Count() != 1 {
		t.Errorf("Count = %d, want 1", root.Count())
	}

	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"missing", "absent.json", "", errors.ErrCodeNotFound},
		{"extension", "scene.txt", "x", errors.ErrCodeInvalidFormat},
		{"broken", "broken.json", "{", errors.ErrCodeInvalidScene},
		{"markup id", "markup.json", `{"name":"s","elements":[{"id":"<a>"}]}`, errors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			_, err := LoadScene(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadScene(t *testing.T) {
	root, err := ReadScene(strings.NewReader(`{"name":"s","width":10,"height":10,"elements":[{"id":"a","width":5,"height":5}]}`), scene.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "s" {
		t.Errorf("Name = %q", root.Name)
	}
}

func TestGridScene(t *testing.T) {
	root, err := GridScene("3x2")
	if err != nil {
		t.Fatal(err)
	}
	if root.Count() != 6 {
		t.Errorf("Count = %d, want 6", root.Count())
	}
	if _, err := GridScene("3by2"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v", err)
	}
}
