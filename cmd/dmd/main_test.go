package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxelstore/internal/gamedata"
)

func TestDownloadRequiresArguments(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	tests := []struct{ platform, ver, out string }{
		{"pc", "1.8", ""},
		{"", "1.8", "blocks.json"},
		{"pc", "", "blocks.json"},
	}
	for _, tt := range tests {
		if err := download("https://example.invalid/repo.git", tt.platform, tt.ver, tt.out, log); err == nil {
			t.Errorf("download(%q, %q, %q) succeeded, want error", tt.platform, tt.ver, tt.out)
		}
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	data := `[{"id": 1, "name": "stone", "displayName": "Stone", "boundingBox": "block"}]`
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "nested", "blocks.json")
	if err := copyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	reg, err := gamedata.LoadBlocksFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}
