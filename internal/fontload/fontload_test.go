package fontload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func TestCheckFileType(t *testing.T) {
	for _, path := range []string{"a.ttf", "dir/b.TTF", "c.tTf"} {
		if err := CheckFileType(path); err != nil {
			t.Errorf("expected %q to be accepted, have %v", path, err)
		}
	}
	for _, path := range []string{"a.otf", "a.ttc", "a.woff", "ttf", "a.ttf.bak"} {
		if err := CheckFileType(path); !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("expected %q to be rejected, have %v", path, err)
		}
	}
}

func TestLoadTrueTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.fontload")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadTrueTypeFont(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Fontname != "Go Regular" {
		t.Errorf("expected font name 'Go Regular', have %q", f.Fontname)
	}
	if f.Filepath != path || f.SFNT == nil {
		t.Errorf("font not set up correctly: %+v", f)
	}
	if _, err := LoadTrueTypeFont(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
