package iconiq

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProcessDescriptor(t *testing.T) {
	e := NewEngine(NewRasterHost())

	descriptor := strings.NewReader(`
kind: dynamic_circle
size:
  width: 16
  height: 16
color: "#1e90ff"
`)

	var buf bytes.Buffer
	if err := e.processDescriptor(descriptor, &buf, "pin.svg", "-"); err != nil {
		t.Fatalf("could not process the descriptor: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") {
		t.Errorf("expected svg markup, got: %.40q", buf.String())
	}
}

func TestProcessDescriptor_PipeOutput(t *testing.T) {
	e := NewEngine(NewRasterHost())

	descriptor := strings.NewReader(`
kind: canvas_path
size:
  width: 12
  height: 12
points:
  - {x: 0, y: 0}
  - {x: 12, y: 0}
  - {x: 6, y: 12}
`)

	// The pipe output carries the raw icon string, not an encoded image.
	var buf bytes.Buffer
	if err := e.processDescriptor(descriptor, &buf, "-", "-"); err != nil {
		t.Fatalf("could not process the descriptor: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "data:image/png;base64,") {
		t.Errorf("expected a data URI on the pipe, got: %.40q", buf.String())
	}
}

func TestProcessDescriptor_RasterOutput(t *testing.T) {
	e := NewEngine(NewRasterHost())

	descriptor := strings.NewReader(`
kind: canvas_path
size:
  width: 12
  height: 12
points:
  - {x: 0, y: 0}
  - {x: 12, y: 0}
  - {x: 6, y: 12}
`)

	var buf bytes.Buffer
	if err := e.processDescriptor(descriptor, &buf, "pin.png", "-"); err != nil {
		t.Fatalf("could not process the descriptor: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid png: %v", err)
	}
	if img.Bounds().Dx() != 12 {
		t.Errorf("wrong output width: %d", img.Bounds().Dx())
	}
}

func TestProcessDescriptor_Errors(t *testing.T) {
	e := NewEngine(NewRasterHost())
	var buf bytes.Buffer

	if err := e.processDescriptor(strings.NewReader("color: '#fff'"), &buf, "-", "-"); err == nil {
		t.Error("expected an error for a descriptor without a shape kind")
	}
	if err := e.processDescriptor(strings.NewReader("kind: [broken"), &buf, "-", "-"); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestWalkDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yml", "b.yaml", "sub/c.yml", "skip.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("kind: none"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, dir, descriptorExts)

	var found []string
	for p := range paths {
		found = append(found, filepath.Base(p))
	}
	if err := <-errc; err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(found) != 3 {
		t.Errorf("wrong descriptor count: got %v", found)
	}
	for _, name := range found {
		if name == "skip.txt" {
			t.Error("non descriptor file not filtered out")
		}
	}
}
