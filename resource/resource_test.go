package resource

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writeFile(t *testing.T, root, dir, name string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadText(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders", "a.glsl", []byte("line one\nline two\nline three"))

	txt, err := NewLoader(root).LoadText("a.glsl", "shaders")
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if txt.LineCount != 3 {
		t.Errorf("expected 3 lines, got %d", txt.LineCount)
	}

	txt.Release()
	if txt.Data != "" || txt.LineCount != 0 {
		t.Error("Release should clear the text")
	}
}

func TestLoadTextMissing(t *testing.T) {
	if _, err := NewLoader(t.TempDir()).LoadText("nope.txt", ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCountLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0}, {"a", 1}, {"a\n", 1}, {"a\nb\n", 2}, {"\n\n", 2},
	}
	for _, c := range cases {
		if got := countLines([]byte(c.in)); got != c.want {
			t.Errorf("countLines(%q): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestLoadImagePNG(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "textures"), 0o755)
	f, err := os.Create(filepath.Join(root, "textures", "t.png"))
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, testImage())
	f.Close()

	img, err := NewLoader(root).LoadImage("t.png", "textures")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width != 3 || img.Height != 2 || img.Channels != 4 {
		t.Errorf("unexpected dims %dx%dx%d", img.Width, img.Height, img.Channels)
	}
	if len(img.Data) != 3*2*4 {
		t.Fatalf("expected 24 bytes, got %d", len(img.Data))
	}
	if img.Data[0] != 255 || img.Data[3] != 255 {
		t.Errorf("expected opaque red first pixel, got %v", img.Data[:4])
	}
	last := img.Data[len(img.Data)-4:]
	if last[2] != 255 {
		t.Errorf("expected blue last pixel, got %v", last)
	}

	img.Release()
	if img.Data != nil {
		t.Error("Release should drop pixel data")
	}
}

func TestLoadImageBMP(t *testing.T) {
	root := t.TempDir()
	f, err := os.Create(filepath.Join(root, "t.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	bmp.Encode(f, testImage())
	f.Close()

	img, err := NewLoader(root).LoadImage("t.bmp", "")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Errorf("unexpected dims %dx%d", img.Width, img.Height)
	}
}

func TestLoadImageGarbage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "", "bad.png", []byte("not an image"))
	if _, err := NewLoader(root).LoadImage("bad.png", ""); err == nil {
		t.Error("expected decode error")
	}
}
