// Package resource loads text and image assets from an asset root.
package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"juliette/log"
)

var logger = log.New("resource")

// Loader resolves asset names against Root/dir/name.
type Loader struct {
	Root string
}

func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Text is a loaded text asset. Call Release when done with it.
type Text struct {
	Name      string
	Data      string
	LineCount int
}

// Image is a decoded image converted to RGBA8, row-major top to bottom.
// Call Release when done with it.
type Image struct {
	Name     string
	Data     []byte
	Width    int
	Height   int
	Channels int
	// Source keeps the decoded image for consumers like the window icon.
	Source image.Image
}

func (l *Loader) path(name, dir string) string {
	return filepath.Join(l.Root, dir, name)
}

// LoadText reads a whole text file.
func (l *Loader) LoadText(name, dir string) (*Text, error) {
	p := l.path(name, dir)
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("load text %q: %w", p, err)
	}

	logger.Debugf("loaded text %s (%d bytes)", p, len(raw))
	return &Text{
		Name:      name,
		Data:      string(raw),
		LineCount: countLines(raw),
	}, nil
}

// countLines counts a trailing unterminated line as a line.
func countLines(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	n := bytes.Count(raw, []byte{'\n'})
	if raw[len(raw)-1] != '\n' {
		n++
	}
	return n
}

func (t *Text) Release() {
	t.Data = ""
	t.LineCount = 0
}

// LoadImage decodes a PNG, JPEG, BMP or TIFF file into RGBA8.
func (l *Loader) LoadImage(name, dir string) (*Image, error) {
	p := l.path(name, dir)
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", p, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", p, err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	logger.Debugf("loaded %s image %s (%dx%d)", format, p, bounds.Dx(), bounds.Dy())
	return &Image{
		Name:     name,
		Data:     rgba.Pix,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
		Source:   rgba,
	}, nil
}

func (i *Image) Release() {
	i.Data = nil
	i.Source = nil
	i.Width, i.Height, i.Channels = 0, 0, 0
}
