package scene

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	GLID   uint32
}

// NewTexture wraps raw pixel data with 1 to 4 channels, expanding it to RGBA8.
func NewTexture(name string, data []byte, width, height, channels int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture %q: invalid size %dx%d", name, width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("texture %q: unsupported channel count %d", name, channels)
	}
	if len(data) < width*height*channels {
		return nil, fmt.Errorf("texture %q: have %d bytes, need %d", name, len(data), width*height*channels)
	}

	n := width * height * 4
	var pixels []byte
	if channels == 4 {
		pixels = data[:n:n]
	} else {
		pixels = make([]byte, n)
		for i := 0; i < width*height; i++ {
			src := data[i*channels : i*channels+channels]
			dst := pixels[i*4 : i*4+4]
			switch channels {
			case 1:
				dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 255
			case 2:
				dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], src[1]
			case 3:
				dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
			}
		}
	}

	return &Texture{Name: name, Width: width, Height: height, Pixels: pixels}, nil
}

// NewTextureFromImage converts any decoded image to RGBA8.
func NewTextureFromImage(name string, img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}
}
