package app

import (
	"fmt"

	"juliette/config"
	"juliette/core"
	"juliette/debugdraw"
	"juliette/input"
	"juliette/renderer"
	"juliette/resource"
)

// OpenPlatform opens the glfw window, its input manager and the OpenGL
// renderer. It must run on the main thread.
func OpenPlatform(cfg config.Config, loader *resource.Loader) (*Platform, error) {
	wc := core.DefaultWindowConfig()
	wc.Title = cfg.Title
	wc.Width = cfg.Width
	wc.Height = cfg.Height
	wc.VSync = cfg.VSync
	wc.Fullscreen = cfg.StartFullscreen
	icon := loadIcon(cfg, loader)
	if icon != nil {
		wc.Icon = icon.Source
	}

	window, err := core.NewWindow(wc)
	if icon != nil {
		icon.Release()
	}
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}

	r, err := renderer.New(window, maxBatchesFor(cfg))
	if err != nil {
		window.Terminate()
		return nil, err
	}

	return &Platform{
		Window:   window,
		Input:    input.NewManager(window),
		Renderer: r,
		NewDebugDrawer: func(vs, fs string, maxVertices int) (DebugDrawer, error) {
			d, err := debugdraw.New(vs, fs, maxVertices)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}, nil
}

// loadIcon returns nil when no icon is configured or it cannot be read; a
// missing icon is not fatal. The caller releases the image once the window
// has copied it.
func loadIcon(cfg config.Config, loader *resource.Loader) *resource.Image {
	if cfg.IconPath == "" {
		return nil
	}
	img, err := loader.LoadImage(cfg.IconPath, textureDir)
	if err != nil {
		logger.Warningf("window icon: %v", err)
		return nil
	}
	return img
}

func maxBatchesFor(cfg config.Config) int {
	if walled(cfg.Variant) {
		return 2
	}
	return 1
}
