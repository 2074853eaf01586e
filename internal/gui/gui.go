// Package gui runs fractview in a desktop window. Two backends share the
// same controller: raylib, the default, and ebiten.
package gui

import (
	"errors"
	"fmt"

	"github.com/san-kum/fractview/internal/control"
)

const (
	BackendRaylib = "raylib"
	BackendEbiten = "ebiten"
)

var ErrUnknownBackend = errors.New("gui: unknown backend")

type Options struct {
	Width  int
	Height int
	Title  string
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, Title: "fractview"}
}

func Backends() []string {
	return []string{BackendRaylib, BackendEbiten}
}

// Run opens a window on the named backend and blocks until it closes.
func Run(backend string, ctrl *control.Controller, opts Options) error {
	if opts.Width < 1 || opts.Height < 1 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	switch backend {
	case BackendRaylib, "":
		RunRaylib(ctrl, opts)
		return nil
	case BackendEbiten:
		return RunEbiten(ctrl, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
