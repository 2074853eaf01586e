package main

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/export"
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/scheduler"
	"github.com/san-kum/fractview/internal/session"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

var errNoSVG = errors.New("svg export is only available for koch")

type renderJob struct {
	Fractal string
	Preset  string
	Width   int
	Height  int
	SVG     bool
}

type renderResult struct {
	Image   *image.RGBA
	SVG     string
	View    viewport.View
	Detail  string
	Elapsed time.Duration
}

// renderHeadless drives a session without a frontend: one resize, an
// optional preset, then a single synchronous render.
func renderHeadless(reg *fractal.Registry, job renderJob) (*renderResult, error) {
	f, err := reg.Lookup(job.Fractal)
	if err != nil {
		return nil, err
	}

	sess := session.New(reg, job.Fractal, scheduler.Options{})
	surf := surface.New(job.Width, job.Height)
	sess.ViewportResized(surf)

	if job.Preset != "" {
		p, ok := config.GetPreset(job.Fractal, job.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", job.Preset, config.ListPresets(job.Fractal))
		}
		sess.ApplyPreset(p.View(surf.Aspect()))
	}

	sess.Scheduler().PerformRender()

	res := &renderResult{
		Image:   surf.Image(),
		View:    sess.View(),
		Detail:  sess.Detail(),
		Elapsed: sess.Scheduler().Stats().Last,
	}
	if job.SVG {
		k, ok := f.(*fractal.Koch)
		if !ok {
			return nil, fmt.Errorf("%w, not %s", errNoSVG, job.Fractal)
		}
		res.SVG = export.KochSVG(k, res.View, surf.Width(), surf.Height())
	}
	return res, nil
}
