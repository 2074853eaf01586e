// Package storage archives rendered images with the metadata needed to
// reproduce them. Archived renders are outputs only; the viewer never
// restores state from them.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/fractview/internal/export"
	"github.com/san-kum/fractview/internal/viewport"
)

var ErrNotFound = errors.New("storage: render not found")

const (
	metadataFile = "metadata.json"
	imageFile    = "image.png"
	svgFile      = "image.svg"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID        string        `json:"id"`
	Fractal   string        `json:"fractal"`
	Preset    string        `json:"preset,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	View      viewport.View `json:"view"`
	Detail    string        `json:"detail,omitempty"`
	RenderMs  float64       `json:"render_ms"`
	HasSVG    bool          `json:"has_svg,omitempty"`
}

// Save writes img and meta into a new run directory and returns its id.
// meta.ID and meta.Timestamp are filled in. svg may be empty.
func (s *Store) Save(meta RenderMetadata, img image.Image, svg string) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	base := fmt.Sprintf("%s_%s", meta.Fractal, now.Format("20060102_150405.000000"))

	runID, runDir, err := s.reserve(base)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.HasSVG = svg != ""

	if err := export.WritePNG(filepath.Join(runDir, imageFile), img); err != nil {
		return "", err
	}
	if meta.HasSVG {
		if err := export.WriteSVG(filepath.Join(runDir, svgFile), svg); err != nil {
			return "", err
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return runID, nil
}

// reserve creates a fresh directory named base, adding a numeric suffix
// when concurrent saves collide.
func (s *Store) reserve(base string) (string, string, error) {
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

// List returns every archived render, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// ImagePath is where the PNG of runID lives.
func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.baseDir, runID, imageFile)
}

// Delete removes an archived render.
func (s *Store) Delete(runID string) error {
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return err
	}
	return os.RemoveAll(dir)
}
