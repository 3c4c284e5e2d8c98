package resolve

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/registry"
)

// IconResult counts what an icon pass did.
type IconResult struct {
	Backfilled int
	Unclaimed  int
}

// IconResolver appends icon file paths to classes waiting for them.
type IconResolver struct {
	reg    *registry.Registry
	fs     afero.Fs
	root   string
	logger *slog.Logger
}

// NewIconResolver creates an IconResolver. Image paths are checked for
// existence relative to root on fs.
func NewIconResolver(reg *registry.Registry, fs afero.Fs, root string, logger *slog.Logger) *IconResolver {
	return &IconResolver{reg: reg, fs: fs, root: root, logger: logger}
}

// Resolve processes every image record. A record whose file is missing aborts
// the pass; an icon no class is waiting for is logged and skipped.
func (r *IconResolver) Resolve(images []models.ImageInfo) (IconResult, error) {
	var res IconResult
	for _, img := range images {
		img.URI = strings.TrimSpace(img.URI)
		relPath := strings.TrimPrefix(strings.TrimSpace(img.Path), "/")

		expected := filepath.Join(r.root, relPath)
		exists, err := afero.Exists(r.fs, expected)
		if err != nil {
			return res, fmt.Errorf("checking resource %s: %w", expected, err)
		}
		if !exists {
			return res, fmt.Errorf("%w: could not find file for uri %s with path %s",
				apperrors.ErrMissingResource, img.URI, expected)
		}

		classes := r.reg.PendingIcons(img.URI)
		if len(classes) == 0 {
			r.logger.Warn("could not find classes for icon mapping", "uri", img.URI)
			res.Unclaimed++
			continue
		}

		for _, c := range classes {
			c.GlyphIconFileNames = append(c.GlyphIconFileNames, relPath)
			res.Backfilled++
			metrics.Inc(metrics.IconsBackfilled)
		}
		r.reg.ConsumeIcon(img.URI)
	}
	return res, nil
}
