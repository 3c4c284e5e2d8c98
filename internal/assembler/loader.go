package assembler

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/ingest"
	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// LoadResult counts the files seen by LoadDir.
type LoadResult struct {
	Files    int `json:"files"`
	Ingested int `json:"ingested"`
	Ignored  int `json:"ignored"`
	Failed   int `json:"failed"`
}

// LoadDir walks dir recursively in lexical order and ingests every XML file.
// A file that cannot be read, parsed or ingested is logged and skipped unless
// Options.Strict is set; unknown document kinds, cardinality violations and
// phase-order violations always abort.
func (a *Assembler) LoadDir(ctx context.Context, dir string) (LoadResult, error) {
	var res LoadResult
	if err := a.expect(PhaseIngesting, "load dir"); err != nil {
		return res, err
	}
	a.logger.Debug("processing dir", "dir", dir)

	err := afero.Walk(a.opts.Fs, dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if info.IsDir() {
			return nil
		}

		res.Files++
		if !strings.HasSuffix(strings.ToLower(path), ".xml") {
			a.logger.Warn("skipping file", "file", path)
			res.Ignored++
			return nil
		}

		if err := a.LoadFile(path); err != nil {
			if a.opts.Strict || apperrors.IsFatalForBatch(err) {
				return err
			}
			a.logger.Error("could not process", "file", path, "error", err)
			metrics.Inc(metrics.DocumentsSkipped)
			res.Failed++
			return nil
		}
		res.Ingested++
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("loading %s: %w", dir, err)
	}

	a.logger.Info("loaded ontology directory", "dir", dir,
		"files", res.Files, "ingested", res.Ingested, "ignored", res.Ignored, "failed", res.Failed)
	return res, nil
}

// LoadFile decodes and ingests a single file.
func (a *Assembler) LoadFile(path string) error {
	f, err := a.opts.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := ingest.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Info("processing xml", "kind", doc.Kind(), "file", path)

	if err := a.Ingest(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// extractResource writes the decoded contents of an embedded resource below OutputDir.
func (a *Assembler) extractResource(doc models.OntologyResourceConfig) error {
	rel := strings.TrimPrefix(strings.TrimSpace(doc.Path), "/")
	if rel == "" {
		return fmt.Errorf("ontology resource: empty path")
	}
	if clean := filepath.Clean(filepath.FromSlash(rel)); clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("ontology resource %s: path escapes output directory", rel)
	}
	if a.opts.OutputDir == "" {
		a.logger.Warn("no output directory configured; resource not extracted", "path", rel)
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(doc.Contents), ""))
	if err != nil {
		return fmt.Errorf("ontology resource %s: decoding contents: %w", rel, err)
	}

	target := filepath.Join(a.opts.OutputDir, filepath.FromSlash(rel))
	if err := a.opts.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("ontology resource %s: %w", rel, err)
	}
	if err := afero.WriteFile(a.opts.Fs, target, data, 0o644); err != nil {
		return fmt.Errorf("ontology resource %s: %w", rel, err)
	}
	a.logger.Debug("extracted ontology resource", "path", target, "bytes", len(data))
	return nil
}
