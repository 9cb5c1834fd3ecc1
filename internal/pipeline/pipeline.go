package pipeline

import (
	"fmt"

	"github.com/ppiankov/tgextract/internal/cache"
	"github.com/ppiankov/tgextract/internal/extract"
	"github.com/ppiankov/tgextract/internal/model"
	"github.com/ppiankov/tgextract/internal/project"
	"go.uber.org/zap"
)

// Pipeline runs load, filter, project and write for one export
type Pipeline struct {
	loader    *Loader
	matcher   *extract.Matcher
	projector *project.Projector
	writer    *Writer
	seen      cache.Set // nil unless dedupe is enabled
	logger    *zap.Logger
	config    *model.Config
}

// NewPipeline creates a pipeline for a validated configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	projector, err := project.NewProjector(cfg.FieldsToInclude, cfg.DateFormat)
	if err != nil {
		return nil, err
	}

	var seen cache.Set
	if cfg.Dedupe {
		seen = cache.NewMemorySet()
	}

	return &Pipeline{
		loader:    NewLoader(),
		matcher:   extract.NewMatcher(cfg.Keywords, cfg.CaseSensitive),
		projector: projector,
		writer:    NewWriter(cfg.OutputFormat),
		seen:      seen,
		logger:    logger,
		config:    cfg,
	}, nil
}

// Result summarizes a completed run
type Result struct {
	Path       string // File written
	Count      int    // Records written
	Total      int    // Messages in the export
	Duplicates int    // Matches skipped by dedupe
}

// Summary is the one-line report printed after a successful run
func (r *Result) Summary() string {
	return fmt.Sprintf("Processed and filtered %d messages and saved them to '%s'", r.Count, r.Path)
}

// Run executes the whole pipeline. Nothing is written unless loading,
// filtering and projection all succeed.
func (p *Pipeline) Run() (*Result, error) {
	// 1. Load
	doc, err := p.loader.Load(p.config.InputFile)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.logger.Debug("export loaded",
		zap.String("path", p.config.InputFile),
		zap.String("chat", doc.Name),
		zap.Int("messages", len(doc.Messages)))

	// 2-3. Filter and project
	records, duplicates, err := p.filter(doc)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	// 4. Write
	path := p.config.OutputPath()
	if err := p.writer.WriteFile(records, path); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	p.logger.Debug("output written",
		zap.String("path", path),
		zap.String("format", p.config.OutputFormat),
		zap.Int("records", len(records)))

	return &Result{
		Path:       path,
		Count:      len(records),
		Total:      len(doc.Messages),
		Duplicates: duplicates,
	}, nil
}

// Filter returns the records of every message whose text matches a keyword, in document order
func (p *Pipeline) Filter(doc *model.Document) ([]model.Record, error) {
	records, _, err := p.filter(doc)
	return records, err
}

func (p *Pipeline) filter(doc *model.Document) ([]model.Record, int, error) {
	records := make([]model.Record, 0)
	duplicates := 0
	if p.seen != nil {
		p.seen.Reset()
	}

	for i, msg := range doc.Messages {
		text := extract.Text(msg)
		if text == "" || !p.matcher.Match(text) {
			continue
		}

		if p.seen != nil {
			key := cache.Key(extract.Clean(text))
			if p.seen.Seen(key) {
				duplicates++
				p.logger.Debug("duplicate skipped", zap.Int("index", i), zap.Any("id", msg["id"]))
				continue
			}
			p.seen.Mark(key)
		}

		record, err := p.projector.Project(msg, text)
		if err != nil {
			return nil, duplicates, fmt.Errorf("message %d (id %v): %w", i, msg["id"], err)
		}
		records = append(records, record)
	}

	p.logger.Debug("messages filtered",
		zap.Strings("keywords", p.matcher.Keywords()),
		zap.Int("matched", len(records)),
		zap.Int("duplicates", duplicates))

	return records, duplicates, nil
}
