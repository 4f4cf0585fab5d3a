// Package engine runs the outline pipeline over a batch of PDFs
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/pdfoutline/internal/config"
	"github.com/ivlev/pdfoutline/internal/logging"
	"github.com/ivlev/pdfoutline/internal/outline"
	"github.com/ivlev/pdfoutline/internal/source"
	"github.com/ivlev/pdfoutline/internal/store"
	"github.com/ivlev/pdfoutline/internal/system"
	"github.com/ivlev/pdfoutline/internal/writer"
)

// Opener opens a document with the named parser backend
type Opener func(backend, path string) (source.Source, error)

// Cache is the outline cache the project consults before parsing
type Cache interface {
	Get(ctx context.Context, contentHash, fingerprint string) (store.Entry, error)
	Put(ctx context.Context, e store.Entry) error
}

type OutlineProject struct {
	Config      *config.Config
	Detector    *outline.Detector
	Cache       Cache
	Fingerprint string
	Open        Opener

	now   func() time.Time
	ready atomic.Int64
}

// Report is the outcome of one batch
type Report struct {
	Processed int
	Cached    int
	Skipped   int
	Failed    int
	Rows      []writer.WorkbookRow
	Elapsed   time.Duration
}

// Total is the number of documents the batch looked at
func (r Report) Total() int {
	return r.Processed + r.Cached + r.Skipped + r.Failed
}

// NewOutlineProject creates a project. cache may be nil.
func NewOutlineProject(cfg *config.Config, det *outline.Detector, cache Cache, fingerprint string) *OutlineProject {
	return &OutlineProject{
		Config:      cfg,
		Detector:    det,
		Cache:       cache,
		Fingerprint: fingerprint,
		Open:        source.Open,
		now:         time.Now,
	}
}

// Run processes every PDF under Config.InputPath. A document that fails
// is counted and logged without stopping the batch; Run itself fails only
// when the batch cannot start, the workbook cannot be written or ctx is
// cancelled.
func (p *OutlineProject) Run(ctx context.Context) (Report, error) {
	startTime := time.Now()

	inputs, err := system.FindPDFs(p.Config.InputPath, p.Config.Recursive)
	if err != nil {
		return Report{}, err
	}
	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return Report{}, fmt.Errorf("не удалось создать папку %s: %w", p.Config.OutputDir, err)
	}

	jobs := make([]config.DocumentJob, len(inputs))
	for i, in := range inputs {
		jobs[i] = config.DocumentJob{
			Index:      i,
			InputPath:  in,
			OutputPath: writer.OutputPath(p.Config.OutputDir, in, p.Config.Format),
		}
	}

	workers := p.Config.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	fmt.Println("--- [PROJECT: OUTLINE ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Документов: %d\n", p.Config.InputPath, len(jobs))
	fmt.Printf("[*] Парсер: %s | Формат: %s | Потоков: %d\n", backendName(p.Config.Backend), p.Config.Format, workers)
	fmt.Println("-----------------------------")

	manifest, err := writer.ReadManifest(p.Config.OutputDir)
	if err != nil {
		logging.Logger().Warn("manifest unreadable, outputs will be rebuilt", slog.Any("error", err))
		manifest = writer.Manifest{}
	}

	rows := make([]writer.WorkbookRow, len(jobs))
	p.ready.Store(0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[job.Index] = p.processDocument(gctx, job, manifest)
			fmt.Printf("[>] Ready: %d/%d\n", p.ready.Add(1), len(jobs))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	for i, r := range rows {
		if r.Status == writer.StatusProcessed || r.Status == writer.StatusCached {
			manifest.Record(jobs[i].OutputPath, p.Fingerprint)
		}
	}
	if err := writer.WriteManifest(p.Config.OutputDir, manifest); err != nil {
		logging.Logger().Warn("manifest not saved", slog.Any("error", err))
	}

	report := Report{Rows: rows, Elapsed: time.Since(startTime)}
	for _, r := range rows {
		switch r.Status {
		case writer.StatusProcessed:
			report.Processed++
		case writer.StatusCached:
			report.Cached++
		case writer.StatusSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	if p.Config.Workbook != "" {
		if err := writer.WriteWorkbook(p.Config.Workbook, rows); err != nil {
			return report, fmt.Errorf("ошибка записи сводной таблицы: %w", err)
		}
		fmt.Printf("[*] Сводная таблица: %s\n", p.Config.Workbook)
	}

	fmt.Printf("[+++] Готово! Обработано: %d | Из кэша: %d | Пропущено: %d | Ошибок: %d\n",
		report.Processed, report.Cached, report.Skipped, report.Failed)

	if p.Config.ShowStats {
		p.printStats(report)
	}

	return report, nil
}

// processDocument runs one document end to end and never returns an
// error: the outcome is recorded in the row. An existing output is reused
// only when it is newer than the input and the manifest says it was written
// with the current fingerprint.
func (p *OutlineProject) processDocument(ctx context.Context, job config.DocumentJob, manifest writer.Manifest) writer.WorkbookRow {
	start := time.Now()
	row := writer.WorkbookRow{Path: job.InputPath}
	log := logging.Logger().With(slog.String("path", job.InputPath))

	fail := func(err error) writer.WorkbookRow {
		log.Warn("document failed", slog.Any("error", err))
		fmt.Printf("[!] %s: %v\n", filepath.Base(job.InputPath), err)
		row.Status = writer.StatusFailed
		row.Error = err.Error()
		row.Seconds = time.Since(start).Seconds()
		return row
	}
	done := func(status string, r outline.Result) writer.WorkbookRow {
		row.Status = status
		row.Result = r
		row.Seconds = time.Since(start).Seconds()
		return row
	}

	if !p.Config.Force && manifest.Matches(job.OutputPath, p.Fingerprint) && writer.IsUpToDate(job.InputPath, job.OutputPath) {
		if env, err := writer.ReadOutline(job.OutputPath); err == nil {
			log.Debug("output up to date", slog.String("output", job.OutputPath))
			return done(writer.StatusCached, env.Result())
		}
	}

	var hash string
	if p.Cache != nil {
		h, err := store.HashFile(job.InputPath)
		if err != nil {
			return fail(fmt.Errorf("%w: %v", source.ErrDocumentUnreadable, err))
		}
		hash = h

		if !p.Config.Force {
			entry, err := p.Cache.Get(ctx, hash, p.Fingerprint)
			switch {
			case err == nil:
				row.Pages = entry.Pages
				row.MetaTitle = entry.MetaTitle
				if err := p.write(job.OutputPath, entry.Result); err != nil {
					return fail(err)
				}
				log.Debug("outline served from cache")
				return done(writer.StatusCached, entry.Result)
			case !errors.Is(err, store.ErrNotFound):
				log.Warn("cache lookup failed", slog.Any("error", err))
			}
		}
	}

	src, err := p.Open(p.Config.Backend, job.InputPath)
	if err != nil {
		return fail(err)
	}
	defer src.Close()

	doc, err := source.Load(ctx, src, job.InputPath)
	if err != nil {
		return fail(err)
	}
	row.Pages = len(doc.Pages)
	row.MetaTitle = strings.TrimSpace(doc.Metadata["title"])

	if len(doc.Pages) == 0 {
		log.Info("document has no pages")
		row.Error = "документ не содержит страниц"
		return done(writer.StatusSkipped, outline.Result{Outline: []outline.Heading{}})
	}

	result := p.Detector.Detect(doc.Pages)
	if err := p.write(job.OutputPath, result); err != nil {
		return fail(err)
	}
	log.Debug("outline detected",
		slog.Int("pages", len(doc.Pages)),
		slog.Int("headings", len(result.Outline)),
		slog.String("title", result.Title))

	if p.Cache != nil {
		err := p.Cache.Put(ctx, store.Entry{
			ContentHash: hash,
			Fingerprint: p.Fingerprint,
			Path:        job.InputPath,
			MetaTitle:   row.MetaTitle,
			Pages:       len(doc.Pages),
			Result:      result,
		})
		if err != nil {
			log.Warn("cache store failed", slog.Any("error", err))
		}
	}

	return done(writer.StatusProcessed, result)
}

func (p *OutlineProject) write(path string, r outline.Result) error {
	var stamp time.Time
	if p.Config.Stamp {
		stamp = p.now()
	}
	return writer.WriteOutline(path, p.Config.Format, writer.NewEnvelope(r, stamp))
}

func (p *OutlineProject) printStats(r Report) {
	snap := system.TakeSnapshot()
	docsPerSec := 0.0
	if r.Elapsed > 0 {
		docsPerSec = float64(r.Total()) / r.Elapsed.Seconds()
	}
	pages := 0
	for _, row := range r.Rows {
		pages += row.Pages
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Documents: %d | Pages: %d\n"+
			"Documents/sec: %.2f\n"+
			"Process RSS: %s\n"+
			"Host Memory: %s (%.1f%% used) | CPUs: %d\n"+
			"----------------------------\n",
		p.Config.BuildVersion, r.Elapsed.Seconds(), r.Total(), pages, docsPerSec,
		system.FormatBytes(snap.ProcessRSS), system.FormatBytes(snap.TotalMemory), snap.UsedPercent, snap.LogicalCPUs,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Docs: %d | Pages: %d | Total: %.2fs | Docs/s: %.2f | RSS: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		r.Total(),
		pages,
		r.Elapsed.Seconds(),
		docsPerSec,
		system.FormatBytes(snap.ProcessRSS),
	)

	f, err := os.OpenFile(filepath.Join(p.Config.OutputDir, "benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

func backendName(b string) string {
	if b == "" {
		return "fitz"
	}
	return b
}
