// inspector.go - Page inspection over a page store with caching and
// parallel range decoding
package inspect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wilhasse/go-ibdparse/internal/logging"
	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/record"
	"github.com/wilhasse/go-ibdparse/schema"
)

// PageSource supplies decoded pages. *page.PageReader and *page.FileStore
// implement it.
type PageSource interface {
	ReadPage(pageNo uint32) (*page.InnerPage, error)
}

// Config configures an Inspector.
type Config struct {
	Options
	Workers   int   // parallel page decodes in Range, default 4
	CacheSize int64 // reports kept in the cache, 0 disables caching
}

// Inspector decodes pages from a source. Reports of pages read without an
// I/O error are cached by page number.
type Inspector struct {
	src     PageSource
	decoder *record.RowDecoder
	opts    Options
	workers int
	cache   *ristretto.Cache[uint32, *PageReport]
	log     *slog.Logger
}

// New creates an Inspector. s may be nil when records are not decoded.
func New(src PageSource, s *schema.RowSchema, cfg Config) (*Inspector, error) {
	in := &Inspector{
		src:     src,
		opts:    cfg.Options,
		workers: cfg.Workers,
		log:     logging.WithComponent("inspect"),
	}
	if in.workers <= 0 {
		in.workers = 4
	}
	if s != nil {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		in.decoder = record.NewRowDecoder(s)
		in.log = in.log.With("table", s.Name)
	}
	if cfg.CacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[uint32, *PageReport]{
			NumCounters:        cfg.CacheSize * 10,
			MaxCost:            cfg.CacheSize,
			BufferItems:        64,
			IgnoreInternalCost: true, // cost counts reports, not bytes
		})
		if err != nil {
			return nil, fmt.Errorf("report cache: %w", err)
		}
		in.cache = cache
	}
	return in, nil
}

// Close releases the cache.
func (in *Inspector) Close() {
	if in.cache != nil {
		in.cache.Close()
	}
}

// Page reads and analyzes one page. The error is the read error; decode
// problems are on the report.
func (in *Inspector) Page(ctx context.Context, pageNo uint32) (*PageReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.cache != nil {
		if rep, ok := in.cache.Get(pageNo); ok {
			return rep, nil
		}
	}
	ip, err := in.src.ReadPage(pageNo)
	if err != nil {
		logging.WithPage(pageNo).Error("page read failed", "error", err)
		return nil, err
	}
	rep := Analyze(ip, in.decoder, in.opts)
	in.logReport(rep)
	if in.cache != nil {
		in.cache.Set(pageNo, rep, 1)
	}
	return rep, nil
}

// Range analyzes pages from..to inclusive on up to Workers goroutines.
// Reports come back in page order. A page that cannot be read gets a
// report with Err set and does not stop the others; only cancellation of
// ctx fails the whole range.
func (in *Inspector) Range(ctx context.Context, from, to uint32) ([]*PageReport, error) {
	if to < from {
		return nil, fmt.Errorf("empty page range %d-%d", from, to)
	}
	reports := make([]*PageReport, int(to-from)+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)
	for i := range reports {
		i := i
		pageNo := from + uint32(i)
		g.Go(func() error {
			rep, err := in.Page(gctx, pageNo)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				rep = &PageReport{PageNo: pageNo, Err: err, Error: err.Error()}
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (in *Inspector) logReport(rep *PageReport) {
	log := in.log.With("page", rep.PageNo)
	for _, w := range rep.Warnings {
		log.Warn("page warning", "warning", w)
	}
	if rep.IndexError != "" {
		log.Warn("index page did not decode", "error", rep.IndexError)
	}
	if ir := rep.Index; ir != nil {
		if ir.ChainError != "" {
			log.Warn("record chain stopped", "error", ir.ChainError)
		}
		for i := range ir.Raw {
			if err := ir.Raw[i].Err; err != nil {
				log.Warn("record did not decode", "offset", ir.Raw[i].Offset, "error", err)
			}
		}
		log.Debug("page decoded", "type", rep.TypeName, "records", ir.RecordCount,
			"record_errors", ir.RecordErrors, "level", ir.Header.PageLevel)
		return
	}
	log.Debug("page decoded", "type", rep.TypeName)
}
