// Package pipeline collects vendor listings across categories.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/vendor-cli/internal/extract"
	"github.com/sells-group/vendor-cli/internal/model"
	"github.com/sells-group/vendor-cli/pkg/serpapi"
)

// Options configures a collection run.
type Options struct {
	PageSize int           // results per page offset
	MaxPages int           // pagination cap per category
	Delay    time.Duration // minimum gap between consecutive page requests
}

// Collector pulls paginated listings per category and extracts records.
type Collector struct {
	client    serpapi.Client
	extractor *extract.Extractor
	limiter   *rate.Limiter
	opts      Options
}

// NewCollector creates a Collector with the given dependencies.
func NewCollector(client serpapi.Client, extractor *extract.Extractor, opts Options) *Collector {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = 1500 * time.Millisecond
	}
	return &Collector{
		client:    client,
		extractor: extractor,
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
		opts:      opts,
	}
}

// Collect fetches every category in order and returns the combined batch.
// A failed or empty page stops pagination for that category only; other
// categories are unaffected.
func (c *Collector) Collect(ctx context.Context, categories []string) model.VendorBatch {
	var batch model.VendorBatch

	for _, category := range categories {
		log := zap.L().With(zap.String("category", category))
		log.Info("searching category")

		records := c.collectCategory(ctx, category)
		batch = append(batch, records...)

		log.Info("category complete", zap.Int("vendors", len(records)))

		if ctx.Err() != nil {
			break
		}
	}

	zap.L().Info("collection complete", zap.Int("total_vendors", len(batch)))
	return batch
}

// collectCategory pages through one category until an empty page, an error,
// or the page cap. Listings must be fetched oldest-page-first: a later page
// returning empty signals exhaustion.
func (c *Collector) collectCategory(ctx context.Context, category string) model.VendorBatch {
	var records model.VendorBatch

	for page := 0; page < c.opts.MaxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return records
		}

		start := page * c.opts.PageSize
		listings, err := c.client.Search(ctx, category, start)
		if err != nil {
			zap.L().Warn("page fetch failed, stopping category",
				zap.String("category", category),
				zap.Int("start", start),
				zap.Error(err),
			)
			return records
		}
		if len(listings) == 0 {
			zap.L().Debug("no more results",
				zap.String("category", category),
				zap.Int("start", start),
			)
			return records
		}

		for _, l := range listings {
			if rec, ok := c.extractor.Record(l, category); ok {
				records = append(records, rec)
			}
		}

		zap.L().Debug("page fetched",
			zap.String("category", category),
			zap.Int("start", start),
			zap.Int("results", len(listings)),
		)
	}

	return records
}
