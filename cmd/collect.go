package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-cli/internal/dedupe"
	"github.com/sells-group/vendor-cli/internal/extract"
	"github.com/sells-group/vendor-cli/internal/model"
	"github.com/sells-group/vendor-cli/internal/phone"
	"github.com/sells-group/vendor-cli/internal/pipeline"
	"github.com/sells-group/vendor-cli/internal/report"
	"github.com/sells-group/vendor-cli/pkg/serpapi"
)

// runDateFormat matches the dated artifact naming, e.g. 26-Feb-2026.
const runDateFormat = "02-Jan-2006"

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect vendor listings and update the master spreadsheet",
	Long:  "Searches every configured category, validates phones, drops vendors already in the master file, and writes the dated and master XLSX artifacts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		log := zap.L().With(
			zap.String("command", "collect"),
			zap.String("run_id", uuid.NewString()),
		)

		runDate := time.Now().Format(runDateFormat)
		datedPath, masterPath := artifactPaths(cfg.Output.Dir, cfg.Output.CityLabel, runDate)

		log.Info("run starting",
			zap.String("run_date", runDate),
			zap.Int("categories", len(cfg.Search.Categories)),
			zap.String("master", masterPath),
		)

		client := serpapi.NewClient(cfg.SerpAPI.Key, cfg.Search.Location(),
			serpapi.WithBaseURL(cfg.SerpAPI.BaseURL))
		extractor := extract.New(
			phone.NewNormalizer(cfg.Search.Region, cfg.Search.CallingCode),
			cfg.Search.CategorySuffix,
			runDate,
		)
		collector := pipeline.NewCollector(client, extractor, pipeline.Options{
			PageSize: cfg.Search.PageSize,
			MaxPages: cfg.Search.MaxPages,
			Delay:    time.Duration(cfg.Search.DelayMS) * time.Millisecond,
		})

		batch := collector.Collect(ctx, cfg.Search.Categories)
		if len(batch) == 0 {
			log.Warn("no vendors collected; no artifacts written")
			return nil
		}

		history, err := report.Load(masterPath)
		if err != nil {
			log.Warn("could not read master file, starting fresh", zap.Error(err))
			history = nil
		} else if len(history) > 0 {
			log.Info("loaded master file", zap.Int("vendors", len(history)))
		}

		fresh, newCount, dupCount := dedupe.Against(batch, history)
		log.Info("deduplication complete",
			zap.Int("collected", len(batch)),
			zap.Int("already_known", dupCount),
			zap.Int("genuinely_new", newCount),
		)

		if newCount > 0 {
			if err := report.Save(fresh, model.Summarize(fresh), datedPath); err != nil {
				return eris.Wrap(err, "collect: save dated file")
			}
			log.Info("saved dated file", zap.String("path", datedPath), zap.Int("vendors", newCount))
		} else {
			log.Info("no new vendors; dated file skipped")
		}

		combined := append(append(model.VendorBatch{}, history...), fresh...)
		if len(combined) > 0 {
			if err := report.Save(combined, model.Summarize(combined), masterPath); err != nil {
				return eris.Wrap(err, "collect: save master file")
			}
			log.Info("saved master file", zap.String("path", masterPath), zap.Int("vendors", len(combined)))
		}

		log.Info("run complete",
			zap.Int("new_vendors", newCount),
			zap.Int("total_vendors", len(combined)),
		)

		return nil
	},
}

// artifactPaths derives the per-run and cumulative artifact locations.
func artifactPaths(dir, cityLabel, runDate string) (dated, master string) {
	dated = filepath.Join(dir, fmt.Sprintf("%s_Vendors_%s.xlsx", cityLabel, runDate))
	master = filepath.Join(dir, fmt.Sprintf("%s_Vendors_Master_List.xlsx", cityLabel))
	return dated, master
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
