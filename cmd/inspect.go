package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-cli/internal/model"
	"github.com/sells-group/vendor-cli/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a saved vendor spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := args[0]

		batch, err := report.Load(path)
		if err != nil {
			return eris.Wrap(err, "inspect: load workbook")
		}
		if len(batch) == 0 {
			zap.L().Info("workbook has no vendor records", zap.String("path", path))
			return nil
		}

		var validPhones, reviews int
		for _, r := range batch {
			if r.PhoneValid {
				validPhones++
			}
			reviews += r.Reviews
		}

		for _, cs := range model.Summarize(batch) {
			zap.L().Info("category",
				zap.String("name", cs.Category),
				zap.Int("vendors", cs.Vendors),
				zap.Int("valid_phones", cs.ValidPhones),
				zap.Float64("avg_rating", cs.AvgRating),
				zap.Int("reviews", cs.Reviews),
			)
		}

		zap.L().Info("totals",
			zap.String("path", path),
			zap.Int("vendors", len(batch)),
			zap.Int("valid_phones", validPhones),
			zap.Int("reviews", reviews),
		)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
