package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/farmyield/internal/catalog"
	"github.com/Simplici0/farmyield/internal/farmfile"
	"github.com/Simplici0/farmyield/internal/report"
	"github.com/Simplici0/farmyield/internal/seed"
	"github.com/Simplici0/farmyield/pkg/farm"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", a.dbPath)
			return err
		},
	}
}

func newSeedCmd(a *app, defaultCatalog string) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert catalog plants that are missing from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plants, err := seed.Plants(catalogPath)
			if err != nil {
				return err
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			stats, err := seed.Run(cmd.Context(), database, plants)
			if err != nil {
				return err
			}
			a.logger.Info().Int("inserted", stats.Inserts).Int("skipped", stats.Skipped).Msg("catalog seeded")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d\n", stats.Inserts, stats.Skipped)
			return err
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", defaultCatalog, "YAML catalog file (built-in catalog when empty)")
	return cmd
}

func newYieldCmd(a *app) *cobra.Command {
	levels := make(map[farm.Dimension]*string, len(farm.Dimensions()))

	cmd := &cobra.Command{
		Use:   "yield PLANT",
		Short: "Print the per-unit yield of a catalog plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := farmfile.ParseEnv(envFlags(levels))
			if err != nil {
				return err
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			plant, err := catalog.NewStore(database).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := (farm.CropEntry{Crop: plant, NumCrops: 1, EFactor: env}).Validate(false); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.FormatAmount(farm.YieldForPlant(plant, env)))
			return err
		},
	}

	for _, d := range farm.Dimensions() {
		levels[d] = cmd.Flags().String(string(d), "", fmt.Sprintf("observed %s level (low, medium, high)", d))
	}
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Compute a yield and profit report for a YAML farm description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := writerFor(format)
			if err != nil {
				return err
			}
			if format == "xlsx" && out == "" {
				return fmt.Errorf("--out is required for xlsx output")
			}

			desc, err := farmfile.Load(args[0])
			if err != nil {
				return err
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			f, err := desc.Resolve(cmd.Context(), catalog.NewStore(database), false)
			if err != nil {
				return err
			}
			r := report.Build(f)
			a.logger.Debug().Int("entries", len(r.Rows)).Float64("total_profit", r.Totals.Profit).Msg("report built")

			if out == "" {
				return write(cmd.OutOrStdout(), r)
			}
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := write(file, r); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json, xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "write the report to this file instead of stdout")
	return cmd
}

func writerFor(format string) (func(io.Writer, report.Report) error, error) {
	switch format {
	case "text":
		return report.WriteText, nil
	case "json":
		return report.WriteJSON, nil
	case "xlsx":
		return report.WriteXLSX, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// envFlags keeps the level flags that were set, keyed by dimension name.
func envFlags(levels map[farm.Dimension]*string) map[string]string {
	raw := map[string]string{}
	for d, level := range levels {
		if *level != "" {
			raw[string(d)] = *level
		}
	}
	return raw
}
