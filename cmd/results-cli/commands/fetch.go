package commands

import (
	"log/slog"
	"os"
	"resultfetcher/internal/config"
	"resultfetcher/lib/restyutil"
	"time"

	"github.com/spf13/cobra"
)

var fetchFile *string
var fetchFormat *string
var fetchMinMarks *int
var fetchDump *string
var fetchRps *float64
var fetchResolver *string

func init() {
	fetchFile = fetchCmd.Flags().StringP("file", "f", "", "Read roll numbers from a file (whitespace or newline separated).")
	fetchFormat = fetchCmd.Flags().String("format", FORMAT_TABLE, "Output format, table or json.")
	fetchMinMarks = fetchCmd.Flags().Int("min-marks", -1, "Only show records with at least this many marks.")
	fetchDump = fetchCmd.Flags().String("dump", "", "Write every raw portal request/response into this directory (may start with <dev_state>).")
	fetchRps = fetchCmd.Flags().Float64("rps", 0, "Maximum lookups per second, 0 is unlimited.")
	fetchResolver = fetchCmd.Flags().String("resolver", "", "Override the resolver from the config (portal, table or random).")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [roll numbers...] [--file <path>] [--format table|json] [--min-marks <n>]",
	Short: "Looks up the results of every roll number given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rollNumbers, err := collectRollNumbers(args, *fetchFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg, err := readConfig()
		if err != nil {
			return err
		}
		if *fetchResolver != "" {
			cfg.Resolver = *fetchResolver
		}

		opts := config.BuildOptions{RequestsPerSecond: *fetchRps}
		if *fetchDump != "" {
			output, err := restyutil.NewFilesystemOutput(*fetchDump)
			if err != nil {
				return err
			}
			opts.Dump = output
		}

		fetcher, err := cfg.NewFetcher(opts)
		if err != nil {
			return err
		}

		start := time.Now()
		records := fetcher.FetchBatch(cmd.Context(), rollNumbers)
		slog.Debug("batch finished", "count", len(records), "seconds", time.Since(start).Seconds())

		if *fetchMinMarks >= 0 {
			records = filterMinMarks(records, *fetchMinMarks)
		}
		return render(os.Stdout, *fetchFormat, cfg.Portal.Subject, records)
	},
}
