package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boardingpass-service/internal/infrastructure/lock"
	"boardingpass-service/internal/infrastructure/router"
	"boardingpass-service/internal/interface/repository"
	"boardingpass-service/internal/interface/source"
	"boardingpass-service/internal/usecase"
	"boardingpass-service/pkg/logger"
)

func newIngestCmd() *cobra.Command {
	var (
		dir      string
		out      string
		today    string
		logLevel string
		workers  int
	)

	c := &cobra.Command{
		Use:   "ingest",
		Short: "Decode every payload file in a directory and merge it into the JSON history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseToday(today)
			if err != nil {
				return err
			}

			log := logger.NewLogger(logLevel)
			defer log.Sync()

			formats := router.NewFormatRouter(log)
			formats.Register(usecase.NewBCBPHandlerAdapter("bcbp"))

			processor := usecase.NewScanProcessor(
				formats,
				repository.NewJSONLegRepository(out, lock.NewLocalLocker()),
				log,
				usecase.WithPayloadSource(source.NewDirectorySource(dir, log)),
				usecase.WithClock(func() time.Time { return ref }),
				usecase.WithDecodeWorkers(workers),
			)

			report, err := processor.ProcessDirectory(context.Background())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range report.Failures {
				cmd.PrintErrf("skipped %s: %s\n", f.Source, f.Error)
			}
			for _, it := range report.Itineraries {
				fmt.Fprintf(w, "%s: %s, %d leg(s), %s\n", it.Source, it.Confirmation, it.LegCount, it.Status)
			}
			fmt.Fprintf(w, "Stored %d leg(s) in %s\n", len(report.Legs), out)
			return nil
		},
	}

	c.Flags().StringVar(&dir, "dir", "passes", "Directory holding decoded barcode text files")
	c.Flags().StringVar(&out, "out", "boarding_passes.json", "JSON history file to merge into")
	c.Flags().StringVar(&today, "today", "", "Reference date for resolving day-of-year codes (YYYY-MM-DD, default today)")
	c.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")
	c.Flags().IntVar(&workers, "workers", 4, "Payloads decoded in parallel")

	return c
}
