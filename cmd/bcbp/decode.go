package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boardingpass-service/pkg/bcbp"
	"boardingpass-service/templates"
)

func newDecodeCmd() *cobra.Command {
	var (
		today   string
		source  string
		summary bool
	)

	c := &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode one barcode payload and print the itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseToday(today)
			if err != nil {
				return err
			}

			it, err := bcbp.Decode(args[0], source, ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary {
				text, err := templates.RenderItinerarySummary(it)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, text)
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "    ")
			return enc.Encode(it)
		},
	}

	c.Flags().StringVar(&today, "today", "", "Reference date for resolving day-of-year codes (YYYY-MM-DD, default today)")
	c.Flags().StringVar(&source, "source", "cli", "Source name recorded on the decoded legs")
	c.Flags().BoolVar(&summary, "summary", false, "Print a text summary instead of JSON")

	return c
}

func parseToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today (want YYYY-MM-DD)")
	}
	return t, nil
}
