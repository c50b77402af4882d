package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// parseInstant accepts RFC 3339 or a bare YYYY-MM-DD date (UTC midnight).
// An empty string yields the zero time, which the service reads as now.
func parseInstant(s string) (time.Time, error) {
	t, err := chart.ParseInstant(s)
	if err != nil {
		return time.Time{}, errors.InvalidParam("--at must be RFC 3339 or YYYY-MM-DD").WithDetail(s)
	}
	return t, nil
}

type dashaView struct{ *analysis.DashaReport }

func (v dashaView) TableHeaders() []string {
	return []string{"Level", "Lord", "Start", "End", "Active"}
}

func (v dashaView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Active)+len(v.Nearby))
	for _, p := range v.Active {
		rows = append(rows, []string{p.LevelName, p.Lord, formatDate(p.Start), formatDate(p.End),
			color.GreenString(strconv.Itoa(p.Progress) + "%")})
	}
	for _, p := range v.Nearby {
		if p.Active {
			continue
		}
		rows = append(rows, []string{p.LevelName, p.Lord, formatDate(p.Start), formatDate(p.End), ""})
	}
	return rows
}

func (v dashaView) TextLines() []string {
	lines := []string{fmt.Sprintf("At %s: %s", v.At.UTC().Format(time.RFC3339), chainLine(v.Active))}
	for _, p := range v.Nearby {
		marker := " "
		if p.Active {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %-8s %s .. %s", marker, p.Lord, formatDate(p.Start), formatDate(p.End)))
	}
	return lines
}

func newDashaCmd() *cobra.Command {
	var (
		file   string
		at     string
		window int
	)

	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Show the active period chain at an instant",
		Long: "Resolve the active mahadasha > antardasha > pratyantardasha chain from the\n" +
			"period tree in --file, and list the neighbouring periods of the deepest level.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			instant, err := parseInstant(at)
			if err != nil {
				return err
			}

			var req chart.DashaRequest
			if err := chart.LoadFile(file, &req); err != nil {
				return err
			}
			if !instant.IsZero() {
				req.At = instant
			}
			if cmd.Flags().Changed("window") {
				req.Window = window
			}

			ctx, cancel := cliCtx.withTimeout(cmd.Context())
			defer cancel()
			report, err := cliCtx.Service.ActiveDasha(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, dashaView{report})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "chart or period file with a dasha tree [REQUIRED]")
	cmd.Flags().StringVar(&at, "at", "", "instant, RFC 3339 or YYYY-MM-DD (overrides the file; default now)")
	cmd.Flags().IntVar(&window, "window", 1, "neighbouring periods to list on each side, 0-12 (overrides the file)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

//Personal.AI order the ending
