package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

type reportView struct{ *analysis.Report }

func (v reportView) TableHeaders() []string {
	return []string{"Domain", "Houses", "Score", "Tier", "Supporting lords", "Transits"}
}

func (v reportView) TableRows() [][]string {
	rows := make([][]string, len(v.Domains))
	for i, d := range v.Domains {
		houses := make([]string, len(d.Houses))
		for j, h := range d.Houses {
			houses[j] = strconv.Itoa(int(h))
		}
		transits := make([]string, len(d.Transits))
		for j, t := range d.Transits {
			transits[j] = fmt.Sprintf("%s@%d", t.Name, int(t.House))
		}
		rows[i] = []string{
			d.Name,
			strings.Join(houses, ","),
			strconv.Itoa(d.Score),
			colorizeTier(d.Tier),
			strings.Join(d.SupportingLords, ","),
			strings.Join(transits, ","),
		}
	}
	return rows
}

func (v reportView) TextLines() []string {
	title := v.Chart
	if title == "" {
		title = "chart"
	}
	lines := []string{
		color.New(color.Bold).Sprintf("%s, %s ascendant, at %s", title, v.Ascendant, v.At.UTC().Format(time.RFC3339)),
		"Dasha: " + chainLine(v.Dasha),
		"",
	}
	lines = append(lines, houseRowsView(v.Houses).TextLines()...)
	lines = append(lines, "")
	for _, d := range v.Domains {
		lines = append(lines, fmt.Sprintf("%-14s %3d  %-12s %s", d.Name, d.Score, colorizeTier(d.Tier), d.Summary))
	}
	return lines
}

func newAnalyzeCmd() *cobra.Command {
	var (
		file    string
		at      string
		domains []string
		watch   bool
		profile profileFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score life domains for a chart at an instant",
		Long: "Analyze the request in --file: house strengths, the active period chain,\n" +
			"and a verdict per life domain.  With --watch the analysis is re-run\n" +
			"each time the file is saved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			instant, err := parseInstant(at)
			if err != nil {
				return err
			}

			run := func() error {
				var req chart.AnalysisRequest
				if err := chart.LoadFile(file, &req); err != nil {
					return err
				}
				if !instant.IsZero() {
					req.At = instant
				}
				if profile.calibration != "" {
					req.Calibration = profile.calibration
				}
				if profile.tierScheme != "" {
					req.TierScheme = profile.tierScheme
				}
				if len(domains) > 0 {
					req.Domains = domains
				}

				ctx, cancel := cliCtx.withTimeout(cmd.Context())
				defer cancel()
				report, err := cliCtx.Service.Analyze(ctx, &req)
				if err != nil {
					return err
				}
				return PrintResult(cmd, reportView{report})
			}

			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			cliCtx.Logger.Info("watching chart file", logging.String("path", file))
			return watchFile(ctx, file, cliCtx.Logger, func() error {
				fmt.Fprintln(cmd.OutOrStdout())
				return run()
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "analysis request file (.yaml, .yml or .json) [REQUIRED]")
	cmd.Flags().StringVar(&at, "at", "", "instant, RFC 3339 or YYYY-MM-DD (overrides the file; default now)")
	cmd.Flags().StringSliceVar(&domains, "domains", nil, "restrict to these domains (comma-separated)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the analysis whenever the file changes")
	profile.register(cmd)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// watchFile calls run after every write to path until ctx is done.  The
// parent directory is watched so editors that replace the file on save are
// followed.  Failed runs are logged and do not stop the loop.
func watchFile(ctx context.Context, path string, logger logging.Logger, run func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create file watcher")
	}
	defer w.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidParam, "resolve watched path").WithDetail(path)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(err, errors.CodeNotFound, "watch directory").WithDetail(filepath.Dir(target))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := run(); err != nil {
				logger.Warn("re-analysis failed", logging.String("path", path), logging.Err(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", logging.Err(err))
		}
	}
}

//Personal.AI order the ending
