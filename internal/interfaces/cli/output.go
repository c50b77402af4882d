package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/dasha"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/lifedomain"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
)

// tableProvider is implemented by results that render as a single table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// textProvider is implemented by results with a compact line rendering.
type textProvider interface {
	TextLines() []string
}

// PrintResult writes data in the output format chosen on the command line.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := "text"
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		return printJSON(out, data)
	case "table":
		if tp, ok := data.(tableProvider); ok {
			return printTable(out, tp.TableHeaders(), tp.TableRows())
		}
	}
	if tp, ok := data.(textProvider); ok {
		for _, line := range tp.TextLines() {
			fmt.Fprintln(out, line)
		}
		return nil
	}
	fmt.Fprintf(out, "%+v\n", data)
	return nil
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// colorizeTier paints a tier label by how favourable it is.
func colorizeTier(t strength.Tier) string {
	switch t {
	case strength.TierExcellent, strength.TierStrong:
		return color.GreenString(string(t))
	case strength.TierGood, strength.TierStable:
		return color.CyanString(string(t))
	case strength.TierModerate:
		return color.YellowString(string(t))
	case strength.TierChallenging, strength.TierWeak:
		return color.RedString(string(t))
	default:
		return string(t)
	}
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared views
// ─────────────────────────────────────────────────────────────────────────────

// houseRowsView renders a twelve-house table.
type houseRowsView []lifedomain.HouseRow

func (v houseRowsView) TableHeaders() []string {
	return []string{"House", "Sign", "Domain", "Ruler", "Points", "Score", "Tier"}
}

func (v houseRowsView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, r := range v {
		rows[i] = []string{
			strconv.Itoa(int(r.House)),
			r.Sign,
			r.Label,
			r.Ruler,
			formatPoints(r.Points),
			strconv.Itoa(r.Score),
			colorizeTier(r.Tier),
		}
	}
	return rows
}

func (v houseRowsView) TextLines() []string {
	lines := make([]string, len(v))
	for i, r := range v {
		lines[i] = fmt.Sprintf("%-3s %-12s %3d  %s", r.House, r.Sign, r.Score, colorizeTier(r.Tier))
	}
	return lines
}

// chainLine renders an active chain as "Saturn (MD 21%) > Mercury (AD 27%)".
func chainLine(chain []dasha.ActivePeriod) string {
	if len(chain) == 0 {
		return "no active period"
	}
	parts := make([]string, len(chain))
	for i, p := range chain {
		parts[i] = fmt.Sprintf("%s (%s %d%%)", color.New(color.Bold).Sprint(p.Lord), p.LevelName, p.Progress)
	}
	return strings.Join(parts, " > ")
}

//Personal.AI order the ending
