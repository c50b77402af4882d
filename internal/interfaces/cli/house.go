package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// ─────────────────────────────────────────────────────────────────────────────
// house
// ─────────────────────────────────────────────────────────────────────────────

type houseInfoView struct{ *analysis.HouseInfo }

func (v houseInfoView) TextLines() []string {
	types := make([]string, len(v.Types))
	for i, t := range v.Types {
		types[i] = string(t)
	}
	return []string{fmt.Sprintf("%s is house %d from %s: %s [%s], ruled by %s",
		v.Sign, int(v.House), v.Ascendant, v.Label, strings.Join(types, ", "), v.Ruler)}
}

func (v houseInfoView) TableHeaders() []string {
	return []string{"Sign", "Ascendant", "House", "Domain", "Types", "Ruler"}
}

func (v houseInfoView) TableRows() [][]string {
	types := make([]string, len(v.Types))
	for i, t := range v.Types {
		types[i] = string(t)
	}
	return [][]string{{v.Sign, v.Ascendant, strconv.Itoa(int(v.House)), v.Label, strings.Join(types, ","), v.Ruler}}
}

func newHouseCmd() *cobra.Command {
	var sign, ascendant string

	cmd := &cobra.Command{
		Use:   "house [sign]",
		Short: "Show which house a sign occupies from an ascendant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				sign = args[0]
			}
			if sign == "" {
				return errors.InvalidParam("a sign is required, as --sign or an argument")
			}
			info, err := cliCtx.Service.HouseOf(cmd.Context(), sign, ascendant)
			if err != nil {
				return err
			}
			if info == nil {
				return errors.Internal("house lookup returned no result")
			}
			return PrintResult(cmd, houseInfoView{info})
		},
	}
	cmd.Flags().StringVarP(&sign, "sign", "s", "", "sign to place")
	cmd.Flags().StringVarP(&ascendant, "ascendant", "a", "", "ascendant sign [REQUIRED]")
	_ = cmd.MarkFlagRequired("ascendant")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// houses
// ─────────────────────────────────────────────────────────────────────────────

type housesView struct{ *analysis.HousesReport }

func (v housesView) TableHeaders() []string { return houseRowsView(v.Houses).TableHeaders() }
func (v housesView) TableRows() [][]string  { return houseRowsView(v.Houses).TableRows() }

func (v housesView) TextLines() []string {
	lines := []string{fmt.Sprintf("Ascendant %s  (calibration %s, tiers %s)", v.Ascendant, v.Calibration, v.TierScheme)}
	return append(lines, houseRowsView(v.Houses).TextLines()...)
}

type profileFlags struct {
	calibration string
	tierScheme  string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.calibration, "calibration", "", "calibration profile (default from config)")
	cmd.Flags().StringVar(&p.tierScheme, "tier-scheme", "", "tier scheme (default from config)")
}

func newHousesCmd() *cobra.Command {
	var (
		file      string
		ascendant string
		points    string
		profile   profileFlags
	)

	cmd := &cobra.Command{
		Use:   "houses",
		Short: "Classify the twelve houses of a chart",
		Long: "Classify the twelve houses of a chart read from --file (YAML or JSON)\n" +
			"or given inline with --ascendant and --points.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			req := &chart.HousesRequest{Calibration: profile.calibration, TierScheme: profile.tierScheme}
			switch {
			case file != "":
				var c chart.Chart
				if err := chart.LoadFile(file, &c); err != nil {
					return err
				}
				req.Ascendant, req.Strength = c.Ascendant, c.Strength
			case ascendant != "" && points != "":
				table, err := parsePoints(points)
				if err != nil {
					return err
				}
				req.Ascendant, req.Strength = ascendant, table
			default:
				return errors.InvalidParam("either --file or both --ascendant and --points must be provided")
			}

			ctx, cancel := cliCtx.withTimeout(cmd.Context())
			defer cancel()
			report, err := cliCtx.Service.Houses(ctx, req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, housesView{report})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "chart file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&ascendant, "ascendant", "", "ascendant sign")
	cmd.Flags().StringVarP(&points, "points", "p", "", "12 comma-separated strength points, Aries first")
	profile.register(cmd)
	return cmd
}

// parsePoints reads a comma-separated list of non-negative numbers.
func parsePoints(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "invalid strength value").WithDetail(f)
		}
		out = append(out, v)
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// normalize
// ─────────────────────────────────────────────────────────────────────────────

type normalizeView struct {
	Calibration string           `json:"calibration"`
	TierScheme  string           `json:"tier_scheme"`
	Scores      []strength.Score `json:"scores"`
}

func (v normalizeView) TableHeaders() []string { return []string{"Points", "Percent", "Tier"} }

func (v normalizeView) TableRows() [][]string {
	rows := make([][]string, len(v.Scores))
	for i, s := range v.Scores {
		rows[i] = []string{formatPoints(s.Points), strconv.Itoa(s.Percent), colorizeTier(s.Tier)}
	}
	return rows
}

func (v normalizeView) TextLines() []string {
	lines := make([]string, len(v.Scores))
	for i, s := range v.Scores {
		lines[i] = fmt.Sprintf("%s -> %d%% %s", formatPoints(s.Points), s.Percent, colorizeTier(s.Tier))
	}
	return lines
}

func newNormalizeCmd() *cobra.Command {
	var (
		pointsFlag string
		profile    profileFlags
	)

	cmd := &cobra.Command{
		Use:   "normalize [points...]",
		Short: "Normalize raw strength points to a 0-100 score and tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			scoring := cliCtx.Config.Scoring
			cal, err := scoring.Calibration(profile.calibration)
			if err != nil {
				return err
			}
			table, err := scoring.TierScheme(profile.tierScheme)
			if err != nil {
				return err
			}

			points, err := parsePoints(strings.Join(append([]string{pointsFlag}, args...), ","))
			if err != nil {
				return err
			}
			if len(points) == 0 {
				return errors.InvalidParam("no points given; use --points or arguments")
			}
			view := normalizeView{
				Calibration: nameOr(profile.calibration, scoring.DefaultCalibration),
				TierScheme:  nameOr(profile.tierScheme, scoring.DefaultTierScheme),
				Scores:      make([]strength.Score, 0, len(points)),
			}
			for _, p := range points {
				s, err := strength.Classify(p, cal, table)
				if err != nil {
					return err
				}
				view.Scores = append(view.Scores, s)
			}
			return PrintResult(cmd, view)
		},
	}
	cmd.Flags().StringVarP(&pointsFlag, "points", "p", "", "comma-separated strength points")
	profile.register(cmd)
	return cmd
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

//Personal.AI order the ending
