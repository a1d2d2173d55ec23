package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/export"
	"github.com/piwi3910/wallcalc/internal/model"
)

// newFlagSet returns a flag set that reports errors instead of exiting.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return usageErrorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return nil
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runCalc(a *app, args []string) error {
	fs := a.newFlagSet("calc")
	wf := addWallFlags(fs, a.cfg.DisplayOveragePercent)
	asJSON := fs.Bool("json", false, "print the raw calculation result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, err := a.preview(wf)
	if err != nil {
		return err
	}
	a.logger.Info("calculated",
		zap.String("preview", ctx.ID),
		zap.String("sku", ctx.Pattern.SKU),
		zap.String("sale_type", ctx.Result.SaleType.String()),
		zap.Bool("fallback", ctx.Result.Fallback))

	if *asJSON {
		return a.printJSON(ctx.Result)
	}

	fmt.Fprintln(a.stdout, ctx.Title())
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	for _, item := range export.Summary(ctx) {
		fmt.Fprintf(tw, "  %s:\t%s\n", item[0], item[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if ctx.Result.Fallback {
		fmt.Fprintln(a.stdout, "  Note: pattern data is incomplete; quantities are a placeholder estimate.")
	}
	if pl := ctx.Result.PanelLayout; pl != nil && pl.ExceedsLimit {
		fmt.Fprintf(a.stdout, "  Warning: the wall needs %s panels; the longest available is %s.\n",
			model.FormatInches(pl.IdealPanelLength*model.InchesPerFoot),
			model.FormatInches(engine.MaxPanelLengthFeet*model.InchesPerFoot))
	}
	return nil
}

func runPatterns(a *app, args []string) error {
	fs := a.newFlagSet("patterns")
	catalogPath := fs.String("catalog", "", "catalog file (.yaml, .yml or .json)")
	asJSON := fs.Bool("json", false, "print the catalog as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	c, err := a.loadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	sorted := c.Sorted()
	if *asJSON {
		return a.printJSON(model.NewPatternCatalog(sorted...))
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	names := c.DisplayNames()
	fmt.Fprintln(tw, "PATTERN / SKU\tSOLD BY\tMATCH\tREPEAT\tWIDTH")
	for i, p := range sorted {
		repeat := "-"
		if p.RepeatWidthInches > 0 || p.RepeatHeightInches > 0 {
			repeat = fmt.Sprintf("%g x %g in", p.RepeatWidthInches, p.RepeatHeightInches)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g in\n",
			names[i], p.SaleType, p.EffectivePatternMatch(), repeat, p.ElementWidth())
	}
	return tw.Flush()
}

func runCompare(a *app, args []string) error {
	fs := a.newFlagSet("compare")
	wf := addWallFlags(fs, a.cfg.DisplayOveragePercent)
	skus := fs.String("skus", "", "comma-separated SKUs to compare (default: whole catalog)")
	asJSON := fs.Bool("json", false, "print the comparison as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	c, err := a.loadCatalog(*wf.catalog)
	if err != nil {
		return err
	}
	wall, err := a.wall(wf)
	if err != nil {
		return err
	}

	var patterns []model.Pattern
	if keys := splitList(*skus); len(keys) > 0 {
		for _, key := range keys {
			p, err := a.findPattern(&c, key)
			if err != nil {
				return err
			}
			patterns = append(patterns, p)
		}
	} else {
		patterns = c.Sorted()
	}

	rows := a.calc.ComparePatterns(patterns, wall)
	if *asJSON {
		out := make([]comparisonJSON, len(rows))
		for i, r := range rows {
			out[i] = newComparisonJSON(r)
		}
		return a.printJSON(out)
	}

	fmt.Fprintf(a.stdout, "Wall: %s w x %s h\n", wall.FormattedWidth(), wall.FormattedHeight())
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tORDER\tPIECES\tCUT LENGTH\tWASTE")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", r.Pattern.DisplayName(), r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%g %s\t%d\t%s\t%.1f%%\n",
			r.Pattern.DisplayName(), r.OrderQuantity, r.OrderUnit,
			r.Result.ElementCount(), model.FormatInches(r.CutLength), r.WastePercent)
	}
	return tw.Flush()
}

// comparisonJSON is the JSON form of one comparison row.
type comparisonJSON struct {
	SKU           string                   `json:"sku"`
	Name          string                   `json:"pattern_name"`
	OrderQuantity float64                  `json:"order_quantity"`
	OrderUnit     string                   `json:"order_unit"`
	CutLength     float64                  `json:"cut_length_inches"`
	WastePercent  float64                  `json:"waste_percent"`
	Result        *model.CalculationResult `json:"result,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

func newComparisonJSON(r engine.ComparisonResult) comparisonJSON {
	out := comparisonJSON{
		SKU:           r.Pattern.SKU,
		Name:          r.Pattern.Name,
		OrderQuantity: r.OrderQuantity,
		OrderUnit:     r.OrderUnit,
		CutLength:     r.CutLength,
		WastePercent:  r.WastePercent,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		return out
	}
	res := r.Result
	out.Result = &res
	return out
}
