package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/export"
)

// exporter writes one preview to path.
type exporter func(path string, ctx engine.PreviewContext) error

func exportPreview(path string, ctx engine.PreviewContext) error {
	return export.ExportPreviewPDF(path, ctx)
}

func exportLabels(path string, ctx engine.PreviewContext) error {
	return export.ExportStripLabels(path, ctx)
}

func exportDXF(path string, ctx engine.PreviewContext) error {
	return export.ExportLayoutDXF(path, ctx.Plan)
}

func exportCutList(path string, ctx engine.PreviewContext) error {
	return export.ExportCutListXLSX(path, ctx)
}

// exportCommand builds a subcommand that calculates one wall and hands the
// preview to write.
func exportCommand(name, ext string, write exporter) func(a *app, args []string) error {
	return func(a *app, args []string) error {
		fs := a.newFlagSet(name)
		wf := addWallFlags(fs, a.cfg.DisplayOveragePercent)
		out := fs.String("out", "", "output file (default: <output_dir>/<sku>-"+name+ext+")")
		if err := parseFlags(fs, args); err != nil {
			return err
		}

		ctx, err := a.preview(wf)
		if err != nil {
			return err
		}

		base := strings.ToLower(ctx.Pattern.SKU)
		if base == "" {
			base = "wallcalc"
		}
		path := a.outputPath(*out, base+"-"+name, ext)
		if err := write(path, ctx); err != nil {
			return err
		}

		a.logger.Info("exported",
			zap.String("format", name),
			zap.String("path", path),
			zap.String("preview", ctx.ID),
			zap.Int("elements", len(ctx.Plan.Elements)))
		fmt.Fprintf(a.stdout, "Wrote %s\n", path)
		return nil
	}
}
