package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/wallcalc/internal/catalog"
	"github.com/piwi3910/wallcalc/internal/importer"
)

func runImport(a *app, args []string) error {
	fs := a.newFlagSet("import")
	in := fs.String("in", "", "CSV or Excel catalog to import; - reads CSV from stdin")
	out := fs.String("out", "", "write the imported catalog as YAML (default: print a summary only)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *in == "" {
		return usageErrorf("-in is required")
	}

	var result importer.ImportResult
	if *in == "-" {
		result = importer.ImportCSVFromReader(a.stdin)
	} else {
		result = importer.ImportFile(*in)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(a.stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(a.stderr, "error: %s\n", e)
	}
	a.logger.Info("catalog imported",
		zap.String("path", *in),
		zap.Int("patterns", len(result.Patterns)),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	if len(result.Patterns) == 0 {
		return fmt.Errorf("no patterns imported from %s", *in)
	}

	fmt.Fprintf(a.stdout, "Imported %d patterns (%d rows rejected)\n", len(result.Patterns), len(result.Errors))
	if *out == "" {
		return nil
	}
	if err := catalog.WriteYAML(*out, result.Catalog()); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", *out)
	return nil
}
