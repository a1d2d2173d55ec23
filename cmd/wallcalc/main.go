// WallCalc - Wallpaper Requirement Calculator
//
// Computes strips, cut lengths and yardage (or panels) needed to cover a
// wall with a repeating pattern, and exports printable previews, strip
// labels, DXF cut layouts and XLSX cut lists.
//
// Build:
//   go build -o wallcalc ./cmd/wallcalc
//
// Usage:
//   wallcalc calc -sku W-MEG-RUS -width 8' -height 9'
//   wallcalc preview -sku W-MEG-RUS -width 96 -height 108 -out preview.pdf
//   wallcalc import -in - -out catalog.yaml < patterns.csv

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage error")

// command is one wallcalc subcommand.
type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"calc":     {"Calculate material for one pattern on one wall", runCalc},
	"patterns": {"List the patterns in the catalog", runPatterns},
	"compare":  {"Compare several patterns on the same wall", runCompare},
	"preview":  {"Export a PDF preview and order summary", exportCommand("preview", ".pdf", exportPreview)},
	"labels":   {"Export QR-coded strip labels (PDF)", exportCommand("labels", ".pdf", exportLabels)},
	"dxf":      {"Export the strip layout as DXF", exportCommand("dxf", ".dxf", exportDXF)},
	"cutlist":  {"Export the cut list as XLSX", exportCommand("cutlist", ".xlsx", exportCutList)},
	"import":   {"Import a CSV or Excel catalog to YAML", runImport},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wallcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file (default: ./wallcalc.yaml or ~/.wallcalc/wallcalc.yaml)")
	logLevel := fs.String("log-level", "", "override the configured log level")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr, fs)
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		usage(stderr, fs)
		return 2
	}

	a, err := newApp(*configPath, *logLevel, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "wallcalc: %v\n", err)
		return 1
	}
	defer a.logger.Sync() //nolint:errcheck

	if err := cmd.run(a, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "wallcalc %s: %v\n", name, err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: wallcalc [-config file] [-log-level level] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dimensions accept inches (96), feet (8'), or both (8'6\", 8ft 6in).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fs.PrintDefaults()
}

// usageErrorf reports bad command-line input.
func usageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
