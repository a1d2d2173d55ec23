package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/wallcalc/internal/catalog"
	"github.com/piwi3910/wallcalc/internal/config"
	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/importer"
	"github.com/piwi3910/wallcalc/internal/model"
)

// app carries the state shared by all subcommands.
type app struct {
	cfg    model.AppConfig
	logger *zap.Logger
	calc   *engine.Calculator
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(configPath, logLevel string, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		calc:   engine.New(logger),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// newLogger builds a JSON production logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

// loadCatalog returns the catalog at path, the configured catalog, or the
// built-in one, in that order of preference.
func (a *app) loadCatalog(path string) (model.PatternCatalog, error) {
	if path == "" {
		path = a.cfg.CatalogPath
	}
	if path == "" {
		return catalog.Default()
	}
	c, warnings, err := catalog.LoadFile(path)
	if err != nil {
		return model.PatternCatalog{}, err
	}
	for _, w := range warnings {
		a.logger.Warn("catalog record", zap.String("path", path), zap.String("problem", w))
	}
	a.logger.Debug("catalog loaded", zap.String("path", path), zap.Int("patterns", c.Len()))
	return c, nil
}

// findPattern looks a pattern up by SKU, then by name.
func (a *app) findPattern(c *model.PatternCatalog, key string) (model.Pattern, error) {
	if key == "" {
		return model.Pattern{}, usageErrorf("-sku is required")
	}
	p := c.Lookup(key)
	if p == nil {
		return model.Pattern{}, fmt.Errorf("pattern %q not found in catalog", key)
	}
	return *p, nil
}

// wallFlags are the flags every wall-based command accepts.
type wallFlags struct {
	width        *string
	height       *string
	widthFeet    *int
	widthInches  *float64
	heightFeet   *int
	heightInches *float64
	dxfPath      *string
	dxfScale     *float64
	catalog      *string
	sku          *string
	overage      *float64
}

func addWallFlags(fs *flag.FlagSet, overageDefault float64) *wallFlags {
	return &wallFlags{
		width:        fs.String("width", "", "wall width (e.g. 96, 8', 8'6\")"),
		height:       fs.String("height", "", "wall height (e.g. 108, 9', 9'0\")"),
		widthFeet:    fs.Int("width-ft", 0, "wall width, feet part (used when -width is empty)"),
		widthInches:  fs.Float64("width-in", 0, "wall width, inches part"),
		heightFeet:   fs.Int("height-ft", 0, "wall height, feet part (used when -height is empty)"),
		heightInches: fs.Float64("height-in", 0, "wall height, inches part"),
		dxfPath:      fs.String("wall-dxf", "", "read wall size from the largest closed shape in a DXF elevation"),
		dxfScale:     fs.Float64("dxf-units-per-inch", 1, "DXF drawing units per inch (25.4 for millimetres)"),
		catalog:      fs.String("catalog", "", "catalog file (.yaml, .yml or .json); default is the configured or built-in catalog"),
		sku:          fs.String("sku", "", "pattern SKU or exact name"),
		overage:      fs.Float64("overage", overageDefault, "percent added to the displayed \"with overage\" yardage"),
	}
}

// wall resolves the wall from either -wall-dxf or -width/-height.
func (a *app) wall(f *wallFlags) (model.WallSpec, error) {
	if *f.dxfPath != "" {
		res, err := importer.ImportWallDXF(*f.dxfPath, *f.dxfScale)
		if err != nil {
			return model.WallSpec{}, err
		}
		for _, w := range res.Warnings {
			a.logger.Warn("wall drawing", zap.String("path", *f.dxfPath), zap.String("problem", w))
		}
		a.logger.Debug("wall read from drawing",
			zap.Float64("width", res.Wall.WidthInches), zap.Float64("height", res.Wall.HeightInches))
		return res.Wall, nil
	}
	wFeet, wInches, err := wallSide("width", *f.width, *f.widthFeet, *f.widthInches)
	if err != nil {
		return model.WallSpec{}, err
	}
	hFeet, hInches, err := wallSide("height", *f.height, *f.heightFeet, *f.heightInches)
	if err != nil {
		return model.WallSpec{}, err
	}
	wall := model.NewWallSpec(wFeet, wInches, hFeet, hInches)
	if !wall.Valid() {
		return model.WallSpec{}, usageErrorf("wall dimensions must be positive, got %s x %s",
			model.FormatInches(wall.WidthInches), model.FormatInches(wall.HeightInches))
	}
	return wall, nil
}

// wallSide resolves one wall side from its -<name> dimension or, when that is
// empty, from its -<name>-ft and -<name>-in parts.
func wallSide(name, dim string, feet int, inches float64) (int, float64, error) {
	if dim != "" {
		total, err := model.ParseDimension(dim)
		if err != nil {
			return 0, 0, usageErrorf("-%s: %v", name, err)
		}
		ft, in := model.InchesToFeetAndInches(total)
		return ft, in, nil
	}
	if feet == 0 && inches == 0 {
		return 0, 0, usageErrorf("-%s (or -%s-ft/-%s-in, or -wall-dxf) is required", name, name, name)
	}
	if feet < 0 || inches < 0 {
		return 0, 0, usageErrorf("-%s-ft and -%s-in must not be negative", name, name)
	}
	return feet, inches, nil
}

// preview calculates one pattern on one wall and plans its layout.
func (a *app) preview(f *wallFlags) (engine.PreviewContext, error) {
	c, err := a.loadCatalog(*f.catalog)
	if err != nil {
		return engine.PreviewContext{}, err
	}
	pattern, err := a.findPattern(&c, *f.sku)
	if err != nil {
		return engine.PreviewContext{}, err
	}
	wall, err := a.wall(f)
	if err != nil {
		return engine.PreviewContext{}, err
	}
	result, err := a.calc.CalculateWall(&pattern, wall)
	if err != nil {
		return engine.PreviewContext{}, err
	}
	return engine.NewPreviewContext(uuid.NewString(), pattern, wall, result, *f.overage), nil
}

// outputPath returns out, or a default file name in the configured output
// directory.
func (a *app) outputPath(out, base, ext string) string {
	if out != "" {
		return out
	}
	return filepath.Join(a.cfg.OutputDir, base+ext)
}
