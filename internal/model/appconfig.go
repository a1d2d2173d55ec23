package model

// AppConfig holds application-wide preferences.
type AppConfig struct {
	CatalogPath           string  `json:"catalog_path" mapstructure:"catalog_path"`                       // External catalog; empty uses the built-in one
	DisplayOveragePercent float64 `json:"display_overage_percent" mapstructure:"display_overage_percent"` // "With overage" yardage shown next to the order
	LogLevel              string  `json:"log_level" mapstructure:"log_level"`                             // "debug", "info", "warn", "error"
	OutputDir             string  `json:"output_dir" mapstructure:"output_dir"`                           // Default directory for exported files
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		CatalogPath:           "",
		DisplayOveragePercent: DefaultDisplayOveragePercent,
		LogLevel:              "info",
		OutputDir:             ".",
	}
}
