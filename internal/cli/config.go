// Config loading for the labelpivot CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/labelpivot/internal/paths"
	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyOutputDir      = "output_dir"
	cfgKeySchema         = "schema"
	cfgKeyCSVSnapshot    = "csv_snapshot"
	cfgKeySQLiteSnapshot = "sqlite_snapshot"
	cfgKeyRenumberCOCO   = "renumber_coco"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error; defaults apply.
func loadConfig() (*viper.Viper, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyCSVSnapshot, false)
	v.SetDefault(cfgKeySQLiteSnapshot, false)
	v.SetDefault(cfgKeyRenumberCOCO, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// buildConfig assembles the pipeline configuration from config.yaml and the
// global flags, flags taking precedence.
func buildConfig(v *viper.Viper) (types.Config, error) {
	outputDir, err := paths.ResolveOutputDir(flags.outputDir, v.GetString(cfgKeyOutputDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve output dir: %w", err)
	}

	cfg := types.Config{
		OutputDir:      outputDir,
		Schema:         v.GetStringSlice(cfgKeySchema),
		CSVSnapshot:    v.GetBool(cfgKeyCSVSnapshot),
		SQLiteSnapshot: v.GetBool(cfgKeySQLiteSnapshot),
		RenumberCOCO:   v.GetBool(cfgKeyRenumberCOCO),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() (string, error) {
	if flags.configDir != "" {
		return flags.configDir, nil
	}
	return paths.ResolveConfigDir("")
}
