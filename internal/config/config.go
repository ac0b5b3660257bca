package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Rates  RatesConfig  `toml:"rates"`
	Policy PolicyConfig `toml:"policy"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig holds the dashboard server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig locates the data directory (database, uploads, exports).
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// RatesConfig carries the default split parameters, each a fraction in
// [0, 1]. Runtime overrides stored in the database take precedence.
type RatesConfig struct {
	CommissionRate float64 `toml:"commission_rate"`
	CardFeeRate    float64 `toml:"card_fee_rate"`
	TaxRate        float64 `toml:"tax_rate"`
}

// PolicyConfig exposes settlement and reporting behavior as
// configuration instead of hardcoded constants.
type PolicyConfig struct {
	// AssumeCardOnly treats all revenue as card revenue in the weekly
	// split, fixing cash owed at zero.
	AssumeCardOnly bool `toml:"assume_card_only"`
	// PartialWeekGrowth includes weeks with fewer than seven days in
	// week-over-week growth chains.
	PartialWeekGrowth bool `toml:"partial_week_growth"`
	// PeakFraction and SlowFraction are the quantiles used to classify
	// time slots as peak or slow.
	PeakFraction float64 `toml:"peak_fraction"`
	SlowFraction float64 `toml:"slow_fraction"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// LoadConfigInfo carries metadata about how the config was loaded.
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig returns the stated business defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Rates: RatesConfig{
			CommissionRate: 0.20,
			CardFeeRate:    0.03,
			TaxRate:        0.08,
		},
		Policy: PolicyConfig{
			AssumeCardOnly:    true,
			PartialWeekGrowth: true,
			PeakFraction:      0.10,
			SlowFraction:      0.20,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads nikos.toml from path, or from the
// executable directory when path is empty, and returns load metadata.
// A missing file yields the defaults, not an error.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	if path == "" {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		path = filepath.Join(exeDir, "nikos.toml")
	}
	info.Path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)

	return config, info, nil
}

// LoadConfig loads nikos.toml without the load metadata.
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// applyEnvOverrides lets the environment (optionally seeded from a
// .env file) override file values, for E2E and local runs.
func applyEnvOverrides(config *AppConfig) {
	_ = godotenv.Load()

	if v := os.Getenv("NIKOS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("NIKOS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("NIKOS_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("NIKOS_LOG_JSON"); v != "" {
		config.Log.JSON = v == "1" || v == "true"
	}
}

// SaveConfig writes the configuration to nikos.toml next to the
// executable.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "nikos.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories. A
// relative DataDir is resolved against the executable directory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath joins a file name onto a data subdirectory.
func GetDataPath(dataDir, subdir, filename string) string {
	return filepath.Join(dataDir, subdir, filename)
}
