package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Brod8362/upowerchart/src/types"
)

// Config is the bundle of settings the CLI hands to the pipeline.
type Config struct {
	// Device model as upower names it, e.g. 45N1029.
	Device string `mapstructure:"device"`
	// Frame geometry in pixels.
	Width             int `mapstructure:"width"`
	Height            int `mapstructure:"height"`
	LabelAreaSize     int `mapstructure:"label-area-size"`
	GraphMargin       int `mapstructure:"graph-margin"`
	BottomMarginExtra int `mapstructure:"bottom-margin-extra"`
	// Visible history in hours.
	Hours int `mapstructure:"hours"`
	// Colors as #RRGGBB.
	AxisColor        string `mapstructure:"axis-color"`
	BackgroundColor  string `mapstructure:"background-color"`
	PercentColor     string `mapstructure:"percent-color"`
	ChargingColor    string `mapstructure:"charging-color"`
	DischargingColor string `mapstructure:"discharging-color"`

	UpowerDir string `mapstructure:"upower-dir"`
	LogLevel  string `mapstructure:"log-level"`
	// Reload re-runs the whole pipeline at this interval while the window is open.
	// Zero keeps the first frame for the lifetime of the window.
	Reload time.Duration `mapstructure:"reload"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Width:             300,
		Height:            200,
		LabelAreaSize:     20,
		GraphMargin:       10,
		BottomMarginExtra: 10,
		Hours:             3,
		AxisColor:         "#ffffff",
		BackgroundColor:   "#000000",
		PercentColor:      "#00ff00",
		ChargingColor:     "#00ffff",
		DischargingColor:  "#ff9800",
		UpowerDir:         "/var/lib/upower",
		LogLevel:          "info",
	}
}

var hexColorRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Validate checks geometry, hours and color syntax. Device is checked by the commands
// that need one.
func (c Config) Validate() error {
	var problems []string
	if c.Width <= 0 || c.Height <= 0 {
		problems = append(problems, fmt.Sprintf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Hours <= 0 {
		problems = append(problems, fmt.Sprintf("hours must be positive, got %d", c.Hours))
	}
	if c.LabelAreaSize < 0 || c.GraphMargin < 0 || c.BottomMarginExtra < 0 {
		problems = append(problems, "margins and label area must not be negative")
	}
	if 2*c.GraphMargin+c.BottomMarginExtra >= c.Height || 2*c.GraphMargin >= c.Width {
		problems = append(problems, "margins leave no room for the chart")
	}
	for name, v := range c.colors() {
		if !hexColorRe.MatchString(strings.TrimSpace(v)) {
			problems = append(problems, fmt.Sprintf("%s %q is not #RRGGBB", name, v))
		}
	}
	if c.LogLevel != "" && !ValidLogLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	if c.Reload < 0 {
		problems = append(problems, "reload must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", types.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) colors() map[string]string {
	return map[string]string{
		"axis-color":        c.AxisColor,
		"background-color":  c.BackgroundColor,
		"percent-color":     c.PercentColor,
		"charging-color":    c.ChargingColor,
		"discharging-color": c.DischargingColor,
	}
}

// SetDefaults registers DefaultConfig values on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("label-area-size", d.LabelAreaSize)
	v.SetDefault("graph-margin", d.GraphMargin)
	v.SetDefault("bottom-margin-extra", d.BottomMarginExtra)
	v.SetDefault("hours", d.Hours)
	v.SetDefault("axis-color", d.AxisColor)
	v.SetDefault("background-color", d.BackgroundColor)
	v.SetDefault("percent-color", d.PercentColor)
	v.SetDefault("charging-color", d.ChargingColor)
	v.SetDefault("discharging-color", d.DischargingColor)
	v.SetDefault("upower-dir", d.UpowerDir)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("reload", d.Reload)
}

// LoadConfig reads settings from v. The config file is either the explicit path or
// upowerchart.{yaml,toml,json} under $XDG_CONFIG_HOME/upowerchart or the working
// directory; a missing default file is not an error. Environment variables use the
// UPOWERCHART_ prefix with dashes mapped to underscores.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("upowerchart")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %w", types.ErrInvalidConfig, configFile, err)
		}
	} else {
		v.SetConfigName("upowerchart")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "upowerchart"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		Debugf("config file %s", used)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}
	return cfg, nil
}
