// Package config holds the application configuration and its loading from
// defaults, an optional .env file, VKP_* environment variables and flags.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config defines the global application configuration
type Config struct {
	Window   WindowConfiguration
	Renderer RendererConfiguration
	Log      LogConfiguration
}

// WindowConfiguration is used to configure the host window
type WindowConfiguration struct {
	Title  string
	Width  int
	Height int
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// Validation enables VK_LAYER_KHRONOS_validation and the debug messenger
	Validation bool
	// VSync selects FIFO presentation. When off, mailbox or immediate
	// presentation is preferred if the surface offers it.
	VSync bool
	// ClearColor is a RRGGBB or RRGGBBAA colour with an optional leading #.
	// Quote it in .env files when using the # form.
	ClearColor string
	// PipelineCache is the file the pipeline cache is persisted to.
	// Empty disables persistence.
	PipelineCache string
	// StatsInterval is how often frame statistics are logged. Zero disables.
	StatsInterval time.Duration
}

// LogConfiguration is used to configure logging
type LogConfiguration struct {
	Level  string
	Format string
}

// Environment variable names read by Load.
const (
	EnvWindowTitle   = "VKP_WINDOW_TITLE"
	EnvWindowWidth   = "VKP_WINDOW_WIDTH"
	EnvWindowHeight  = "VKP_WINDOW_HEIGHT"
	EnvValidation    = "VKP_VALIDATION"
	EnvVSync         = "VKP_VSYNC"
	EnvClearColor    = "VKP_CLEAR_COLOR"
	EnvPipelineCache = "VKP_PIPELINE_CACHE"
	EnvStatsInterval = "VKP_STATS_INTERVAL"
	EnvLogLevel      = "VKP_LOG_LEVEL"
	EnvLogFormat     = "VKP_LOG_FORMAT"
)

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Window: WindowConfiguration{
			Title:  "VkPlayground",
			Width:  800,
			Height: 480,
		},
		Renderer: RendererConfiguration{
			Validation:    false,
			VSync:         true,
			ClearColor:    "#444444",
			PipelineCache: defaultPipelineCachePath(),
			StatsInterval: 5 * time.Second,
		},
		Log: LogConfiguration{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultPipelineCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vkplayground", "pipeline.cache")
}

// Load returns the default configuration with environment overrides applied.
// envFile is loaded first if it is not empty. Variables already present in
// the process environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, errors.Wrapf(err, "load env file %s", envFile)
		}
	}
	envy.Reload()

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Window.Title = envString(EnvWindowTitle, c.Window.Title)
	c.Renderer.ClearColor = envString(EnvClearColor, c.Renderer.ClearColor)
	c.Renderer.PipelineCache = envString(EnvPipelineCache, c.Renderer.PipelineCache)
	c.Log.Level = envString(EnvLogLevel, c.Log.Level)
	c.Log.Format = envString(EnvLogFormat, c.Log.Format)

	var err error
	if c.Window.Width, err = envInt(EnvWindowWidth, c.Window.Width); err != nil {
		return err
	}
	if c.Window.Height, err = envInt(EnvWindowHeight, c.Window.Height); err != nil {
		return err
	}
	if c.Renderer.Validation, err = envBool(EnvValidation, c.Renderer.Validation); err != nil {
		return err
	}
	if c.Renderer.VSync, err = envBool(EnvVSync, c.Renderer.VSync); err != nil {
		return err
	}
	if c.Renderer.StatsInterval, err = envDuration(EnvStatsInterval, c.Renderer.StatsInterval); err != nil {
		return err
	}
	return nil
}

// envString treats a variable that is set but empty as unset. godotenv
// reads an unquoted # as a comment, so VKP_CLEAR_COLOR=#102030 in a .env
// file arrives empty.
func envString(key, fallback string) string {
	if v := envy.Get(key, ""); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", key)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return v, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseColor(c.Renderer.ClearColor); err != nil {
		return err
	}
	if c.Renderer.StatsInterval < 0 {
		return errors.Newf("stats interval must not be negative, got %s", c.Renderer.StatsInterval)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Newf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// ClearColorVec returns the clear colour as normalized RGBA.
func (c RendererConfiguration) ClearColorVec() (mgl32.Vec4, error) {
	return ParseColor(c.ClearColor)
}

// ParseColor parses #RRGGBB or #RRGGBBAA into normalized RGBA. Alpha
// defaults to 1.
func ParseColor(s string) (mgl32.Vec4, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return mgl32.Vec4{}, errors.Newf("colour %q must be #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl32.Vec4{}, errors.Wrapf(err, "colour %q", s)
	}

	return mgl32.Vec4{
		float32((v>>24)&0xff) / 255,
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
