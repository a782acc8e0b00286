// Command vkplayground opens a window and draws a triangle with Vulkan.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vkplayground/vkplayground/internal/app"
	"github.com/vkplayground/vkplayground/internal/config"
	"github.com/vkplayground/vkplayground/internal/gfx"
	"github.com/vkplayground/vkplayground/internal/logging"
)

var (
	envFile       string
	title         string
	width         int
	height        int
	validation    bool
	vsync         bool
	clearColor    string
	pipelineCache string
	logLevel      string
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:           "vkplayground",
	Short:         "Draw a triangle with Vulkan",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWindow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the window and render until it is closed",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the physical devices Vulkan reports and how they rate",
	Args:  cobra.NoArgs,
	RunE:  listDevices,
}

func init() {
	// SDL and the Vulkan surface must stay on the main thread
	runtime.LockOSThread()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env", "", "Load environment variables from this file first")
	flags.StringVar(&title, "title", "", "Window title")
	flags.IntVar(&width, "width", 0, "Window width")
	flags.IntVar(&height, "height", 0, "Window height")
	flags.BoolVar(&validation, "validation", false, "Enable the Khronos validation layer")
	flags.BoolVar(&vsync, "vsync", true, "Present with FIFO")
	flags.StringVar(&clearColor, "clear-color", "", "Clear colour as #RRGGBB or #RRGGBBAA")
	flags.StringVar(&pipelineCache, "pipeline-cache", "", "Pipeline cache file, empty string disables")
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(runCmd, devicesCmd)
}

// loadConfig layers flags that were set explicitly over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Window.Title = title
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("validation") {
		cfg.Renderer.Validation = validation
	}
	if flags.Changed("vsync") {
		cfg.Renderer.VSync = vsync
	}
	if flags.Changed("clear-color") {
		cfg.Renderer.ClearColor = clearColor
	}
	if flags.Changed("pipeline-cache") {
		cfg.Renderer.PipelineCache = pipelineCache
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, errors.Wrap(err, "invalid configuration")
	}

	log, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	clearVec, err := cfg.Renderer.ClearColorVec()
	if err != nil {
		return err
	}

	opts := gfx.Options{
		ApplicationName:   "VkPlayground",
		Validation:        cfg.Renderer.Validation,
		VSync:             cfg.Renderer.VSync,
		ClearColor:        clearVec,
		PipelineCachePath: cfg.Renderer.PipelineCache,
	}

	a := app.New(cfg, logging.Named(log, "app"), func() gfx.Renderer {
		return gfx.NewVulkanRenderer(opts, logging.Named(log, "gfx"))
	})
	return a.Run()
}

func listDevices(cmd *cobra.Command, args []string) error {
	_, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reports, err := gfx.ListDevices(logging.Named(log, "gfx"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), gfx.RenderDeviceTable(reports))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}
