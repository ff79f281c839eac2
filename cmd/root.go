package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/compiler"
	"github.com/chriserin/catchr/internal/config"
	"github.com/chriserin/catchr/internal/log"
	"github.com/chriserin/catchr/internal/render"
)

const (
	workDir = ".catchr"
	dbPath  = ".catchr/catchr.db"
)

var (
	logLevelFlag  string
	logFormatFlag string
	configFlag    string

	logger = log.Discard()
)

var rootCmd = &cobra.Command{
	Use:           "catchr",
	Short:         "Compile nested scenarios into Go tests",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.Make(cmd.ErrOrStderr(),
			log.WithLevel(log.ParseLevel(logLevelFlag)),
			log.WithFormat(log.ParseFormat(logFormatFlag)))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", log.DefaultLevel.String(), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", log.DefaultFormat.String(), "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", config.FileName, "Path to the configuration file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded")
	return cfg, nil
}

// compileOptions resolves compiler options from cfg, letting non-empty
// layout and mode override it.
func compileOptions(cfg config.Config, layout, mode string) (compiler.Options, error) {
	if layout == "" {
		layout = cfg.Layout
	}
	if mode == "" {
		mode = cfg.Mode
	}

	l, err := render.ParseLayout(layout)
	if err != nil {
		return compiler.Options{}, err
	}
	ann, err := artifact.AnnotationFor(mode)
	if err != nil {
		return compiler.Options{}, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return compiler.Options{}, err
	}
	return compiler.Options{Layout: l, Annotation: ann, Registry: &reg}, nil
}

func requireInit() error {
	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("run `catchr init` first")
	}
	return nil
}
