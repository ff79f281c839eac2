package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/compiler"
)

// stdinName names scenarios read from standard input.
const stdinName = "stdin" + compiler.Ext

var (
	layoutFlag string
	modeFlag   string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file|->",
	Short: "Compile one scenario file and print the generated Go test source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := compileOptions(cfg, layoutFlag, modeFlag)
		if err != nil {
			return err
		}
		return RunCompile(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], opts)
	},
}

func init() {
	compileCmd.Flags().StringVar(&layoutFlag, "layout", "", "Test layout: flat or subtests (default from config)")
	compileCmd.Flags().StringVar(&modeFlag, "mode", "", "Leaf mode: sync, parallel or context (default from config)")
	rootCmd.AddCommand(compileCmd)
}

func RunCompile(w io.Writer, stdin io.Reader, path string, opts compiler.Options) error {
	name, src, err := readSource(stdin, path)
	if err != nil {
		return err
	}

	res, err := compiler.Compile(name, src, opts)
	if err != nil {
		return err
	}
	logger.Debug("compiled", slog.String("file", name), slog.Int("procedures", len(res.Procedures)))

	_, err = w.Write(res.Output)
	return err
}

func readSource(stdin io.Reader, path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, src, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return path, src, nil
}
