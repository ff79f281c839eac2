package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/compiler"
	"github.com/chriserin/catchr/internal/render"
	"github.com/chriserin/catchr/internal/ui"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file|->",
	Short: "Print the namespaces and procedures a scenario file generates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := compileOptions(cfg, "", modeFlag)
		if err != nil {
			return err
		}
		return RunTree(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], opts)
	},
}

func init() {
	treeCmd.Flags().StringVar(&modeFlag, "mode", "", "Leaf mode: sync, parallel or context (default from config)")
	rootCmd.AddCommand(treeCmd)
}

func RunTree(w io.Writer, stdin io.Reader, path string, opts compiler.Options) error {
	name, src, err := readSource(stdin, path)
	if err != nil {
		return err
	}

	_, trees, err := compiler.Build(name, src, opts)
	if err != nil {
		return err
	}

	for _, n := range render.Outline(trees) {
		ui.OutlineNode(w, n)
	}
	return nil
}
