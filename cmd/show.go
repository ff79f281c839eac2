package cmd

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/db"
	"github.com/chriserin/catchr/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the generated source of a procedure by test name or path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, name string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var path, filePath, source string
	var line int
	err = sqlDB.QueryRow(`
		SELECT p.path, f.file_path, p.line, p.source
		FROM procedures p
		JOIN files f ON p.file_id = f.id
		WHERE p.name = ? OR p.path = ?
		ORDER BY p.id
		LIMIT 1
	`, name, name).Scan(&path, &filePath, &line, &source)
	if err == sql.ErrNoRows {
		return fmt.Errorf("procedure %s not found", name)
	}
	if err != nil {
		return fmt.Errorf("querying %s: %w", name, err)
	}

	ui.ShowHeader(w, path, filePath, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, source)
	return nil
}
