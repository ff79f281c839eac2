package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/db"
	"github.com/chriserin/catchr/internal/ui"
)

var (
	fileFlag   string
	markerFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked procedures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), fileFlag, markerFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&fileFlag, "file", "", "Only list procedures from this scenario file")
	listCmd.Flags().StringVar(&markerFlag, "mode", "", "Only list procedures with this mode")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	name   string
	file   string
	marker string
}

func RunList(w io.Writer, fileFilter, markerFilter string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT p.name, f.file_path, p.marker
		FROM procedures p
		JOIN files f ON p.file_id = f.id
		WHERE (? = '' OR f.file_path = ?)
		  AND (? = '' OR p.marker = ?)
		ORDER BY f.file_path, p.id
	`, fileFilter, fileFilter, markerFilter, markerFilter)
	if err != nil {
		return fmt.Errorf("querying procedures: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		if err := rows.Scan(&r.name, &r.file, &r.marker); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	nameWidth, fileWidth := 0, 0
	for _, r := range results {
		nameWidth = max(nameWidth, len(r.name))
		fileWidth = max(fileWidth, len(r.file))
	}

	for _, r := range results {
		ui.ListRow(w, r.name, r.file, r.marker, nameWidth, fileWidth)
	}
	return nil
}
