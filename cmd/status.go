package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/config"
	"github.com/chriserin/catchr/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked files, procedures and files changed since the last sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunStatus(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, cfg config.Config) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var procedures int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM procedures`).Scan(&procedures); err != nil {
		return fmt.Errorf("counting procedures: %w", err)
	}

	rows, err := sqlDB.Query(`SELECT file_path, hash, output_path FROM files ORDER BY file_path`)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	files := 0
	var stale []string
	for rows.Next() {
		var path, hash, output string
		if err := rows.Scan(&path, &hash, &output); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		files++

		src, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			stale = append(stale, path+" (deleted)")
		case err != nil:
			return fmt.Errorf("reading %s: %w", path, err)
		case fingerprint(src, cfg) != hash || !exists(output):
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	untracked, err := untrackedSources(sqlDB, cfg.Root)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Files: %d\n", files)
	fmt.Fprintf(w, "Procedures: %d\n", procedures)
	fmt.Fprintf(w, "Stale: %d\n", len(stale))
	for _, path := range stale {
		fmt.Fprintf(w, "  %s\n", path)
	}
	fmt.Fprintf(w, "Untracked: %d\n", len(untracked))
	for _, path := range untracked {
		fmt.Fprintf(w, "  %s\n", path)
	}
	return nil
}

// untrackedSources lists scenario files under root that sync has never
// recorded.
func untrackedSources(sqlDB *sql.DB, root string) ([]string, error) {
	matches, err := findSources(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var out []string
	for _, path := range matches {
		tracked, err := lookupFile(sqlDB, path)
		if err != nil {
			return nil, err
		}
		if tracked == nil {
			out = append(out, path)
		}
	}
	return out, nil
}
