package cmd

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/compiler"
	"github.com/chriserin/catchr/internal/config"
	"github.com/chriserin/catchr/internal/db"
	"github.com/chriserin/catchr/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Compile changed .catchr files and track their procedures",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunSync(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

type trackedFile struct {
	id     int64
	hash   string
	output string
}

func RunSync(w io.Writer, cfg config.Config) error {
	if err := requireInit(); err != nil {
		return err
	}

	opts, err := compileOptions(cfg, "", "")
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := findSources(cfg.Root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.Root, err)
	}

	warnSharedNamespaces(w, matches)

	seen := make(map[string]bool, len(matches))
	files, procedures, failed := 0, 0, 0
	for _, path := range matches {
		seen[path] = true

		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		hash := fingerprint(src, cfg)

		tracked, err := lookupFile(sqlDB, path)
		if err != nil {
			return err
		}

		output := compiler.OutputPath(path, cfg.Suffix)
		if tracked != nil && tracked.hash == hash && tracked.output == output && exists(output) {
			var count int
			if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM procedures WHERE file_id = ?`, tracked.id).Scan(&count); err != nil {
				return fmt.Errorf("counting procedures for %s: %w", path, err)
			}
			ui.TrkLine(w, path)
			files++
			procedures += count
			continue
		}

		res, err := compiler.Compile(path, src, opts)
		if err != nil {
			logger.Warn("compile failed", slog.String("file", path), slog.Any("error", err))
			ui.ErrLine(w, path, err)
			failed++
			continue
		}

		if err := os.WriteFile(output, res.Output, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		if tracked != nil && tracked.output != output {
			if err := os.Remove(tracked.output); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing %s: %w", tracked.output, err)
			}
		}

		if err := record(sqlDB, tracked, path, hash, output, res); err != nil {
			return err
		}
		logger.Info("compiled",
			slog.String("file", path),
			slog.String("output", output),
			slog.Int("procedures", len(res.Procedures)))

		if tracked == nil {
			ui.NewLine(w, path, len(res.Procedures))
		} else {
			ui.UpdLine(w, path, len(res.Procedures))
		}
		files++
		procedures += len(res.Procedures)
	}

	if err := prune(w, sqlDB, seen); err != nil {
		return err
	}

	ui.SummaryLine(w, files, procedures)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to compile", failed, len(matches))
	}
	return nil
}

// findSources lists scenario files under root, skipping hidden and vendor
// directories.
func findSources(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == compiler.Ext {
			out = append(out, filepath.ToSlash(path))
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

// fingerprint changes whenever the source or any setting that affects the
// generated output changes.
func fingerprint(src []byte, cfg config.Config) string {
	h := sha256.New()
	h.Write(src)
	fmt.Fprintf(h, "\x00%s\x00%s\x00%s", cfg.Layout, cfg.Mode, cfg.Suffix)

	words := make([]string, 0, len(cfg.Keywords))
	for w := range cfg.Keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		fmt.Fprintf(h, "\x00%s=%s", w, cfg.Keywords[w])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func lookupFile(sqlDB *sql.DB, path string) (*trackedFile, error) {
	var f trackedFile
	err := sqlDB.QueryRow(`SELECT id, hash, output_path FROM files WHERE file_path = ?`, path).Scan(&f.id, &f.hash, &f.output)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	return &f, nil
}

// record stores a compiled file and replaces its procedures in one
// transaction.
func record(sqlDB *sql.DB, tracked *trackedFile, path, hash, output string, res *compiler.Result) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction for %s: %w", path, err)
	}
	defer tx.Rollback()

	var fileID int64
	if tracked == nil {
		r, err := tx.Exec(`INSERT INTO files (file_path, hash, output_path, package) VALUES (?, ?, ?, ?)`,
			path, hash, output, res.Package)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", path, err)
		}
		if fileID, err = r.LastInsertId(); err != nil {
			return fmt.Errorf("inserting %s: %w", path, err)
		}
	} else {
		fileID = tracked.id
		_, err := tx.Exec(`UPDATE files SET hash = ?, output_path = ?, package = ?, updated_at = datetime('now') WHERE id = ?`,
			hash, output, res.Package, fileID)
		if err != nil {
			return fmt.Errorf("updating %s: %w", path, err)
		}
		if _, err := tx.Exec(`DELETE FROM procedures WHERE file_id = ?`, fileID); err != nil {
			return fmt.Errorf("clearing procedures for %s: %w", path, err)
		}
	}

	for _, p := range res.Procedures {
		_, err := tx.Exec(`INSERT INTO procedures (file_id, name, path, marker, line, source) VALUES (?, ?, ?, ?, ?, ?)`,
			fileID, p.Name, p.Path, p.Marker, p.Line, p.Source)
		if err != nil {
			return fmt.Errorf("inserting procedure %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", path, err)
	}
	return nil
}

// prune forgets tracked files whose source no longer exists and removes
// their generated output.
func prune(w io.Writer, sqlDB *sql.DB, seen map[string]bool) error {
	rows, err := sqlDB.Query(`SELECT id, file_path, output_path FROM files ORDER BY file_path`)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}

	type gone struct {
		id           int64
		path, output string
	}
	var removed []gone
	for rows.Next() {
		var g gone
		if err := rows.Scan(&g.id, &g.path, &g.output); err != nil {
			rows.Close()
			return fmt.Errorf("scanning row: %w", err)
		}
		if !seen[g.path] {
			removed = append(removed, g)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	for _, g := range removed {
		if err := forget(sqlDB, g.id, g.path); err != nil {
			return err
		}
		if err := os.Remove(g.output); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", g.output, err)
		}
		ui.DelLine(w, g.path)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// forget deletes a tracked file and its procedures in one transaction.
func forget(sqlDB *sql.DB, fileID int64, path string) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction for %s: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM procedures WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("removing procedures for %s: %w", path, err)
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE id = ?`, fileID); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing removal of %s: %w", path, err)
	}
	return nil
}

// warnSharedNamespaces reports sources in one directory whose names escape
// to the same namespace; their generated test functions collide.
func warnSharedNamespaces(w io.Writer, paths []string) {
	first := make(map[string]string, len(paths))
	for _, path := range paths {
		key := filepath.Join(filepath.Dir(path), compiler.Namespace(path))
		other, ok := first[key]
		if !ok {
			first[key] = path
			continue
		}
		logger.Warn("shared namespace",
			slog.String("file", path),
			slog.String("other", other),
			slog.String("namespace", compiler.Namespace(path)))
		ui.WarnLine(w, path, fmt.Sprintf("shares namespace %s with %s", compiler.Namespace(path), other))
	}
}
