package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/catchr/internal/config"
	"github.com/chriserin/catchr/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize catchr in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// .catchr/ directory
	_, err := os.Stat(workDir)
	dirExists := err == nil
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", workDir, err)
	}
	if dirExists {
		fmt.Fprintln(w, workDir+"/ already exists")
	} else {
		fmt.Fprintln(w, workDir+"/ created")
	}

	// database
	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintln(w, dbPath+" already exists")
	} else {
		fmt.Fprintln(w, dbPath+" created")
	}

	// configuration
	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Fprintln(w, config.FileName+" already exists")
	} else {
		data, err := config.Default().Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		if err := os.WriteFile(config.FileName, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", config.FileName, err)
		}
		fmt.Fprintln(w, config.FileName+" created")
	}

	// gitignore
	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	logger.Info("initialized")
	return nil
}

func ensureGitignore() ([]string, error) {
	const entry = dbPath + "*"

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
