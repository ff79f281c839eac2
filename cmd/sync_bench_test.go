package cmd

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chriserin/catchr/internal/config"
)

func generateScenarioFile(name string, leaves int) string {
	var buf bytes.Buffer
	buf.WriteString("package bench\n\n")
	fmt.Fprintf(&buf, "section %q {\n", name)
	buf.WriteString("\tsystem := 1\n")
	fmt.Fprintf(&buf, "\twhen %q {\n", "the system is running")
	buf.WriteString("\t\tload := system * 2\n")
	for i := 1; i <= leaves; i++ {
		fmt.Fprintf(&buf, "\t\tthen \"result %d is observed\" {\n", i)
		fmt.Fprintf(&buf, "\t\t\t_ = load + %d\n", i)
		buf.WriteString("\t\t}\n")
	}
	buf.WriteString("\t}\n}\n")
	return buf.String()
}

func writeBenchFiles(b *testing.B, fileCount, leavesPerFile int) {
	b.Helper()
	for i := 0; i < fileCount; i++ {
		name := fmt.Sprintf("feature_%d", i)
		content := generateScenarioFile(name, leavesPerFile)
		require.NoError(b, os.WriteFile(name+".catchr", []byte(content), 0o644))
	}
}

func setupBenchProject(b *testing.B, fileCount, leavesPerFile int) {
	b.Helper()
	dir := b.TempDir()
	orig, err := os.Getwd()
	require.NoError(b, err)
	require.NoError(b, os.Chdir(dir))
	b.Cleanup(func() { os.Chdir(orig) })

	var buf bytes.Buffer
	require.NoError(b, RunInit(&buf))
	writeBenchFiles(b, fileCount, leavesPerFile)

	buf.Reset()
	require.NoError(b, RunSync(&buf, config.Default()))
}

func benchIncremental(b *testing.B, fileCount, leavesPerFile int) {
	setupBenchProject(b, fileCount, leavesPerFile)
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunSync(&buf, config.Default()))
	}
}

func benchFirstSync(b *testing.B, fileCount, leavesPerFile int) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		dir := b.TempDir()
		orig, _ := os.Getwd()
		os.Chdir(dir)

		var buf bytes.Buffer
		RunInit(&buf)
		writeBenchFiles(b, fileCount, leavesPerFile)

		buf.Reset()
		b.StartTimer()
		RunSync(&buf, config.Default())
		b.StopTimer()
		os.Chdir(orig)
	}
}

// BenchmarkSync_Incremental_Small: 5 files, 10 leaves each, no changes
func BenchmarkSync_Incremental_Small(b *testing.B) { benchIncremental(b, 5, 10) }

// BenchmarkSync_Incremental_Medium: 20 files, 20 leaves each, no changes
func BenchmarkSync_Incremental_Medium(b *testing.B) { benchIncremental(b, 20, 20) }

// BenchmarkSync_Incremental_Large: 50 files, 50 leaves each, no changes
func BenchmarkSync_Incremental_Large(b *testing.B) { benchIncremental(b, 50, 50) }

// BenchmarkSync_FirstSync_Small: initial sync of 5 files, 10 leaves each
func BenchmarkSync_FirstSync_Small(b *testing.B) { benchFirstSync(b, 5, 10) }

// BenchmarkSync_FirstSync_Large: initial sync of 50 files, 50 leaves each
func BenchmarkSync_FirstSync_Large(b *testing.B) { benchFirstSync(b, 50, 50) }
