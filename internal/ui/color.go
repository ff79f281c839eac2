// Package ui styles command output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/catchr/internal/render"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trkStyle    = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	nsStyle     = lipgloss.NewStyle().Bold(true)
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	fileStyle   = lipgloss.NewStyle().Faint(true)
)

// NewLine reports a scenario file tracked for the first time.
func NewLine(w io.Writer, path string, procedures int) {
	fmt.Fprintf(w, "%s  %s (%d)\n", newStyle.Render("new"), path, procedures)
}

// UpdLine reports a tracked file whose source changed.
func UpdLine(w io.Writer, path string, procedures int) {
	fmt.Fprintf(w, "%s  %s (%d)\n", updStyle.Render("upd"), path, procedures)
}

// TrkLine reports an unchanged tracked file.
func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

// DelLine reports a tracked file whose source was removed.
func DelLine(w io.Writer, path string) {
	fmt.Fprintln(w, errStyle.Render("del")+"  "+path)
}

// WarnLine reports a problem that does not stop a sync.
func WarnLine(w io.Writer, path, msg string) {
	fmt.Fprintf(w, "%s  %s %s\n", updStyle.Render("wrn"), path, msg)
}

// ErrLine reports a file that failed to compile.
func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s  %s\n     %v\n", errStyle.Render("err"), path, err)
}

// SummaryLine closes a sync.
func SummaryLine(w io.Writer, files, procedures int) {
	fmt.Fprintf(w, "synced %d files, %d procedures\n", files, procedures)
}

// ListRow prints one tracked procedure with padded columns.
func ListRow(w io.Writer, name, file, marker string, nameWidth, fileWidth int) {
	fmt.Fprintf(w, "%s  %s  %s\n",
		pad(name, nameWidth),
		fileStyle.Render(pad(file, fileWidth)),
		markerStyle.Render(marker))
}

// OutlineNode prints one line of an artifact outline.
func OutlineNode(w io.Writer, n render.Node) {
	indent := strings.Repeat("  ", n.Depth)
	if !n.Leaf {
		fmt.Fprintln(w, indent+nsStyle.Render(n.Name+"/"))
		return
	}
	fmt.Fprintf(w, "%s%s %s %s\n", indent, n.Name,
		markerStyle.Render("["+n.Marker+"]"),
		trkStyle.Render(fmt.Sprintf("(%d)", n.Statements)))
}

// ShowHeader introduces a procedure printed by show.
func ShowHeader(w io.Writer, path, file string, line int) {
	fmt.Fprintf(w, "%s  %s\n", nsStyle.Render(path), fileStyle.Render(fmt.Sprintf("%s:%d", file, line)))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
