// Package exporter writes bookmarks in formats other tools can import.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/reservoir/internal/model"
)

// ExportPath returns the HTML export file path inside dir.
// Format: <dir>/reservoir-export-YYYY-MM-DD.html
func ExportPath(dir string, now time.Time) string {
	filename := fmt.Sprintf("reservoir-export-%s.html", now.Format("2006-01-02"))
	return filepath.Join(dir, filename)
}

// WriteHTML writes the collection as Netscape bookmark HTML into dir and
// returns the written path.
func WriteHTML(c *model.Collection, dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("export directory: %s is not a directory", dir)
	}

	path := ExportPath(dir, now)
	if err := os.WriteFile(path, []byte(ExportHTML(c)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format.
// Bookmarks are written flat in natural order. Tags go into the TAGS
// attribute and the note into a <DD> line.
func ExportHTML(c *model.Collection) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bookmark := range c.All() {
		writeBookmark(&b, bookmark)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bookmark *model.Bookmark) {
	const prefix = "    "

	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"",
		prefix,
		html.EscapeString(model.ExternalLink(bookmark.Link)),
		bookmark.Timestamp,
	)
	if len(bookmark.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bookmark.Title))

	if note := bookmark.NoteText(); note != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(note))
	}
}
