// Package importer reads bookmarks from browser exports.
package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/reservoir/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a flat list.
// Links are returned as found; Collection.ImportMerge normalizes them.
// Each enclosing folder name becomes a tag, followed by any tags from the
// TAGS attribute. ADD_DATE sets the timestamp and a following <DD> the note.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var folderStack []string // names of the enclosing folders
	var pendingFolder string // folder waiting to be pushed on next DL
	var last *model.Bookmark // receives the note of a following DD

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = getTextContent(n)
				last = nil
				return

			case "a":
				last = nil
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				tags := append([]string{}, folderStack...)
				for _, tag := range strings.Split(getAttr(n, "tags"), ",") {
					if tag = strings.TrimSpace(tag); tag != "" && !contains(tags, tag) {
						tags = append(tags, tag)
					}
				}

				var ts *uint64
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if v, err := strconv.ParseUint(addDate, 10, 64); err == nil {
						ts = &v
					}
				}

				bookmarks = append(bookmarks, model.NewBookmark(model.NewBookmarkParams{
					Title:     title,
					Link:      href,
					Tags:      tags,
					Timestamp: ts,
				}))
				last = &bookmarks[len(bookmarks)-1]
				return

			case "dd":
				if last != nil {
					last.Note = model.NormalizeNote(ownText(n))
					last = nil
				}
				// A DD may wrap the next DT in lenient parses
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns only the direct text children of a node.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
