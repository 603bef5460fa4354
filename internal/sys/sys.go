// Package sys wraps the host integrations: the default browser and the
// system clipboard.
package sys

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"

	"github.com/nikbrunner/reservoir/internal/model"
)

var (
	ErrOpenLink        = errors.New("open link")
	ErrCopyToClipboard = errors.New("copy to clipboard")
	ErrEmptyLink       = errors.New("empty link")
)

// Replaced in tests.
var (
	openURL        = browser.OpenURL
	writeClipboard = clipboard.WriteAll
)

// OpenLink opens a stored link in the default browser.
// Links without a scheme are opened as https.
func OpenLink(link string) error {
	if link == "" {
		return ErrEmptyLink
	}
	if err := openURL(model.ExternalLink(link)); err != nil {
		return fmt.Errorf("%w: %w", ErrOpenLink, err)
	}
	return nil
}

// CopyLink copies the external form of a link to the clipboard.
func CopyLink(link string) error {
	if link == "" {
		return ErrEmptyLink
	}
	if err := writeClipboard(model.ExternalLink(link)); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyToClipboard, err)
	}
	return nil
}
