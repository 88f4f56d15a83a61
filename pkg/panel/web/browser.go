package web

import (
	"io"

	"github.com/pkg/browser"
)

// OpenBrowser opens url in the default browser. The launcher's own output is
// discarded so it does not interleave with the log.
func OpenBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
