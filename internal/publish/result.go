package publish

import (
	"context"
	"fmt"

	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// Stats are the display-only counters shown after publishing. The core always
// reports zero; population is external.
type Stats struct {
	Visitors int `json:"visitors"`
	RSVPs    int `json:"rsvps"`
	Shares   int `json:"shares"`
}

// Result is surfaced once a website is live.
type Result struct {
	Slug  string `json:"slug"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Stats Stats  `json:"stats"`
}

// CopyLink writes the public URL to the clipboard.
func (r Result) CopyLink(ctx context.Context, clipboard interfaces.Clipboard) error {
	if clipboard == nil {
		return fmt.Errorf("publish: clipboard not available")
	}
	return clipboard.WriteText(ctx, r.URL)
}

// ShareMethod reports which channel a share went through.
type ShareMethod string

const (
	ShareNative    ShareMethod = "native"
	ShareClipboard ShareMethod = "clipboard"
)

// Share uses the native share sheet when the host offers one and falls back to
// copying the link otherwise.
func (r Result) Share(ctx context.Context, sharer interfaces.NativeSharer, clipboard interfaces.Clipboard) (ShareMethod, error) {
	if sharer != nil && sharer.CanShare() {
		err := sharer.Share(ctx, interfaces.ShareData{
			Title: r.Title,
			Text:  r.Title,
			URL:   r.URL,
		})
		return ShareNative, err
	}
	return ShareClipboard, r.CopyLink(ctx, clipboard)
}
