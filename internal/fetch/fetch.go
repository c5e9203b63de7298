// Package fetch extracts bookmark metadata from music pages. It reads
// Open Graph tags and the document title, with a couple of conventions
// for the sites people actually paste links from.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/cratedig/crate/pkg/types"
)

// maxBodyBytes caps how much of a page is read for parsing.
const maxBodyBytes = 2 << 20

// Metadata is what a page yields: title, artist when it can be told
// apart, and the inferred item kind.
type Metadata struct {
	Title  string
	Artist string
	Kind   string
}

// Client fetches pages for metadata extraction.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewClient builds a Client from config. A nil logger is replaced with
// a no-op.
func NewClient(config types.Config, logger *zap.Logger) *Client {
	config = config.WithDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.FetchTimeout},
		userAgent:  config.UserAgent,
		logger:     logger,
	}
}

// Extract fetches rawURL and parses its metadata. The returned metadata
// always has Kind set; Title and Artist may be empty when the page does
// not expose them.
func (c *Client) Extract(ctx context.Context, rawURL string) (*Metadata, error) {
	if err := types.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}

	meta, err := Parse(io.LimitReader(resp.Body, maxBodyBytes), rawURL)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("extracted metadata",
		zap.String("url", rawURL),
		zap.String("title", meta.Title),
		zap.String("kind", meta.Kind),
		zap.Duration("elapsed", time.Since(start)))
	return meta, nil
}

// Parse reads an HTML document and extracts bookmark metadata. rawURL
// is used for kind inference only.
func Parse(r io.Reader, rawURL string) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	og := map[string]string{}
	var docTitle string

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var property, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property", "name":
						property = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if strings.HasPrefix(property, "og:") && content != "" {
					if _, seen := og[property]; !seen {
						og[property] = content
					}
				}
			case "title":
				if docTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					docTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(doc)

	title := og["og:title"]
	if title == "" {
		title = docTitle
	}
	title, artist := splitTitleArtist(title)

	return &Metadata{
		Title:  title,
		Artist: artist,
		Kind:   InferKind(rawURL, og["og:type"]),
	}, nil
}

// splitTitleArtist splits the Bandcamp-style "NAME, by ARTIST" title
// form. Titles without the marker come back unchanged with an empty
// artist.
func splitTitleArtist(title string) (string, string) {
	if idx := strings.LastIndex(title, ", by "); idx > 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+len(", by "):])
	}
	return strings.TrimSpace(title), ""
}

// InferKind guesses the item kind from the URL and the og:type value.
func InferKind(rawURL, ogType string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.KindOther
	}
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	switch {
	case strings.HasSuffix(host, "bandcamp.com") && strings.Contains(path, "/album/"):
		return types.KindAlbum
	case strings.HasSuffix(host, "bandcamp.com") && strings.Contains(path, "/track/"):
		return types.KindTrack
	case strings.HasSuffix(host, "soundcloud.com"):
		return types.KindTrack
	case strings.HasSuffix(host, "youtube.com"), strings.HasSuffix(host, "youtu.be"):
		return types.KindTrack
	case strings.HasSuffix(host, "mixcloud.com"):
		return types.KindMix
	}

	switch ogType {
	case "music.album":
		return types.KindAlbum
	case "music.song":
		return types.KindTrack
	case "music.playlist", "music.radio_station":
		return types.KindMix
	}
	return types.KindOther
}
