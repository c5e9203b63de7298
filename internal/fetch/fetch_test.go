package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cratedig/crate/pkg/types"
)

const bandcampAlbumHTML = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="Selected Ambient Works 85-92, by Aphex Twin">
<meta property="og:type" content="music.album">
<meta property="og:site_name" content="Aphex Twin">
<title>Selected Ambient Works 85-92 | Aphex Twin</title>
</head>
<body><h1>not metadata</h1></body>
</html>`

const plainPageHTML = `<html>
<head><title>  Some Mix Archive  </title></head>
<body><p>no open graph here</p></body>
</html>`

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		url        string
		wantTitle  string
		wantArtist string
		wantKind   string
	}{
		{
			name:       "bandcamp album with og tags",
			html:       bandcampAlbumHTML,
			url:        "https://aphextwin.bandcamp.com/album/selected-ambient-works-85-92",
			wantTitle:  "Selected Ambient Works 85-92",
			wantArtist: "Aphex Twin",
			wantKind:   types.KindAlbum,
		},
		{
			name:      "title element fallback",
			html:      plainPageHTML,
			url:       "https://example.org/archive",
			wantTitle: "Some Mix Archive",
			wantKind:  types.KindOther,
		},
		{
			name:      "og type decides kind when url is unknown",
			html:      `<html><head><meta property="og:title" content="Night Drive"><meta property="og:type" content="music.song"></head></html>`,
			url:       "https://example.com/releases/night-drive",
			wantTitle: "Night Drive",
			wantKind:  types.KindTrack,
		},
		{
			name:     "empty document",
			html:     "<html></html>",
			url:      "https://example.com/x",
			wantKind: types.KindOther,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta, err := Parse(strings.NewReader(tc.html), tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, meta.Title)
			assert.Equal(t, tc.wantArtist, meta.Artist)
			assert.Equal(t, tc.wantKind, meta.Kind)
		})
	}
}

func TestSplitTitleArtist(t *testing.T) {
	tests := []struct {
		in         string
		wantTitle  string
		wantArtist string
	}{
		{"Drift, by Nadia Struiwigh", "Drift", "Nadia Struiwigh"},
		{"No Marker Here", "No Marker Here", ""},
		{"Trails, by A, by B", "Trails, by A", "B"},
		{", by Ghost", ", by Ghost", ""},
		{"  padded  ", "padded", ""},
	}
	for _, tc := range tests {
		title, artist := splitTitleArtist(tc.in)
		assert.Equal(t, tc.wantTitle, title, tc.in)
		assert.Equal(t, tc.wantArtist, artist, tc.in)
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		url    string
		ogType string
		want   string
	}{
		{"https://artist.bandcamp.com/album/lp1", "", types.KindAlbum},
		{"https://artist.bandcamp.com/track/single", "", types.KindTrack},
		{"https://soundcloud.com/artist/cut", "", types.KindTrack},
		{"https://www.youtube.com/watch?v=abc", "", types.KindTrack},
		{"https://www.mixcloud.com/host/show-12/", "", types.KindMix},
		{"https://example.com/page", "music.album", types.KindAlbum},
		{"https://example.com/page", "music.playlist", types.KindMix},
		{"https://example.com/page", "website", types.KindOther},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, InferKind(tc.url, tc.ogType), tc.url)
	}
}

func TestExtract(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(plainPageHTML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(types.Config{}, zap.NewNop())

	meta, err := client.Extract(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "Some Mix Archive", meta.Title)
	assert.Equal(t, types.DefaultUserAgent, gotUA)

	_, err = client.Extract(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	_, err = client.Extract(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, types.ErrInvalidURL)
}
