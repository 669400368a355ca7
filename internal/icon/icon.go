// Package icon converts datasource icons between local files, remote URLs,
// and the base64 data-URL form the indexing API stores. Only PNG and SVG
// images are supported.
package icon

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MIME types the indexing API accepts for datasource icons.
const (
	MIMEPNG = "image/png"
	MIMESVG = "image/svg+xml"
)

var extMIME = map[string]string{
	".png": MIMEPNG,
	".svg": MIMESVG,
}

var mimeExt = map[string]string{
	MIMEPNG: "png",
	MIMESVG: "svg",
}

var dataURLRE = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// DataURL encodes raw image bytes as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// FromFile reads a local icon file and encodes it as a data URL. The file
// extension decides the MIME type.
func FromFile(path string) (string, error) {
	ext := filepath.Ext(path)

	mime, ok := extMIME[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", ext)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own icon location
	if err != nil {
		return "", fmt.Errorf("reading icon file: %w", err)
	}

	return DataURL(mime, data), nil
}

// Decoded is a data URL unpacked into its MIME type and raw bytes.
type Decoded struct {
	MIME string
	Data []byte
}

// Ext returns the file extension for the decoded image, without the dot.
func (d Decoded) Ext() string { return mimeExt[d.MIME] }

// Parse unpacks a base64 data URL. It fails on malformed input, unsupported
// MIME types, and invalid base64 payloads.
func Parse(dataURL string) (Decoded, error) {
	m := dataURLRE.FindStringSubmatch(dataURL)
	if m == nil {
		return Decoded{}, errors.New("invalid data URL")
	}

	mime := m[1]
	if _, ok := mimeExt[mime]; !ok {
		return Decoded{}, fmt.Errorf("unsupported icon MIME type %q", mime)
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return Decoded{}, fmt.Errorf("decoding icon payload: %w", err)
	}

	return Decoded{MIME: mime, Data: data}, nil
}

// Fetcher downloads remote icons and normalizes them to data URLs.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher using client, or http.DefaultClient when
// client is nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &Fetcher{client: client}
}

// Fetch downloads an icon over HTTP(S) and encodes it as a data URL. The
// MIME type comes from the Content-Type header when it names a supported
// format, then from the URL's extension; anything else is an error rather
// than a guess.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building icon request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading icon from %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("downloading icon from %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading icon response: %w", err)
	}

	mime, err := remoteMIME(resp.Header.Get("Content-Type"), rawURL)
	if err != nil {
		return "", err
	}

	return DataURL(mime, data), nil
}

func remoteMIME(contentType, rawURL string) (string, error) {
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "svg"):
		return MIMESVG, nil
	case strings.Contains(ct, "png"):
		return MIMEPNG, nil
	}

	lower := strings.ToLower(rawURL)

	switch {
	case strings.HasSuffix(lower, ".svg"):
		return MIMESVG, nil
	case strings.HasSuffix(lower, ".png"):
		return MIMEPNG, nil
	}

	return "", fmt.Errorf("cannot determine icon type for %s: content-type %q is neither png nor svg", rawURL, contentType)
}
