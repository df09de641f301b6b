package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// EncodeDataURL returns data as a base64 data URL.
func EncodeDataURL(data []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURL reports whether s carries an inline payload rather than a link.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL splits a base64 data URL into its bytes and MIME type.
func DecodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("data URL is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URL payload: %w", err)
	}
	return data, mime, nil
}

// Normalize prepares an image payload supplied by a client for storage.
// Inline images are re-encoded through Process; http(s) links are kept;
// anything else is rejected.
func Normalize(payload string) (string, error) {
	switch {
	case payload == "":
		return "", nil
	case IsDataURL(payload):
		data, _, err := DecodeDataURL(payload)
		if err != nil {
			return "", err
		}
		photo, err := Process(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return photo.DataURL(), nil
	case strings.HasPrefix(payload, "https://"), strings.HasPrefix(payload, "http://"):
		return payload, nil
	default:
		return "", fmt.Errorf("image must be a data URL or an http(s) link")
	}
}

// Serve writes an item's image payload: inline images as bytes, links as
// a redirect. Inline payloads of any type outside AllowedMIME are refused.
func Serve(w http.ResponseWriter, r *http.Request, payload string) {
	if payload == "" {
		http.NotFound(w, r)
		return
	}
	if !IsDataURL(payload) {
		http.Redirect(w, r, payload, http.StatusFound)
		return
	}

	data, mime, err := DecodeDataURL(payload)
	if err != nil {
		http.Error(w, "corrupt image", http.StatusInternalServerError)
		return
	}
	if !AllowedMIME[mime] {
		http.Error(w, "unsupported image type", http.StatusUnsupportedMediaType)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
