package fingerprint

import (
	"bytes"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeBody converts a raw response body to UTF-8 text. The encoding comes
// from the Content-Type header, a BOM or a <meta charset> tag, in that order
// of precedence. Undecodable input falls back to the raw bytes.
func decodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return string(body)
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
