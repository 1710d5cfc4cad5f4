// Package extract detects the type of an uploaded document and pulls out the
// plain text the analyzer and the sealed content payload work with.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html"
)

// ErrUnsupportedType is returned for documents whose text cannot be extracted here.
var ErrUnsupportedType = errors.New("unsupported file type for text extraction")

const genericType = "application/octet-stream"

// DetectType returns the media type of data. A specific declared type wins over sniffing.
func DetectType(data []byte, declared string) string {
	if mt := baseType(declared); mt != "" && mt != genericType {
		return mt
	}
	return baseType(mimetype.Detect(data).String())
}

func baseType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(v, ";")[0]))
	}
	return mt
}

// Text extracts readable text from data of the given media type.
func Text(fileType string, data []byte) (string, error) {
	switch baseType(fileType) {
	case "text/plain", "text/markdown", "text/csv", "application/json":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract %s: not valid utf-8", fileType)
		}
		return string(data), nil
	case "text/html", "application/xhtml+xml":
		return htmlText(bytes.NewReader(data))
	case "application/pdf":
		return pdfText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
}

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "table": true,
}

func htmlText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var sb strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.TrimSpace(sb.String()), nil
			}
			return "", fmt.Errorf("extract html: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] {
				skip++
			}
			if blockElements[tag] {
				sb.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				sb.WriteByte('\n')
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}
