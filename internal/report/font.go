package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the TrueType family embedded into rendered documents
type Font struct {
	Regular []byte
	Bold    []byte
	Italic  []byte
}

// GoFont returns the Go font family. It covers Latin, Greek and Cyrillic;
// scripts outside those need LoadFont.
func GoFont() Font {
	return Font{Regular: goregular.TTF, Bold: gobold.TTF, Italic: goitalic.TTF}
}

// LoadFont reads one TrueType file and uses it for every style
func LoadFont(path string) (Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Font{}, fmt.Errorf("read font: %w", err)
	}
	if !isTrueType(b) {
		return Font{}, fmt.Errorf("read font: %s is not a TrueType font", path)
	}
	return Font{Regular: b, Bold: b, Italic: b}, nil
}

// isTrueType checks the sfnt version tag; OpenType CFF and collections are not supported
func isTrueType(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0x00, 0x01, 0x00, 0x00}) || bytes.HasPrefix(b, []byte("true"))
}

// pdfText drops runes the writer cannot encode. Text is stored as UCS-2, so
// anything outside the Basic Multilingual Plane (emoji, for one) is removed.
// Invalid UTF-8 becomes U+FFFD.
func pdfText(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s)
}
