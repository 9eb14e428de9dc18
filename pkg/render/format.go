package render

import (
	"strings"
	"unicode"

	"github.com/saasfactory/archviz/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPG  Format = "jpg"
	FormatPDF  Format = "pdf"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// DefaultFormat is the format written when none is requested.
const DefaultFormat = FormatPNG

// Formats lists every supported format in display order.
var Formats = []Format{FormatPNG, FormatSVG, FormatJPG, FormatPDF, FormatDOT, FormatJSON}

var contentTypes = map[Format]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatJPG:  "image/jpeg",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatJSON: "application/json",
}

// ParseFormat parses a format name. "jpeg" is accepted as an alias of jpg.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpeg" {
		f = FormatJPG
	}
	if _, ok := contentTypes[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", s, formatList())
	}
	return f, nil
}

// ParseFormats parses a comma-separated list. An empty string yields the
// default format. Duplicates are dropped.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "" {
		return []Format{DefaultFormat}, nil
	}
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string { return contentTypes[f] }

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Image reports whether the format is produced by the drawing engine, as
// opposed to a text description of the diagram.
func (f Format) Image() bool {
	switch f {
	case FormatPNG, FormatSVG, FormatJPG, FormatPDF:
		return true
	}
	return false
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// FileName derives the default output file name from a diagram title: the
// title's words joined by underscores, lower-cased, plus the format
// extension. "SaaS B2B system" in PNG becomes "saas_b2b_system.png".
// Path separators become underscores, so the name never leaves the
// directory it is joined to.
func FileName(title string, f Format) string {
	base := strings.ToLower(strings.Join(strings.Fields(title), "_"))
	base = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "diagram"
	}
	return base + f.Ext()
}
