package domain

import "fmt"

// Format identifies a sitemap output variant.
type Format string

const (
	FormatXML  Format = "xml"
	FormatHTML Format = "html"
)

// Formats lists every supported output variant, in generation order.
var Formats = []Format{FormatXML, FormatHTML}

// ParseFormat maps a request "type" value to a Format. The empty string
// defaults to XML, matching the behavior of the legacy generate endpoint.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "xml":
		return FormatXML, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: unknown sitemap type %q", ErrMissingParameter, s)
	}
}

// Extension returns the artifact file extension for the format.
func (f Format) Extension() string {
	return string(f)
}
