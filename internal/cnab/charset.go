package cnab

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// charsets maps accepted encoding names to single-byte character maps.
var charsets = map[string]*charmap.Charmap{
	"ISO-8859-1":   charmap.ISO8859_1,
	"ISO8859-1":    charmap.ISO8859_1,
	"LATIN1":       charmap.ISO8859_1,
	"LATIN-1":      charmap.ISO8859_1,
	"ISO-8859-15":  charmap.ISO8859_15,
	"LATIN9":       charmap.ISO8859_15,
	"WINDOWS-1252": charmap.Windows1252,
	"CP1252":       charmap.Windows1252,
}

// IsUTF8 reports whether name designates UTF-8.
func IsUTF8(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8", "UTF8":
		return true
	}
	return false
}

// LookupCharset returns the single-byte charset registered under name
// (case-insensitive).
func LookupCharset(name string) (*charmap.Charmap, error) {
	cm, ok := charsets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported single-byte encoding: %q", name)
	}
	return cm, nil
}
