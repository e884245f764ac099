package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const DefaultEncoding = "utf-8"

var ErrUnknownEncoding = errors.New("document: unknown encoding")

// Plain utf-8 is passed through untouched so invalid sequences outside the
// section survive a rewrite.
var encodings = map[string]encoding.Encoding{
	"utf-8":        encoding.Nop,
	"utf-8-bom":    unicode.UTF8BOM,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
}

var aliases = map[string]string{
	"":           DefaultEncoding,
	"utf8":       "utf-8",
	"utf-8-sig":  "utf-8-bom",
	"utf16le":    "utf-16le",
	"utf16be":    "utf-16be",
	"iso-8859-1": "latin1",
	"cp1252":     "windows-1252",
}

// Encodings lists the canonical encoding names.
func Encodings() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalEncoding resolves name or one of its aliases.
func CanonicalEncoding(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if _, ok := encodings[key]; !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownEncoding, name, strings.Join(Encodings(), ", "))
	}
	return key, nil
}

func lookupEncoding(name string) (string, encoding.Encoding, error) {
	key, err := CanonicalEncoding(name)
	if err != nil {
		return "", nil, err
	}
	return key, encodings[key], nil
}

func decode(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func encode(enc encoding.Encoding, text string) ([]byte, error) {
	return enc.NewEncoder().Bytes([]byte(text))
}
