// Package splice replaces the contents of one marker-bracketed section of a
// text document. Everything outside the markers, the markers included, is
// carried over byte for byte.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMarkerNotFound is matched by every *MarkerNotFoundError.
	ErrMarkerNotFound = errors.New("splice: marker not found")
	// ErrMarkerOrder is matched by every *OrderError.
	ErrMarkerOrder = errors.New("splice: end marker precedes start marker")
	// ErrEmptyMarker is returned when either marker literal is empty.
	ErrEmptyMarker = errors.New("splice: marker is empty")
)

// Which names one of the two section markers.
type Which string

const (
	StartMarker Which = "start"
	EndMarker   Which = "end"
)

// MarkerNotFoundError reports the marker literal that has no match.
type MarkerNotFoundError struct {
	Which  Which
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("splice: %s marker %q not found", e.Which, e.Marker)
}

func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// OrderError reports a span whose end lies before its start.
type OrderError struct {
	Span Span
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("splice: end marker at %d precedes start marker end at %d", e.Span.End, e.Span.Start)
}

func (e *OrderError) Is(target error) bool {
	return target == ErrMarkerOrder
}

// Span is the byte range between the markers. Start is the offset just past
// the first start marker; End is the offset of the last end marker.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span can be spliced into a document of length n.
func (s Span) Valid(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// Len is the length of the section contents.
func (s Span) Len() int {
	return s.End - s.Start
}

// Locate finds the section span. The start marker is matched at its first
// occurrence and the end marker at its last; the two searches are independent,
// so the span is not checked for ordering.
func Locate(document, start, end string) (Span, error) {
	if start == "" || end == "" {
		return Span{}, ErrEmptyMarker
	}
	i := strings.Index(document, start)
	if i < 0 {
		return Span{}, &MarkerNotFoundError{Which: StartMarker, Marker: start}
	}
	j := strings.LastIndex(document, end)
	if j < 0 {
		return Span{}, &MarkerNotFoundError{Which: EndMarker, Marker: end}
	}
	return Span{Start: i + len(start), End: j}, nil
}

// Splice returns document with the span replaced. The span must come from
// Locate on the same document; out-of-range offsets panic.
func Splice(document string, span Span, replacement string) string {
	var b strings.Builder
	b.Grow(len(document) - span.Len() + len(replacement))
	b.WriteString(document[:span.Start])
	b.WriteString(replacement)
	b.WriteString(document[span.End:])
	return b.String()
}

// Between returns the current section contents.
func Between(document string, span Span) string {
	return document[span.Start:span.End]
}

// Replace locates the section, checks the markers are ordered, and splices.
func Replace(document, start, end, replacement string) (string, Span, error) {
	span, err := Locate(document, start, end)
	if err != nil {
		return "", Span{}, err
	}
	if !span.Valid(len(document)) {
		return "", span, &OrderError{Span: span}
	}
	return Splice(document, span, replacement), span, nil
}
