package yaml

import (
	"bytes"
)

var byteOrderMark = []byte("\xef\xbb\xbf") //nolint:gochecknoglobals

// rawDocument is the source of one document of a stream. Lines before the
// document are kept as empty lines so positions in errors match the stream.
type rawDocument struct {
	source []byte
	line   int
}

// splitter cuts a stream into documents on the "---" and "..." markers.
//
// A document starts at a "---" line or at the first content line outside a
// document, and ends at the next "---", at "..." or at the end of the stream.
// Comments, blank lines and directives between documents do not start one,
// so a stream without content has no documents and an explicit "---" with
// nothing after it is one empty document.
type splitter struct {
	docs []rawDocument

	current []byte
	start   int
	open    bool

	pending     []byte
	pendingLine int
}

func splitDocuments(data []byte) []rawDocument {
	data = bytes.TrimPrefix(data, byteOrderMark)

	s := &splitter{}

	for index, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		s.feed(line, index+1)
	}

	s.finish()

	return s.docs
}

func (s *splitter) feed(line []byte, lineNo int) {
	switch {
	case isMarker(line, "---"):
		s.finish()
		s.begin(line, lineNo)
	case isMarker(line, "..."):
		s.finish()
		s.pending = nil
	case s.open:
		s.current = append(s.current, line...)
	case isBetweenDocuments(line):
		if s.pending == nil {
			s.pendingLine = lineNo
		}

		s.pending = append(s.pending, line...)
	default:
		s.begin(line, lineNo)
	}
}

// begin opens a document whose first own line is line. Pending directives
// and comments are placed in front of it.
func (s *splitter) begin(line []byte, lineNo int) {
	firstLine := lineNo
	if s.pending != nil {
		firstLine = s.pendingLine
	}

	s.current = bytes.Repeat([]byte("\n"), firstLine-1)
	s.current = append(s.current, s.pending...)
	s.current = append(s.current, line...)
	s.start = lineNo
	s.open = true
	s.pending = nil
}

func (s *splitter) finish() {
	if !s.open {
		return
	}

	s.docs = append(s.docs, rawDocument{source: s.current, line: s.start})
	s.current = nil
	s.open = false
}

// isMarker reports whether line is the document marker followed by whitespace or the line end.
func isMarker(line []byte, marker string) bool {
	if !bytes.HasPrefix(line, []byte(marker)) {
		return false
	}

	rest := line[len(marker):]

	return len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r'
}

// isBetweenDocuments reports whether line may appear outside a document without starting one.
func isBetweenDocuments(line []byte) bool {
	trimmed := bytes.TrimSpace(line)

	return len(trimmed) == 0 || trimmed[0] == '#' || line[0] == '%'
}
