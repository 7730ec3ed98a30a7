package ingestion

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
)

// maxLineSize bounds a single document line; bodies of crawled pages can be
// several megabytes.
const maxLineSize = 64 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	return sc
}

func parseID(field string, line int) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, apperrors.Newf(apperrors.ErrMalformedRecord, "line %d: id %q is not an integer", line, field)
	}
	if id <= 0 {
		return 0, apperrors.Newf(apperrors.ErrMalformedRecord, "line %d: id must be positive, got %d", line, id)
	}
	return id, nil
}

// DocumentReader streams "<id>\t<title>\t<body>" lines. A missing body is
// read as empty.
type DocumentReader struct {
	sc   *bufio.Scanner
	line int
}

func NewDocumentReader(r io.Reader) *DocumentReader {
	return &DocumentReader{sc: newScanner(r)}
}

// Next returns the next document, or io.EOF after the last one.
func (d *DocumentReader) Next() (index.Document, error) {
	for d.sc.Scan() {
		d.line++
		text := strings.TrimRight(d.sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.SplitN(text, "\t", 3)
		if len(fields) < 2 {
			return index.Document{}, apperrors.Newf(apperrors.ErrMalformedRecord,
				"line %d: expected id, title and body separated by tabs", d.line)
		}
		id, err := parseID(fields[0], d.line)
		if err != nil {
			return index.Document{}, err
		}
		doc := index.Document{ID: id, Title: fields[1]}
		if len(fields) == 3 {
			doc.Body = fields[2]
		}
		return doc, nil
	}
	if err := d.sc.Err(); err != nil {
		return index.Document{}, fmt.Errorf("reading documents at line %d: %w", d.line+1, err)
	}
	return index.Document{}, io.EOF
}

// ReadQueries reads every "<id>\t<query>" line. Only the line terminator is
// stripped from the query text; its spaces are significant to the parser.
func ReadQueries(r io.Reader) ([]QueryRecord, error) {
	sc := newScanner(r)
	records := make([]QueryRecord, 0, 64)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.SplitN(text, "\t", 2)
		if len(fields) != 2 {
			return nil, apperrors.Newf(apperrors.ErrMalformedRecord,
				"line %d: expected query id and query separated by a tab", line)
		}
		id, err := parseID(fields[0], line)
		if err != nil {
			return nil, err
		}
		records = append(records, QueryRecord{ID: id, Text: fields[1], Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading queries at line %d: %w", line+1, err)
	}
	return records, nil
}
