package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Options controls how a result file is turned into reports.
type Options struct {
	// LabelFilters keeps only reports whose label contains at least one of the substrings.
	// Empty keeps everything.
	LabelFilters []string
	// AbortOnBadIdentifier abandons the rest of the file on the first unrecognized identifier
	// instead of skipping just that block.
	AbortOnBadIdentifier bool
}

// File is the outcome of reading one result file.
type File struct {
	Path     string
	Reports  []*Report
	Skipped  []*BlockError // blocks dropped while the file kept being read
	Filtered int           // blocks dropped by LabelFilters
	Aborted  *BlockError   // failure that stopped reading the file, nil when it was read to the end
}

// SplitBlocks splits file content on blank lines. Whitespace-only chunks are dropped.
func SplitBlocks(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(content, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesLabel reports whether label passes the filter list.
func MatchesLabel(label string, filters []string) bool {
	active := false
	for _, f := range filters {
		if f == "" {
			continue
		}
		active = true
		if strings.Contains(label, f) {
			return true
		}
	}
	return !active
}

// ReadFile loads path and parses every block in it. A missing path returns ErrNotFound;
// block-level problems are recorded on the returned File.
func ReadFile(path string, opts Options) (*File, error) {
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseContent(path, string(b), opts), nil
}

// ParseContent parses already loaded file content. source is used for error context only.
func ParseContent(source, content string, opts Options) *File {
	f := &File{Path: source}
	for i, block := range SplitBlocks(content) {
		r, err := ParseBlock(block)
		if err != nil {
			be := &BlockError{Path: source, Block: i, Err: err}
			if errors.Is(err, ErrMalformedXML) || (opts.AbortOnBadIdentifier && errors.Is(err, ErrUnrecognizedIdentifier)) {
				f.Aborted = be
				break
			}
			f.Skipped = append(f.Skipped, be)
			continue
		}
		if !MatchesLabel(r.Label, opts.LabelFilters) {
			f.Filtered++
			continue
		}
		r.Source = source
		r.Block = i
		f.Reports = append(f.Reports, r)
	}
	return f
}
