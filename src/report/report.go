// Package report reads run_vmaf / run_etc XML result files.
//
// A result file holds one or more XML documents separated by blank lines (batch mode writes a
// short header line in front of each document). Every document describes one distorted asset:
// the asset identifier, the executor that scored it, one score attribute per frame and an
// aggregate score. The identifier encodes the reference title, the series label and the
// resolution; see ParseIdentifier.
package report

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an input path is missing or not a regular file.
	ErrNotFound = errors.New("not a valid file path")
	// ErrMalformedXML marks a block that is not well-formed XML. The rest of the file is abandoned.
	ErrMalformedXML = errors.New("not a proper XML document")
	// ErrUnrecognizedIdentifier marks an asset identifier that does not follow the
	// <tag>_<n>_<title>_vs_<label>_<resolution>_... layout.
	ErrUnrecognizedIdentifier = errors.New("unrecognized identifier format")
	// ErrMissingField marks a document without asset, executorId, frames or aggregate data.
	ErrMissingField = errors.New("missing field")
	// ErrBadScore marks a score attribute that is not a number.
	ErrBadScore = errors.New("bad score value")
	// ErrNoFrames marks a document with an empty frames element.
	ErrNoFrames = errors.New("no frames")
)

// Report is one parsed XML document. It is consumed by the figure registry and then dropped.
type Report struct {
	Source string // file the block came from
	Block  int    // zero-based block index inside Source

	Identifier string
	ScoreType  string // executorId prefix, e.g. "VMAF" or "ETC"
	Scores     []float64
	Aggregate  float64

	Title        string // figure key (reference side of the identifier)
	DisplayTitle string // Title without its trailing resolution token
	Label        string // series label (distorted side of the identifier)
	Resolution   string
}

// Frames returns the number of per-frame scores.
func (r *Report) Frames() int { return len(r.Scores) }

// ScoreKey is the attribute name holding this report's scores on frame and aggregate elements.
func (r *Report) ScoreKey() string { return scoreKey(r.ScoreType) }

func scoreKey(scoreType string) string { return scoreType + "_score" }

// BlockError ties a failure to the file and block that produced it.
type BlockError struct {
	Path  string
	Block int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s (block %d): %v", e.Path, e.Block, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }
