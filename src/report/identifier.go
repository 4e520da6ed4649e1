package report

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches run_vmaf asset identifiers such as
// test_0_0_src01_hrc00_576x324_576x324_vs_src01_hrc01_576x324_576x324_q_576x324.
// Groups: reference title, distorted label, resolution token.
var identifierPattern = regexp.MustCompile(`^[a-z]+_[\d_]+_([^:?*+%]+)_vs_([^:?*+%]+)_([\dx]+)_.*`)

var resolutionToken = regexp.MustCompile(`^[\dx]+$`)

// Identifier is the decomposed asset identifier.
type Identifier struct {
	Title        string
	DisplayTitle string
	Label        string
	Resolution   string
}

// ParseIdentifier splits an asset identifier into title, label and resolution.
func ParseIdentifier(id string) (Identifier, error) {
	m := identifierPattern.FindStringSubmatch(id)
	if m == nil {
		return Identifier{}, fmt.Errorf("%w: %q", ErrUnrecognizedIdentifier, id)
	}
	return Identifier{
		Title:        m[1],
		DisplayTitle: displayTitle(m[1]),
		Label:        m[2],
		Resolution:   m[3],
	}, nil
}

// displayTitle drops a trailing "_<width>x<height>" from the title; the resolution gets its own
// annotation on the figure.
func displayTitle(title string) string {
	idx := strings.LastIndex(title, "_")
	if idx <= 0 {
		return title
	}
	if resolutionToken.MatchString(title[idx+1:]) {
		return title[:idx]
	}
	return title
}
