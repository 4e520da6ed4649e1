package figure

import (
	"fmt"
	"math"
)

// Stats summarises one series. Mean is the report's own aggregate score, not a recomputation;
// Stdev is taken around that mean.
type Stats struct {
	Mean  float64
	Stdev float64
	Min   float64
	Max   float64
}

// ComputeStats derives Stats for scores with the given aggregate mean.
func ComputeStats(scores []float64, aggregate float64) Stats {
	st := Stats{Mean: aggregate}
	if len(scores) == 0 {
		return st
	}
	st.Min, st.Max = scores[0], scores[0]
	var sq float64
	for _, v := range scores {
		d := v - aggregate
		sq += d * d
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Stdev = math.Sqrt(sq / float64(len(scores)))
	return st
}

// Line formats the stats the way the save mode prints them.
func (s Stats) Line() string {
	return fmt.Sprintf("mean=%.3f,stdev=%.3f,min=%.2f,max=%.2f", s.Mean, s.Stdev, s.Min, s.Max)
}

// AnnotationKind identifies what an Annotation shows.
type AnnotationKind int

const (
	AnnotateMean AnnotationKind = iota
	AnnotateMin
	AnnotateMax
)

// AnnotationXFraction is the horizontal anchor of stat annotations, as a fraction of the
// figure width.
const AnnotationXFraction = 0.905

// Annotation is a stat label drawn at a data y position in the right margin.
type Annotation struct {
	Kind       AnnotationKind
	Y          float64
	Text       string
	ColorIndex int
}

// Annotations lists the stat labels for the given verbosity: 1 adds mean and deviation, 2 adds
// min and max. A min of exactly 0 or a max of exactly 100 is left out.
func (f *Figure) Annotations(verbosity int) []Annotation {
	var out []Annotation
	if verbosity < 1 {
		return out
	}
	for _, s := range f.Series {
		st := s.Stats
		out = append(out, Annotation{Kind: AnnotateMean, Y: st.Mean, Text: fmt.Sprintf("mean=%.2f, dev=%.2f", st.Mean, st.Stdev), ColorIndex: s.ColorIndex})
		if verbosity < 2 {
			continue
		}
		if st.Min != 0 {
			out = append(out, Annotation{Kind: AnnotateMin, Y: st.Min, Text: fmt.Sprintf("min=%.3f", st.Min), ColorIndex: s.ColorIndex})
		}
		if st.Max != 100 {
			out = append(out, Annotation{Kind: AnnotateMax, Y: st.Max, Text: fmt.Sprintf("max=%.3f", st.Max), ColorIndex: s.ColorIndex})
		}
	}
	return out
}
