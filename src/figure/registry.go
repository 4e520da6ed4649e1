package figure

import (
	"errors"
	"fmt"

	"github.com/neal-igolgi/h265-benchmark/src/report"
)

var (
	// ErrNoFigures is returned when an operation needs a figure and none was created.
	ErrNoFigures = errors.New("no figures")
	// ErrMultipleFigures is returned when saving or printing stats with more than one figure.
	ErrMultipleFigures = errors.New("cannot save as more than one figure exists")
)

// Options are the run-wide plotting settings.
type Options struct {
	Mode      Mode
	Overlay   bool    // put every report on the first group regardless of its title
	FrameRate float64 // >0 switches the x axis to seconds
	Autoscale bool    // autoscale y instead of the fixed [0,100]
	Verbosity int     // 0 none, 1 mean+stdev, 2 plus min+max
}

// Group is the family of figures sharing one title.
type Group struct {
	Key     string
	Figures []*Figure
}

// Last returns the newest figure of the group.
func (g *Group) Last() *Figure { return g.Figures[len(g.Figures)-1] }

// Registry tracks every open figure of a run.
type Registry struct {
	opts    Options
	groups  map[string]*Group
	order   []string
	figures []*Figure
}

// NewRegistry returns an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, groups: map[string]*Group{}}
}

// Options returns the settings the registry was created with.
func (r *Registry) Options() Options { return r.opts }

// Resolve maps a report title to its group key. With overlay on, every title after the first
// lands on the first group.
func (r *Registry) Resolve(title string) string {
	if r.opts.Overlay && len(r.order) > 0 {
		return r.order[0]
	}
	return title
}

// Target returns the figure the report should be drawn on, creating the group or a linked
// figure when needed.
func (r *Registry) Target(rep *report.Report) *Figure {
	key := r.Resolve(rep.Title)
	g, ok := r.groups[key]
	if !ok {
		g = &Group{Key: key}
		r.groups[key] = g
		r.order = append(r.order, key)
		fig := r.newFigure(key, 0, rep.DisplayTitle, rep.Resolution, rep)
		g.Figures = append(g.Figures, fig)
		return fig
	}
	last := g.Last()
	if !last.Full() {
		return last
	}
	first := g.Figures[0]
	fig := r.newFigure(key, len(g.Figures), first.DisplayTitle, first.Resolution, rep)
	g.Figures = append(g.Figures, fig)
	return fig
}

func (r *Registry) newFigure(key string, page int, displayTitle, resolution string, rep *report.Report) *Figure {
	fig := newFigure(len(r.figures)+1, key, page, displayTitle, resolution, rep.Frames(), rep.ScoreType, r.opts)
	r.figures = append(r.figures, fig)
	return fig
}

// Add draws rep on its target figure and returns both.
func (r *Registry) Add(rep *report.Report) (*Figure, *Series) {
	fig := r.Target(rep)
	fig.UpdateEnvelope(rep.Scores, len(fig.Series) == 0)
	fig.RegisterScoreType(rep.ScoreType)
	s := &Series{
		Label:      rep.Label,
		ScoreType:  rep.ScoreType,
		Source:     rep.Source,
		Values:     rep.Scores,
		Stats:      ComputeStats(rep.Scores, rep.Aggregate),
		ColorIndex: len(fig.Series) % MaxOverlays,
	}
	fig.Series = append(fig.Series, s)
	return fig, s
}

// Figures returns every figure in creation order.
func (r *Registry) Figures() []*Figure { return r.figures }

// Groups returns the figure groups in creation order.
func (r *Registry) Groups() []*Group {
	out := make([]*Group, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.groups[k])
	}
	return out
}

// Group returns the group stored under key.
func (r *Registry) Group(key string) (*Group, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// Single returns the only figure, or ErrNoFigures / ErrMultipleFigures.
func (r *Registry) Single() (*Figure, error) {
	switch len(r.figures) {
	case 0:
		return nil, ErrNoFigures
	case 1:
		return r.figures[0], nil
	default:
		return nil, fmt.Errorf("%w (%d figures)", ErrMultipleFigures, len(r.figures))
	}
}

// StatLines formats the stats printed after saving. A figure with one series yields one plain
// line; otherwise every series gets a line prefixed with its score type, plus its label when
// that score type has several series.
func (r *Registry) StatLines() ([]string, error) {
	fig, err := r.Single()
	if err != nil {
		return nil, err
	}
	if len(fig.Series) == 1 {
		return []string{fig.Series[0].Stats.Line()}, nil
	}
	perType := map[string]int{}
	for _, s := range fig.Series {
		perType[s.ScoreType]++
	}
	lines := make([]string, 0, len(fig.Series))
	for _, s := range fig.Series {
		prefix := s.ScoreType
		if perType[s.ScoreType] > 1 {
			prefix += "/" + s.Label
		}
		lines = append(lines, prefix+": "+s.Stats.Line())
	}
	return lines, nil
}
