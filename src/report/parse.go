package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type xmlAttrs struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (a *xmlAttrs) get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, at := range a.Attrs {
		if at.Name.Local == name {
			return at.Value, true
		}
	}
	return "", false
}

type xmlFrames struct {
	Frame []xmlAttrs `xml:"frame"`
}

// xmlResult mirrors the run_vmaf result document. The root element name varies by tool
// version, so only its attributes and children are bound.
type xmlResult struct {
	XMLName   xml.Name
	Root      xmlAttrs
	Asset     *xmlAttrs
	Frames    *xmlFrames
	Aggregate *xmlAttrs
}

// UnmarshalXML keeps the root attributes (executorId among them) next to the children.
func (r *xmlResult) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type plain struct {
		Asset     *xmlAttrs  `xml:"asset"`
		Frames    *xmlFrames `xml:"frames"`
		Aggregate *xmlAttrs  `xml:"aggregate"`
	}
	var p plain
	if err := d.DecodeElement(&p, &start); err != nil {
		return err
	}
	r.XMLName = start.Name
	r.Root = xmlAttrs{Attrs: start.Attr}
	r.Asset, r.Frames, r.Aggregate = p.Asset, p.Frames, p.Aggregate
	return nil
}

// stripHeader drops the batch header line run_vmaf writes in front of each document.
// A first line that already looks like markup is kept.
func stripHeader(block string) string {
	trimmed := strings.TrimLeft(block, " \t\n")
	if strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	idx := strings.IndexByte(trimmed, '\n')
	if idx < 0 {
		return ""
	}
	return trimmed[idx+1:]
}

func decodeDocument(doc string) (*xmlResult, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedXML)
	}
	dec := xml.NewDecoder(strings.NewReader(doc))
	var res xmlResult
	if err := dec.Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	// Anything but whitespace, comments or processing instructions after the root is junk.
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: text after document element", ErrMalformedXML)
			}
		case xml.StartElement:
			return nil, fmt.Errorf("%w: second document element <%s>", ErrMalformedXML, t.Name.Local)
		}
	}
	return &res, nil
}

// ParseBlock parses one blank-line separated block (header line included) into a Report.
// Malformed markup yields ErrMalformedXML; everything else that prevents plotting yields
// ErrUnrecognizedIdentifier, ErrMissingField, ErrBadScore or ErrNoFrames.
func ParseBlock(block string) (*Report, error) {
	res, err := decodeDocument(stripHeader(block))
	if err != nil {
		return nil, err
	}
	id, ok := res.Asset.get("identifier")
	if !ok {
		return nil, fmt.Errorf("%w: asset identifier", ErrMissingField)
	}
	executor, ok := res.Root.get("executorId")
	if !ok || executor == "" {
		return nil, fmt.Errorf("%w: executorId", ErrMissingField)
	}
	scoreType, _, _ := strings.Cut(executor, "_")

	ident, err := ParseIdentifier(id)
	if err != nil {
		return nil, err
	}

	if res.Frames == nil {
		return nil, fmt.Errorf("%w: frames", ErrMissingField)
	}
	if len(res.Frames.Frame) == 0 {
		return nil, ErrNoFrames
	}
	key := scoreKey(scoreType)
	scores := make([]float64, len(res.Frames.Frame))
	for i := range res.Frames.Frame {
		raw, ok := res.Frames.Frame[i].get(key)
		if !ok {
			return nil, fmt.Errorf("%w: frame %d has no %s", ErrMissingField, i, key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d %s=%q", ErrBadScore, i, key, raw)
		}
		scores[i] = v
	}

	rawAgg, ok := res.Aggregate.get(key)
	if !ok {
		return nil, fmt.Errorf("%w: aggregate %s", ErrMissingField, key)
	}
	agg, err := strconv.ParseFloat(strings.TrimSpace(rawAgg), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate %s=%q", ErrBadScore, key, rawAgg)
	}

	return &Report{
		Identifier:   id,
		ScoreType:    scoreType,
		Scores:       scores,
		Aggregate:    agg,
		Title:        ident.Title,
		DisplayTitle: ident.DisplayTitle,
		Label:        ident.Label,
		Resolution:   ident.Resolution,
	}, nil
}
