package template

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/waterflow/pkg/errors"
)

// DefaultTemplate is used when a template string is empty.
const DefaultTemplate = "1fr"

// Kind classifies a single track token.
type Kind int

const (
	// Fixed tracks have an absolute length ("50px", "50").
	Fixed Kind = iota
	// Percent tracks take a share of the available size ("25%").
	Percent
	// Flex tracks divide what is left after fixed, percent and gap space ("1fr").
	Flex
)

// String returns the CSS-style unit suffix for the kind.
func (k Kind) String() string {
	switch k {
	case Percent:
		return "%"
	case Flex:
		return "fr"
	default:
		return "px"
	}
}

// Track is one parsed track token.
type Track struct {
	Kind  Kind
	Value float64
}

// Tracks is the resolved result of parsing a template against an available size.
type Tracks struct {
	Count int
	Sizes []float64
}

// Parse resolves template against the available cross size and gap.
//
// Parse never fails: a malformed template yields a single flexible track
// spanning the whole available size. Use [ParseStrict] to learn why a
// template was rejected.
func Parse(template string, available, gap float64) Tracks {
	t, err := ParseStrict(template, available, gap)
	if err != nil {
		return fallback(available)
	}
	return t
}

// ParseStrict is like [Parse] but reports malformed templates. On error the
// returned Tracks still holds the single-track fallback.
func ParseStrict(template string, available, gap float64) (Tracks, error) {
	available = nonNegative(available)
	gap = nonNegative(gap)

	tracks, err := Tokenize(template, available, gap)
	if err != nil {
		return fallback(available), err
	}
	return resolve(tracks, available, gap), nil
}

// Tokenize splits template into tracks, expanding repeat() groups.
// available and gap are only consulted for repeat(auto-fill, ...).
func Tokenize(template string, available, gap float64) ([]Track, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		template = DefaultTemplate
	}

	words, err := split(template)
	if err != nil {
		return nil, err
	}

	var tracks []Track
	for _, w := range words {
		if strings.HasPrefix(w, "repeat(") {
			group, err := expandRepeat(w, available, gap)
			if err != nil {
				return nil, err
			}
			tracks = append(tracks, group...)
			continue
		}
		tr, err := parseTrack(w)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, tr)
	}
	if len(tracks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "template %q has no tracks", template)
	}
	return tracks, nil
}

// Offsets returns the cross-axis start of each track given the gap between them.
func Offsets(sizes []float64, gap float64) []float64 {
	gap = nonNegative(gap)
	offsets := make([]float64, len(sizes))
	pos := 0.0
	for i, s := range sizes {
		offsets[i] = pos
		pos += s + gap
	}
	return offsets
}

func resolve(tracks []Track, available, gap float64) Tracks {
	sizes := make([]float64, len(tracks))
	used := gap * float64(len(tracks)-1)
	totalFr := 0.0

	for i, tr := range tracks {
		switch tr.Kind {
		case Fixed:
			sizes[i] = tr.Value
			used += tr.Value
		case Percent:
			sizes[i] = available * tr.Value / 100
			used += sizes[i]
		case Flex:
			totalFr += tr.Value
		}
	}

	if totalFr > 0 {
		perFr := math.Max(0, available-used) / totalFr
		for i, tr := range tracks {
			if tr.Kind == Flex {
				sizes[i] = tr.Value * perFr
			}
		}
	}
	return Tracks{Count: len(sizes), Sizes: sizes}
}

// split breaks a template on whitespace outside parentheses.
func split(s string) ([]string, error) {
	var (
		words []string
		b     strings.Builder
		depth int
	)
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(':
			depth++
			b.WriteRune(r)
		case r == ')':
			depth--
			if depth < 0 {
				return nil, errors.New(errors.ErrCodeInvalidTemplate, "unbalanced ')' in %q", s)
			}
			b.WriteRune(r)
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			b.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "unbalanced '(' in %q", s)
	}
	flush()
	return words, nil
}

func expandRepeat(w string, available, gap float64) ([]Track, error) {
	if !strings.HasSuffix(w, ")") {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "malformed repeat %q", w)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(w, "repeat("), ")")
	countStr, body, ok := strings.Cut(inner, ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "repeat %q needs a count and a track list", w)
	}
	countStr = strings.TrimSpace(countStr)

	words, err := split(strings.TrimSpace(body))
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "repeat %q has no tracks", w)
	}
	group := make([]Track, 0, len(words))
	for _, bw := range words {
		tr, err := parseTrack(bw)
		if err != nil {
			return nil, err
		}
		group = append(group, tr)
	}

	var count int
	switch countStr {
	case "auto-fill", "auto-fit":
		if len(group) != 1 || group[0].Kind != Fixed || group[0].Value <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "%s requires a single positive fixed track, got %q", countStr, body)
		}
		count = int(math.Floor((available + gap) / (group[0].Value + gap)))
		count = max(count, 1)
	default:
		n, err := strconv.Atoi(countStr)
		if err != nil || n <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "invalid repeat count %q", countStr)
		}
		count = n
	}

	tracks := make([]Track, 0, count*len(group))
	for range count {
		tracks = append(tracks, group...)
	}
	return tracks, nil
}

func parseTrack(tok string) (Track, error) {
	kind := Fixed
	num := tok
	switch {
	case strings.HasSuffix(tok, "fr"):
		kind, num = Flex, strings.TrimSuffix(tok, "fr")
	case strings.HasSuffix(tok, "%"):
		kind, num = Percent, strings.TrimSuffix(tok, "%")
	case strings.HasSuffix(tok, "px"):
		num = strings.TrimSuffix(tok, "px")
	case strings.HasSuffix(tok, "vp"):
		num = strings.TrimSuffix(tok, "vp")
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Track{}, errors.New(errors.ErrCodeInvalidTemplate, "invalid track %q", tok)
	}
	if v < 0 {
		return Track{}, errors.New(errors.ErrCodeInvalidTemplate, "negative track %q", tok)
	}
	if kind == Flex && v == 0 {
		return Track{}, errors.New(errors.ErrCodeInvalidTemplate, "zero flex weight %q", tok)
	}
	return Track{Kind: kind, Value: v}, nil
}

func fallback(available float64) Tracks {
	return Tracks{Count: 1, Sizes: []float64{nonNegative(available)}}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
