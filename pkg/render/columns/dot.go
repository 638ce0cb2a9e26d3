package columns

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/waterflow/pkg/snapshot"
)

// Options configures column diagram rendering.
type Options struct {
	// Detailed includes main position and size in node labels.
	// When false, only the index is shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT with one cluster per column and
// edges along each column's item chain. The resulting DOT string can be
// rendered using [RenderSVG].
//
// Evicted items are drawn dashed with a grey fill; the footer, when placed,
// hangs below every column.
func ToDOT(s snapshot.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if s.Horizontal() {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0.3;\n")

	items := make(map[int]snapshot.Item, len(s.Items))
	for _, it := range s.Items {
		items[it.Index] = it
	}

	for _, c := range s.Columns {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", c.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", fmtColumnLabel(c))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, i := range c.Items {
			it := items[i]
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(i), strings.Join(fmtAttrs(it, opts.Detailed), ", "))
		}
		for k := 1; k < len(c.Items); k++ {
			fmt.Fprintf(&buf, "    %q -> %q;\n", nodeID(c.Items[k-1]), nodeID(c.Items[k]))
		}
		buf.WriteString("  }\n")
	}

	if s.Footer != nil {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  \"footer\" [label=%q, shape=note, fillcolor=\"#e7f5ff\"];\n", fmtFooterLabel(*s.Footer, opts.Detailed))
		for _, c := range s.Columns {
			if n := len(c.Items); n > 0 {
				fmt.Fprintf(&buf, "  %q -> \"footer\" [style=dotted, arrowhead=none];\n", nodeID(c.Items[n-1]))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(index int) string { return "item-" + strconv.Itoa(index) }

func fmtColumnLabel(c snapshot.Column) string {
	return fmt.Sprintf("column %d (end %.0f)", c.Index, c.End)
}

func fmtLabel(it snapshot.Item, detailed bool) string {
	if !detailed {
		return strconv.Itoa(it.Index)
	}
	return fmt.Sprintf("%d\npos: %.0f\nsize: %.0f", it.Index, it.MainPos, it.MainSize)
}

func fmtFooterLabel(f snapshot.Item, detailed bool) string {
	if !detailed {
		return "footer"
	}
	return fmt.Sprintf("footer\npos: %.0f\nsize: %.0f", f.MainPos, f.MainSize)
}

func fmtAttrs(it snapshot.Item, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(it, detailed))}
	switch {
	case !it.Materialized:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case it.Cached:
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or for conversion with render.Convert.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
