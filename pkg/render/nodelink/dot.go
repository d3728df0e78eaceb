package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/appgraph/pkg/flow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// ShowIDs appends the node id below each label.
	ShowIDs bool
}

// fill colors by palette type; built nodes use white.
var typeFill = map[string]string{
	flow.TypeInput:  "#e8f1fb",
	flow.TypeOutput: "#eaf7ea",
}

// ToDOT converts a layout to a Graphviz DOT document with pinned node
// positions. Render it with [RenderSVG].
func ToDOT(l flow.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph appgraph {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.7, color=\"#777777\"];\n")
	buf.WriteString("\n")

	sides := make(map[string]flow.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		sides[n.ID] = n
		cx, cy := n.Center()
		attrs := []string{
			"label=" + quote(fmtLabel(n, opts)),
			fmt.Sprintf("pos=\"%s,%s!\"", num(cx), num(-cy)),
			"width=" + num(n.Width/72),
			"height=" + num(n.Height/72),
		}
		if fill, ok := typeFill[n.Type]; ok {
			attrs = append(attrs, "fillcolor="+quote(fill))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		attrs := []string{"id=" + quote(e.ID)}
		if p := port(sides[e.SourceID].SourceSide); p != "" {
			attrs = append(attrs, "tailport="+p)
		}
		if p := port(sides[e.TargetID].TargetSide); p != "" {
			attrs = append(attrs, "headport="+p)
		}
		if e.Animated {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.SourceID), quote(e.TargetID), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n flow.Node, opts Options) string {
	if !opts.ShowIDs || n.ID == n.Label {
		return n.Label
	}
	return n.Label + "\n" + n.ID
}

// port maps a side to a Graphviz compass point.
func port(s flow.Side) string {
	switch s {
	case flow.SideTop:
		return "n"
	case flow.SideBottom:
		return "s"
	case flow.SideLeft:
		return "w"
	case flow.SideRight:
		return "e"
	}
	return ""
}

// quote produces a DOT double-quoted string. Only backslash and quote need
// escaping; newlines become the \n escape Graphviz centers on.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT document with pinned positions to SVG.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NOP)

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
