// Package render turns finished layouts into images.
//
// The [nodelink] subpackage draws a layout as boxes and arrows through
// Graphviz, pinning every node at the position the layout engine chose.
// This package converts the resulting SVG to PDF or PNG with rsvg-convert:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/appgraph/pkg/render/nodelink
package render
