// Package nodelink renders gravity layouts as node-link diagrams.
//
// # Overview
//
// Positions come from the layout engine, not from Graphviz. [ToDOT] emits an
// undirected DOT graph in which every node carries a pinned position
// (pos="x,y!"), and [RenderSVG] runs the neato engine, which honors pinned
// positions and only draws the edges and labels.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Scale: 100})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
// The center node is filled with a highlight color. Edge stroke width grows
// with edge weight, normalized over the edges of the layout, so stronger
// connections read as heavier lines.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No system Graphviz install is needed.
package nodelink
