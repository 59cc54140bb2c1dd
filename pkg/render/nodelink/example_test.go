package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/render/nodelink"
)

func ExampleToDOT() {
	l := graph.Layout{
		Center: "me",
		Positions: map[string]graph.Point{
			"me":    {0, 0},
			"alice": {0.5, 0},
		},
		Edges: []graph.Edge{{From: "me", To: "alice", Weight: 3}},
	}

	fmt.Print(nodelink.ToDOT(l, nodelink.Options{}))
	// Output:
	// graph G {
	//   bgcolor="transparent";
	//   inputscale=72;
	//   overlap=true;
	//   splines=false;
	//   node [shape=circle, style=filled, fillcolor=white, fontsize=12, margin="0.05,0.05"];
	//   edge [color="#888888"];
	//
	//   "me" [pos="0.00,0.00!", fillcolor="#f6c343", penwidth=2];
	//   "alice" [pos="50.00,0.00!"];
	//
	//   "me" -- "alice" [penwidth=2.50];
	// }
}
