// Package gravity computes pinned-center radial layouts for weighted
// compatibility graphs.
//
// # Overview
//
// A gravity layout places one designated center node at the origin and
// arranges every other node around it so that strongly related nodes end up
// close to the center (and to each other) while weakly related or
// disconnected nodes drift outward. The result is a map from node ID to a
// finite 2D coordinate, ready to be scaled onto a canvas.
//
// # Pipeline
//
// [Compute] runs a fixed sequence of stages:
//
//  1. Weight normalization: raw edge weights are clamped to be non-negative
//     and mapped onto [0, 1]. When every weight is equal, all edges count as
//     uniformly strong (1.0).
//  2. Adjacency: each edge contributes a symmetric adjacency entry and a
//     target spring length 1 + (1 - w)·2, so the strongest edge wants length
//     1 and the weakest wants length 3.
//  3. Shortest paths: Dijkstra from the center over spring lengths.
//     Unreachable nodes get an infinite distance.
//  4. Radii: distances are scaled so the farthest reachable node sits at
//     radius 1 (or at MaxRadius when set). Unreachable nodes are pushed out
//     to 1.5 × MaxRadius, or 1.5 when MaxRadius is unset or zero.
//  5. Initial placement: non-center nodes get evenly spaced angles in input
//     order, at their computed radius.
//  6. Refinement: Iterations steps of spring attraction, all-pairs inverse
//     square repulsion, and a weak pull toward the center, integrated with a
//     linearly cooling step size. The center is reset to exactly (0, 0)
//     after every step.
//
// Graphs without edges skip stages 2–6 and place the remaining nodes on the
// unit circle.
//
// # Node IDs
//
// Node IDs may be any comparable type. Internally nodes are remapped to
// dense indices so that the simulation loop works on slices; IDs are only
// translated back when building the result map.
//
// # Determinism
//
// There is no randomness and no dependence on wall-clock time. Output depends
// only on the node order, edge order, center, and [Config]. Identical inputs
// produce bit-identical outputs.
//
// # Concurrency
//
// [Compute] allocates all of its working state per call and holds nothing
// between calls, so independent calls may run concurrently. It never blocks
// and cannot be cancelled; callers bound latency by bounding Iterations and
// the node count.
//
// # Performance
//
// Repulsion is computed over all node pairs, so each iteration costs O(n²).
// The engine targets graphs of tens to low hundreds of nodes and does not use
// spatial partitioning, which would change the numeric output.
package gravity
