// Package api serves gravity layouts over HTTP.
//
// Routes:
//
//	POST /api/map-layout       match list in, positions and edges out
//	POST /api/gravity-layout   alias of /api/map-layout
//	POST /api/layout           full graph and optional config in, graph.Layout out
//	GET  /api/health           liveness and build info
//	GET  /metrics              Prometheus metrics, when configured
//
// The match-list endpoint accepts the body used by existing clients:
//
//	{"center_id": "me", "matches": [{"id": "alice", "matchScore": 80}]}
//
// and answers with
//
//	{"positions": {"me": [0, 0], "alice": [0.41, -0.12]},
//	 "edges": [["me", "alice", 80]]}
//
// Errors are JSON objects of the form {"error": "...", "code": "INVALID_INPUT"}
// with the HTTP status derived from the code. Every response carries an
// X-Request-ID header and an X-Cache header on layout routes.
package api
