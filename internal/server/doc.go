// Package server exposes the converter over HTTP.
//
// Routes:
//
//	POST /api/v1/convert   text in, .docx out
//	POST /api/v1/preview   text in, HTML preview out
//	GET  /healthz          liveness
//
// Both POST routes accept a JSON body {"text", "title", "author"} or a raw
// text/plain body, in which case title and author come from the query string.
package server
