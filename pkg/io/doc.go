// Package io reads and writes exported dependency graphs as JSON.
//
// # JSON Format
//
// The format has two top-level arrays and an optional graph metadata
// object:
//
//	{
//	  "meta": {"reverse": false},
//	  "nodes": [
//	    {"id": "gimp", "meta": {"root": true, "size": 120000000}},
//	    {"id": "babl", "row": 1, "meta": {"classification": "shared"}}
//	  ],
//	  "edges": [
//	    {"from": "gimp", "to": "babl"}
//	  ]
//	}
//
// Node ids are package names. Row is the depth below the requested
// packages and is omitted for them. Node meta carries the keys set by
// deps.Closure.Graph: classification, size, repo, version, root. Edges to
// optional dependencies carry {"optional": true}.
//
// # Round trip
//
// [WriteJSON] and [ReadJSON] preserve nodes, rows, edges and metadata, so an
// exported closure can be rendered again later without the package
// databases:
//
//	pacdep graph -f json gimp > gimp.json
//	pacdep graph --input gimp.json -f svg --output gimp.svg
//
// JSON numbers decode as float64 in metadata maps.
package io
