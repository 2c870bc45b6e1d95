// Package server exposes witness generation over MCP (Model Context Protocol).
//
// The server reads JSON-RPC 2.0 requests one per line and writes one
// response per line. The stdio transport is the usual setup.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - witness_generate: run one transformation and write its witness file
//   - image_dimensions: width, height, depth, format and matching tier
//   - hex_decode: unpack hex word rows into pixels or field elements
//
// witness_generate takes the same settings as the generate command, with
// underscores in place of dashes (crop_x for --crop-x). Arguments override
// whatever the server was started with.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so
// repeated runs against one source decode it once.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string in data. Malformed tools/call params get -32602 and unknown
// methods -32601.
//
// # Usage
//
//	srv := server.New(v)
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal().Err(err).Msg("server stopped")
//	}
package server
