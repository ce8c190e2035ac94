// Package server exposes a collage session over JSON-RPC 2.0, following the
// MCP tool conventions, so that scripts and assistants can arrange a collage
// without the viewer window.
//
// # Protocol
//
// One request per line is read from the input stream and one response per
// line is written to the output stream. Logging must go elsewhere, usually
// stderr.
//
// Supported methods: initialize, tools/list, tools/call, ping.
//
// # Tools
//
//   - collage_build: load a directory and arrange it
//   - collage_resize: change the canvas size, optionally from the original files
//   - collage_info: grid and canvas dimensions
//   - collage_cell_at: canvas pixel to grid cell
//   - collage_tile_origin: grid cell to canvas pixel
//   - collage_swap: swap two cells
//   - collage_render: save or return the rendered canvas
//
// # Errors
//
// Unknown methods return -32601 and malformed or missing tool arguments
// -32602. Any other tool failure, such as a pixel outside the canvas or a
// call before collage_build, returns -32000 with the Go error text as data.
// A failed call never changes the session.
package server
