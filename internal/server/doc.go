// Package server implements the MCP (Model Context Protocol) server for the
// flag profile-picture renderer.
//
// This package provides a JSON-RPC 2.0 server that exposes one
// avatar.Renderer through MCP tools. It is the event layer of the
// renderer: tool calls load layers, change settings and request renders.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Renderer Inputs:
//   - pfp_set_layer: Load or clear the photo, left flag or right flag
//   - pfp_set_setting: Change radius, is_cropped, warp_strength or angle
//   - pfp_get_settings: Current settings, loaded layers and cache counters
//
// Rendering:
//   - pfp_render: Background and foreground composited, as PNG
//   - pfp_render_layer: A single derived layer
//   - pfp_sample_color: Color of one pixel of the rendered picture
//
// Standalone Operations:
//   - image_rounded_crop: Elliptical crop of a file
//   - image_rounded_warp: Edge-correcting warp of a file
//   - image_split_overlay: Two files split along a rotated line
//
// # Rendering and Caching
//
// Requests are handled one at a time, in order. Derived layers stay cached
// in the renderer until a setter changes one of their inputs or a render
// asks for a different size. Decoded files are cached by path, smoothing
// flag and size for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A layer whose file fails to decode is left as it was.
package server
