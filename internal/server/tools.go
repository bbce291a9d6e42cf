package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Output width in pixels (default: canvas size)",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Output height in pixels (default: canvas size)",
		},
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file path to also write the result to (format from extension)",
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Renderer Inputs
		{
			Name:        "pfp_set_layer",
			Description: "Load an image file into one of the renderer's layers (profile photo, left flag, right flag), or clear it. The photo is loaded smoothed, flags pixel-exact, both resampled to the canvas size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"pfp", "left_flag", "right_flag"},
						"description": "Layer to replace",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, WebP, BMP, TIFF)",
					},
					"clear": map[string]interface{}{
						"type":        "boolean",
						"description": "Remove the layer instead of loading a file",
						"default":     false,
					},
					"smoothing": map[string]interface{}{
						"type":        "boolean",
						"description": "Interpolate when resampling. Default true for pfp, false for flags",
					},
				},
				"required": []string{"layer"},
			},
		},
		{
			Name:        "pfp_set_setting",
			Description: "Change one render setting: radius (0-1), is_cropped (boolean), warp_strength (0-1) or angle (degrees). Unchanged values keep the cached render.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"radius", "is_cropped", "warp_strength", "angle"},
						"description": "Setting to change",
					},
					"value": map[string]interface{}{
						"description": "New value: number, or boolean for is_cropped",
					},
				},
				"required": []string{"name", "value"},
			},
		},
		{
			Name:        "pfp_get_settings",
			Description: "Return the current settings, which layers are loaded, the canvas size and render cache counters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Rendering
		{
			Name:        "pfp_render",
			Description: "Render the profile picture (flag background with the photo on top) and return it as base64-encoded PNG. Shows a 'no images added' notice when no layer is loaded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(sizeProperties(), map[string]interface{}{
					"output_path": outputPathProperty(),
				}),
			},
		},
		{
			Name:        "pfp_render_layer",
			Description: "Render only the foreground (cropped photo) or background (flags) layer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(sizeProperties(), map[string]interface{}{
					"layer": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"foreground", "background"},
						"description": "Derived layer to render",
					},
					"output_path": outputPathProperty(),
				}),
				"required": []string{"layer"},
			},
		},
		{
			Name:        "pfp_sample_color",
			Description: "Render the profile picture and get the exact color at a pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(sizeProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				}),
				"required": []string{"x", "y"},
			},
		},

		// Standalone Operations
		{
			Name:        "image_rounded_crop",
			Description: "Clip an image to its centered ellipse. size 0 touches the edges, 1 leaves nothing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Crop size from 0 to 1 (default 0)",
						"default":     0,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_rounded_warp",
			Description: "Warp an image so its content survives a circular crop with less distortion at the edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"strength": map[string]interface{}{
						"type":        "number",
						"description": "Warp strength from 0 (none) to 1 (full). Default 1",
						"default":     1,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_split_overlay",
			Description: "Combine two images side by side, split by a line through the center rotated by angle degrees.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(sizeProperties(), map[string]interface{}{
					"left_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image shown on the left",
					},
					"right_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image shown on the right",
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation of the dividing line in degrees (default 0)",
						"default":     0,
					},
					"output_path": outputPathProperty(),
				}),
				"required": []string{"left_path", "right_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
