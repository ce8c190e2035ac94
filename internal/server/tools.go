package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "collage_build",
			Description: "Load every image in a directory (sorted by file name), keep the largest square number of them and arrange them row by row into a collage of roughly the given canvas size. Replaces any previous collage.",
			InputSchema: objectSchema(map[string]interface{}{
				"dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory containing the album art files",
				},
				"width":  integerProp("Desired canvas width in pixels"),
				"height": integerProp("Desired canvas height in pixels"),
			}, "dir", "width", "height"),
		},
		{
			Name:        "collage_resize",
			Description: "Change the canvas size of the current collage. With from_originals, tiles are first reloaded from their files so upscaling does not lose detail.",
			InputSchema: objectSchema(map[string]interface{}{
				"width":  integerProp("Desired canvas width in pixels"),
				"height": integerProp("Desired canvas height in pixels"),
				"from_originals": map[string]interface{}{
					"type":        "boolean",
					"description": "Reload full-resolution tiles from disk before resizing. Default false",
					"default":     false,
				},
			}, "width", "height"),
		},
		{
			Name:        "collage_info",
			Description: "Get the grid side, tile size and canvas size of the current collage.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Coordinates
		{
			Name:        "collage_cell_at",
			Description: "Get the grid cell (row, col) containing a canvas pixel. Pixels outside the canvas are an error.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": integerProp("Canvas X coordinate (0-based, left to right)"),
				"y": integerProp("Canvas Y coordinate (0-based, top to bottom)"),
			}, "x", "y"),
		},
		{
			Name:        "collage_tile_origin",
			Description: "Get the canvas pixel (x, y) of the top-left corner of a grid cell.",
			InputSchema: objectSchema(map[string]interface{}{
				"row": integerProp("Grid row (0-based)"),
				"col": integerProp("Grid column (0-based)"),
			}, "row", "col"),
		},

		// Editing
		{
			Name:        "collage_swap",
			Description: "Swap the tiles in two grid cells.",
			InputSchema: objectSchema(map[string]interface{}{
				"row1": integerProp("Row of the first cell"),
				"col1": integerProp("Column of the first cell"),
				"row2": integerProp("Row of the second cell"),
				"col2": integerProp("Column of the second cell"),
			}, "row1", "col1", "row2", "col2"),
		},
		{
			Name:        "collage_render",
			Description: "Render the current collage. Writes it to path (.png, .jpg, .jpeg or .bmp) when given, otherwise returns it as base64-encoded PNG.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Optional output file path",
				},
			}),
		},
	}
}
