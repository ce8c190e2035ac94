package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ArikGuitarik/album-art-collage/internal/pipeline"
	"github.com/anthonynsimon/bild/imgio"
	"go.uber.org/zap"
)

var (
	// errInvalidArgs marks tool arguments that are malformed or missing.
	errInvalidArgs = errors.New("invalid arguments")

	// errNoSession is returned by tools that need a collage before
	// collage_build was called.
	errNoSession = errors.New("no collage built; call collage_build first")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "collage_build", "collage_swap").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602; any other tool failure returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug("tool failed", zap.String("tool", params.Name), zap.Error(err))
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "collage_build":
		return s.handleBuild(args)
	case "collage_resize":
		return s.handleResize(args)
	case "collage_info":
		return s.handleInfo()
	case "collage_cell_at":
		return s.handleCellAt(args)
	case "collage_tile_origin":
		return s.handleTileOrigin(args)
	case "collage_swap":
		return s.handleSwap(args)
	case "collage_render":
		return s.handleRender(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Empty arguments decode to the zero
// value.
func decodeArgs[T any](args json.RawMessage) (T, error) {
	var a T
	if len(args) == 0 || string(args) == "null" {
		return a, nil
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return a, fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return a, nil
}

// required dereferences a mandatory integer argument.
func required(name string, v *int) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: missing %q", errInvalidArgs, name)
	}
	return *v, nil
}

// InfoResult describes the current collage.
type InfoResult struct {
	Side         int `json:"side"`
	Tiles        int `json:"tiles"`
	TileHeight   int `json:"tile_height"`
	TileWidth    int `json:"tile_width"`
	CanvasHeight int `json:"canvas_height"`
	CanvasWidth  int `json:"canvas_width"`
}

func (s *Server) info() *InfoResult {
	th, tw := s.session.TileShape()
	ch, cw := s.session.CanvasShape()
	return &InfoResult{
		Side:         s.session.Grid().Side(),
		Tiles:        s.session.Grid().Len(),
		TileHeight:   th,
		TileWidth:    tw,
		CanvasHeight: ch,
		CanvasWidth:  cw,
	}
}

// === Session Handlers ===

type buildArgs struct {
	Dir    string `json:"dir"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

func (s *Server) handleBuild(args json.RawMessage) (interface{}, error) {
	a, err := decodeArgs[buildArgs](args)
	if err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, fmt.Errorf("%w: missing %q", errInvalidArgs, "dir")
	}
	width, err := required("width", a.Width)
	if err != nil {
		return nil, err
	}
	height, err := required("height", a.Height)
	if err != nil {
		return nil, err
	}

	c, err := pipeline.Compose(context.Background(), a.Dir, height, width, s.log)
	if err != nil {
		return nil, err
	}
	s.session = c
	return s.info(), nil
}

type resizeArgs struct {
	Width         *int `json:"width"`
	Height        *int `json:"height"`
	FromOriginals bool `json:"from_originals"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	a, err := decodeArgs[resizeArgs](args)
	if err != nil {
		return nil, err
	}
	width, err := required("width", a.Width)
	if err != nil {
		return nil, err
	}
	height, err := required("height", a.Height)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d must be positive", errInvalidArgs, width, height)
	}

	if a.FromOriginals {
		for _, tile := range s.session.Grid().Elements() {
			if err := tile.ReloadOriginal(); err != nil {
				s.log.Warn("keeping resized tile", zap.String("path", tile.Source()), zap.Error(err))
			}
		}
	}
	if err := s.session.SetCanvasShape(height, width); err != nil {
		return nil, err
	}
	return s.info(), nil
}

func (s *Server) handleInfo() (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	return s.info(), nil
}

// === Coordinate Handlers ===

type pixelArgs struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type cellResult struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s *Server) handleCellAt(args json.RawMessage) (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	a, err := decodeArgs[pixelArgs](args)
	if err != nil {
		return nil, err
	}
	x, err := required("x", a.X)
	if err != nil {
		return nil, err
	}
	y, err := required("y", a.Y)
	if err != nil {
		return nil, err
	}

	row, col, err := s.session.GridCoordinates(x, y)
	if err != nil {
		return nil, err
	}
	return &cellResult{Row: row, Col: col}, nil
}

type cellArgs struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type pixelResult struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleTileOrigin(args json.RawMessage) (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	a, err := decodeArgs[cellArgs](args)
	if err != nil {
		return nil, err
	}
	row, err := required("row", a.Row)
	if err != nil {
		return nil, err
	}
	col, err := required("col", a.Col)
	if err != nil {
		return nil, err
	}

	x, y, err := s.session.TopLeftPixel(row, col)
	if err != nil {
		return nil, err
	}
	return &pixelResult{X: x, Y: y}, nil
}

// === Editing Handlers ===

type swapArgs struct {
	Row1 *int `json:"row1"`
	Col1 *int `json:"col1"`
	Row2 *int `json:"row2"`
	Col2 *int `json:"col2"`
}

func (s *Server) handleSwap(args json.RawMessage) (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	a, err := decodeArgs[swapArgs](args)
	if err != nil {
		return nil, err
	}
	var v [4]int
	for i, f := range []struct {
		name string
		p    *int
	}{{"row1", a.Row1}, {"col1", a.Col1}, {"row2", a.Row2}, {"col2", a.Col2}} {
		if v[i], err = required(f.name, f.p); err != nil {
			return nil, err
		}
	}

	if err := s.session.Grid().Swap(v[0], v[1], v[2], v[3]); err != nil {
		return nil, err
	}
	return map[string]interface{}{"swapped": []cellResult{{v[0], v[1]}, {v[2], v[3]}}}, nil
}

type renderArgs struct {
	Path string `json:"path"`
}

type renderResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Path     string `json:"path,omitempty"`
	ImageB64 string `json:"image_base64,omitempty"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	a, err := decodeArgs[renderArgs](args)
	if err != nil {
		return nil, err
	}

	img, err := s.session.Render()
	if err != nil {
		return nil, err
	}
	h, w := img.Shape()
	res := &renderResult{Width: w, Height: h}

	if a.Path != "" {
		if err := pipeline.Save(a.Path, img, s.quality); err != nil {
			return nil, err
		}
		res.Path = a.Path
		return res, nil
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img.ToNRGBA()); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	res.ImageB64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return res, nil
}
