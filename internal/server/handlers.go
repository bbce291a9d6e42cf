package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/flag-pfp-mcp/internal/avatar"
	"github.com/ironsheep/flag-pfp-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pfp_set_layer", "pfp_render").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.debugf("tools/call %s", params.Name)
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tools/call %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Updates or queries the renderer, loading images through the cache
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Renderer Inputs
	case "pfp_set_layer":
		return s.handlePfpSetLayer(args)
	case "pfp_set_setting":
		return s.handlePfpSetSetting(args)
	case "pfp_get_settings":
		return s.handlePfpGetSettings(args)

	// Rendering
	case "pfp_render":
		return s.handlePfpRender(args)
	case "pfp_render_layer":
		return s.handlePfpRenderLayer(args)
	case "pfp_sample_color":
		return s.handlePfpSampleColor(args)

	// Standalone Operations
	case "image_rounded_crop":
		return s.handleImageRoundedCrop(args)
	case "image_rounded_warp":
		return s.handleImageRoundedWarp(args)
	case "image_split_overlay":
		return s.handleImageSplitOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// size resolves optional width/height arguments against the canvas size.
func (s *Server) size(width, height int) (int, int) {
	if width == 0 {
		width = s.opts.CanvasWidth
	}
	if height == 0 {
		height = s.opts.CanvasHeight
	}
	return width, height
}

// checkUnit rejects fractions outside [0,1].
func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}

// imageResult is the response of every tool that produces an image.
type imageResult struct {
	*imaging.EncodedImage
	OutputPath string `json:"output_path,omitempty"`
}

func encodeResult(img *imaging.PixelImage, outputPath string) (*imageResult, error) {
	encoded, err := imaging.Encode(img)
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		if err := imaging.Save(img, outputPath); err != nil {
			return nil, err
		}
	}
	return &imageResult{EncodedImage: encoded, OutputPath: outputPath}, nil
}

// === Renderer Input Handlers ===

type pfpSetLayerArgs struct {
	Layer     string `json:"layer"`
	Path      string `json:"path"`
	Clear     bool   `json:"clear"`
	Smoothing *bool  `json:"smoothing"`
}

type layerResult struct {
	Layer  string `json:"layer"`
	Loaded bool   `json:"loaded"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (s *Server) handlePfpSetLayer(args json.RawMessage) (interface{}, error) {
	var a pfpSetLayerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tag, err := avatar.ParseTag(a.Layer)
	if err != nil {
		return nil, err
	}
	if !tag.IsLayerTag() {
		return nil, fmt.Errorf("%s is a setting, use pfp_set_setting", tag)
	}

	var img *imaging.PixelImage
	if !a.Clear {
		if a.Path == "" {
			return nil, errors.New("path is required unless clear is set")
		}
		// The photo blurs when scaled, flags keep hard edges.
		smoothing := tag == avatar.TagPfp
		if a.Smoothing != nil {
			smoothing = *a.Smoothing
		}
		// Decode first so a bad file leaves the renderer untouched.
		img, err = s.cache.Load(a.Path, smoothing, s.opts.CanvasWidth, s.opts.CanvasHeight)
		if err != nil {
			return nil, err
		}
	}

	switch tag {
	case avatar.TagPfp:
		s.renderer.SetPfp(img)
	case avatar.TagLeftFlag:
		s.renderer.SetLeftFlag(img)
	case avatar.TagRightFlag:
		s.renderer.SetRightFlag(img)
	}

	res := &layerResult{Layer: tag.String(), Loaded: img != nil}
	if img != nil {
		res.Width, res.Height = img.Width(), img.Height()
		s.debugf("loaded %s from %s (%dx%d)", tag, a.Path, res.Width, res.Height)
	}
	return res, nil
}

type pfpSetSettingArgs struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

func (s *Server) handlePfpSetSetting(args json.RawMessage) (interface{}, error) {
	var a pfpSetSettingArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tag, err := avatar.ParseTag(a.Name)
	if err != nil {
		return nil, err
	}
	if len(a.Value) == 0 {
		return nil, fmt.Errorf("value is required for %s", tag)
	}

	if tag == avatar.TagIsCropped {
		var cropped bool
		if err := json.Unmarshal(a.Value, &cropped); err != nil {
			return nil, fmt.Errorf("%s must be a boolean: %w", tag, err)
		}
		s.renderer.SetCropped(cropped)
		return s.renderer.Settings(), nil
	}

	var value float64
	if err := json.Unmarshal(a.Value, &value); err != nil {
		return nil, fmt.Errorf("%s must be a number: %w", tag, err)
	}
	switch tag {
	case avatar.TagRadius:
		if err := checkUnit(tag.String(), value); err != nil {
			return nil, err
		}
		s.renderer.SetRadius(value)
	case avatar.TagWarpStrength:
		if err := checkUnit(tag.String(), value); err != nil {
			return nil, err
		}
		s.renderer.SetWarpStrength(value)
	case avatar.TagAngle:
		s.renderer.SetAngle(value)
	default:
		return nil, fmt.Errorf("%s is a layer, use pfp_set_layer", tag)
	}
	return s.renderer.Settings(), nil
}

type settingsResult struct {
	Settings     avatar.Settings `json:"settings"`
	Layers       map[string]bool `json:"layers"`
	CanvasWidth  int             `json:"canvas_width"`
	CanvasHeight int             `json:"canvas_height"`
	Stats        avatar.Stats    `json:"stats"`
}

func (s *Server) handlePfpGetSettings(args json.RawMessage) (interface{}, error) {
	layers := make(map[string]bool)
	for _, tag := range []avatar.Tag{avatar.TagPfp, avatar.TagLeftFlag, avatar.TagRightFlag} {
		layers[tag.String()] = s.renderer.HasLayer(tag)
	}
	return &settingsResult{
		Settings:     s.renderer.Settings(),
		Layers:       layers,
		CanvasWidth:  s.opts.CanvasWidth,
		CanvasHeight: s.opts.CanvasHeight,
		Stats:        s.renderer.Stats(),
	}, nil
}

// === Rendering Handlers ===

type pfpRenderArgs struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path"`
}

type renderResult struct {
	*imageResult
	HasBackground bool `json:"has_background"`
	HasForeground bool `json:"has_foreground"`
	Empty         bool `json:"empty"`
}

func (s *Server) handlePfpRender(args json.RawMessage) (interface{}, error) {
	var a pfpRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	width, height := s.size(a.Width, a.Height)

	before := s.renderer.Stats()
	c, err := avatar.Compose(s.renderer, width, height)
	if err != nil {
		return nil, err
	}
	s.debugRender("pfp_render", width, height, before)

	img, err := encodeResult(c.Image, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &renderResult{
		imageResult:   img,
		HasBackground: c.HasBackground,
		HasForeground: c.HasForeground,
		Empty:         c.Empty(),
	}, nil
}

type pfpRenderLayerArgs struct {
	Layer      string `json:"layer"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path"`
}

type layerRenderResult struct {
	*imageResult
	Layer   string `json:"layer"`
	Present bool   `json:"present"`
}

func (s *Server) handlePfpRenderLayer(args json.RawMessage) (interface{}, error) {
	var a pfpRenderLayerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	width, height := s.size(a.Width, a.Height)

	var img *imaging.PixelImage
	var err error
	before := s.renderer.Stats()
	switch a.Layer {
	case avatar.LayerForeground.String():
		img, err = s.renderer.RenderForeground(width, height)
	case avatar.LayerBackground.String():
		img, err = s.renderer.RenderBackground(width, height)
	default:
		return nil, fmt.Errorf("unknown layer: %s", a.Layer)
	}
	if err != nil {
		return nil, err
	}
	s.debugRender("pfp_render_layer", width, height, before)

	res := &layerRenderResult{Layer: a.Layer, Present: img != nil}
	if img == nil {
		return res, nil
	}
	if res.imageResult, err = encodeResult(img, a.OutputPath); err != nil {
		return nil, err
	}
	return res, nil
}

type pfpSampleColorArgs struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

func (s *Server) handlePfpSampleColor(args json.RawMessage) (interface{}, error) {
	var a pfpSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	x, y, err := imaging.CheckedXY(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	width, height := s.size(a.Width, a.Height)

	before := s.renderer.Stats()
	c, err := avatar.Compose(s.renderer, width, height)
	if err != nil {
		return nil, err
	}
	s.debugRender("pfp_sample_color", width, height, before)
	return imaging.SampleColor(c.Image, x, y), nil
}

// debugRender logs whether each derived layer came from the cache or was
// rebuilt since before was taken.
func (s *Server) debugRender(tool string, width, height int, before avatar.Stats) {
	if !s.opts.Debug {
		return
	}
	after := s.renderer.Stats()
	s.debugf("%s %dx%d: foreground %s, background %s", tool, width, height,
		cacheOutcome(after.ForegroundHits-before.ForegroundHits, after.ForegroundRenders-before.ForegroundRenders),
		cacheOutcome(after.BackgroundHits-before.BackgroundHits, after.BackgroundRenders-before.BackgroundRenders))
}

func cacheOutcome(hits, renders int) string {
	switch {
	case hits > 0:
		return "cache hit"
	case renders > 0:
		return "cache miss"
	}
	return "none"
}

// === Standalone Operation Handlers ===

type imageRoundedCropArgs struct {
	Path       string  `json:"path"`
	Size       float64 `json:"size"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageRoundedCrop(args json.RawMessage) (interface{}, error) {
	var a imageRoundedCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := checkUnit("size", a.Size); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path, true, 0, 0)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.RoundedCrop(img, a.Size), a.OutputPath)
}

type imageRoundedWarpArgs struct {
	Path       string   `json:"path"`
	Strength   *float64 `json:"strength"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageRoundedWarp(args json.RawMessage) (interface{}, error) {
	var a imageRoundedWarpArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	strength := 1.0
	if a.Strength != nil {
		strength = *a.Strength
	}
	if err := checkUnit("strength", strength); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path, false, 0, 0)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.RoundedWarp(img, strength), a.OutputPath)
}

type imageSplitOverlayArgs struct {
	LeftPath   string  `json:"left_path"`
	RightPath  string  `json:"right_path"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Angle      float64 `json:"angle"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageSplitOverlay(args json.RawMessage) (interface{}, error) {
	var a imageSplitOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	width, height := s.size(a.Width, a.Height)

	left, err := s.cache.Load(a.LeftPath, false, 0, 0)
	if err != nil {
		return nil, err
	}
	right, err := s.cache.Load(a.RightPath, false, 0, 0)
	if err != nil {
		return nil, err
	}
	out, err := imaging.SplitImageOverlay(left, right, width, height, a.Angle)
	if err != nil {
		return nil, err
	}
	return encodeResult(out, a.OutputPath)
}
