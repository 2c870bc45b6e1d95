package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-witness/internal/config"
	"github.com/ironsheep/image-witness/internal/hexcodec"
	"github.com/ironsheep/image-witness/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "witness_generate").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if params.Name == "" {
		return s.errorResponse(req.ID, -32602, "Invalid params", "missing tool name")
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "witness_generate":
		return s.handleWitnessGenerate(ctx, args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "hex_decode":
		return s.handleHexDecode(args)
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

// === Witness Generation ===

// witnessViper layers the call's arguments over the server's base settings.
func (s *Server) witnessViper(args map[string]interface{}) (*viper.Viper, error) {
	known := witnessProperties()
	var unknown []string
	for name := range args {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown arguments: %s", strings.Join(unknown, ", "))
	}

	v := viper.New()
	config.SetDefaults(v)
	if s.base != nil {
		if err := v.MergeConfigMap(s.base.AllSettings()); err != nil {
			return nil, fmt.Errorf("merge base settings: %w", err)
		}
	}
	for name, val := range args {
		v.Set(strings.ReplaceAll(name, "_", "-"), val)
	}
	return v, nil
}

func (s *Server) handleWitnessGenerate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a map[string]interface{}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := s.witnessViper(a)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, cfg)
}

// === Image Information ===

type imageDimensionsArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	table := imaging.DefaultResolutions()
	if s.base != nil {
		var err error
		if table, err = config.Resolutions(s.base); err != nil {
			return nil, err
		}
	}
	return imaging.LoadImageInfo(s.cache, a.Path, table)
}

// === Hex Words ===

type hexDecodeArgs struct {
	Rows          [][]string `json:"rows"`
	Depth         int        `json:"depth"`
	FieldElements bool       `json:"field_elements"`
}

type hexDecodeResult struct {
	Height        int         `json:"height"`
	Width         int         `json:"width"`
	Depth         int         `json:"depth"`
	Pixels        interface{} `json:"pixels"`
	FieldElements [][]string  `json:"field_elements,omitempty"`
}

func (s *Server) handleHexDecode(args json.RawMessage) (interface{}, error) {
	a := hexDecodeArgs{Depth: 1}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Rows) == 0 {
		return nil, fmt.Errorf("rows is required")
	}

	b, err := hexcodec.Decode(a.Rows, a.Depth)
	if err != nil {
		return nil, err
	}
	res := &hexDecodeResult{Height: b.Height, Width: b.Width, Depth: b.Depth}
	if b.Depth == 1 {
		res.Pixels = b.GrayRows()
	} else {
		res.Pixels = b.RGBRows()
	}

	if a.FieldElements {
		res.FieldElements = make([][]string, len(a.Rows))
		for i, row := range a.Rows {
			elems, err := hexcodec.FieldElements(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			res.FieldElements[i] = lo.Map(elems, func(e fr.Element, _ int) string {
				return e.String()
			})
		}
	}
	return res, nil
}
