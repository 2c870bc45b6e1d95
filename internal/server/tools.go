package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
}

// witnessProperties are the witness_generate arguments. Each name maps to
// the configuration key with underscores replaced by dashes.
func witnessProperties() map[string]interface{} {
	return map[string]interface{}{
		"input":               prop("string", "Absolute path to the source image"),
		"output":              prop("string", "Path the JSON witness is written to"),
		"preview":             prop("string", "Optional path for a PNG/JPEG rendering of the transformed image"),
		"family":              enumProp("Witness family (default: hex)", "raw", "hex"),
		"transform":           enumProp("Transformation to prove", "blur", "crop", "grayscale", "resize", "brightness", "contrast"),
		"resolution":          enumProp("Resolution tier of the source (crop size and metadata)", "SD", "HD", "FHD", "4K"),
		"from_resolution":     enumProp("Tier the source is expected to have for resize", "SD", "HD", "FHD", "4K"),
		"to_resolution":       enumProp("Target tier for resize", "SD", "HD", "FHD", "4K"),
		"factor":              prop("number", "Brightness or contrast factor (default: 1.5)"),
		"crop_x":              prop("integer", "Left edge of the crop"),
		"crop_y":              prop("integer", "Top edge of the crop"),
		"crop_width":          prop("integer", "Crop width (default: tier width)"),
		"crop_height":         prop("integer", "Crop height (default: tier height)"),
		"blur_region":         prop("string", "Blur region as 'start_row,start_col,height,width'; omit to blur the whole image"),
		"resize":              prop("string", "Pre-resize the raw blur input to WIDTHxHEIGHT"),
		"process_region":      prop("boolean", "Restrict raw grayscale output to the top-left region"),
		"region_height":       prop("integer", "Height of the processed region (default: 240)"),
		"region_width":        prop("integer", "Width of the processed region (default: 320)"),
		"resize_algorithm":    enumProp("Resize kernel (default depends on family)", "weighted-bilinear", "ratio-indexed"),
		"blur_algorithm":      enumProp("Blur kernel (default depends on family)", "border-excluding", "zero-padded"),
		"grayscale_algorithm": enumProp("Grayscale weights (default: thousandths)", "thousandths", "luma16"),
		"kernel_size":         prop("integer", "Odd box kernel size for zero-padded blur (default: 3)"),
		"kernel_weight":       prop("integer", "Normalization weight for zero-padded blur (default: kernel cells)"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "witness_generate",
			Description: "Apply one image transformation and write the JSON witness a proof circuit consumes. Returns the run id, output paths, document shape and any warnings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": witnessProperties(),
				"required":   []string{"input", "output", "transform"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width, height, channel depth and format of an image file, and the resolution tier it matches.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": prop("string", "Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hex_decode",
			Description: "Decode rows of packed hex words back into pixel values, optionally as BN254 scalar-field elements.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rows": map[string]interface{}{
						"type":        "array",
						"description": "Rows of 0x-prefixed hex words",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string"},
						},
					},
					"depth": map[string]interface{}{
						"type":        "integer",
						"description": "Channels per pixel: 1 for grayscale, 3 for RGB (default: 1)",
						"enum":        []int{1, 3},
					},
					"field_elements": prop("boolean", "Also return each word as a decimal field element"),
				},
				"required": []string{"rows"},
			},
		},
	}
}
