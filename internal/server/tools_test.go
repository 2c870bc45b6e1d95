package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-witness/internal/config"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	require.FailNow(t, "tool not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	names := make([]string, 0, 3)
	for _, tool := range GetToolDefinitions() {
		names = append(names, tool.Name)
	}

	assert.ElementsMatch(t, []string{
		"witness_generate",
		"image_dimensions",
		"hex_decode",
	}, names)
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)
			assert.Equal(t, "object", tool.InputSchema["type"])

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			require.True(t, ok, "InputSchema properties missing")
			require.NotEmpty(t, props)

			required, ok := tool.InputSchema["required"].([]string)
			require.True(t, ok, "'required' should be a string slice")
			for _, r := range required {
				assert.Contains(t, props, r, "required parameter has no property")
			}
		})
	}
}

func TestToolDefinitions_WitnessArgumentsMatchConfigKeys(t *testing.T) {
	keys := map[string]bool{}
	for _, k := range []string{
		config.KeyInput, config.KeyOutput, config.KeyPreview, config.KeyFamily,
		config.KeyTransform, config.KeyResolution, config.KeyFromResolution,
		config.KeyToResolution, config.KeyFactor, config.KeyCropX, config.KeyCropY,
		config.KeyCropWidth, config.KeyCropHeight, config.KeyBlurRegion, config.KeyResize,
		config.KeyProcessRegion, config.KeyRegionHeight, config.KeyRegionWidth,
		config.KeyResizeAlgorithm, config.KeyBlurAlgorithm, config.KeyGrayscaleAlgorithm,
		config.KeyKernelSize, config.KeyKernelWeight,
	} {
		keys[k] = true
	}

	props := toolByName(t, "witness_generate").InputSchema["properties"].(map[string]interface{})
	for name := range props {
		assert.NotContains(t, name, "-", "arguments use underscores")
		assert.True(t, keys[strings.ReplaceAll(name, "_", "-")], "argument %q has no configuration key", name)
	}
	assert.Len(t, props, len(keys))
}

func TestToolDefinitions_HexDecodeRequiresRows(t *testing.T) {
	required := toolByName(t, "hex_decode").InputSchema["required"].([]string)
	assert.Equal(t, []string{"rows"}, required)
}
