package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rawMaterial = `The water cycle describes how water moves through the atmosphere and back to earth.

Evaporation happens when the sun heats surface water and turns it into vapor. Lakes, rivers and oceans all contribute.

Condensation forms clouds as vapor cools at altitude and gathers around dust particles.

Precipitation returns water to the ground as rain, snow or hail once droplets grow heavy enough.`

func TestFallbackScriptStructure(t *testing.T) {
	script := FallbackLessonScript(rawMaterial, "The Water Cycle")

	assert.True(t, strings.HasPrefix(script, "# The Water Cycle\n"))
	assert.Contains(t, script, "\n## ")
	assert.GreaterOrEqual(t, SegmentCount(script), 2, "at least an introduction and one concept section")

	// Introduction is the content before the first heading
	segments := ParseSegments(script)
	assert.Contains(t, segments[0].Body, "water cycle describes")
}

func TestFallbackScriptDerivesTitle(t *testing.T) {
	script := FallbackLessonScript(rawMaterial, "")
	assert.True(t, strings.HasPrefix(script, "# "))
	assert.NotEqual(t, "", ScriptTitle(script))
}

func TestFallbackScriptSingleChunkInput(t *testing.T) {
	script := FallbackLessonScript("Gravity pulls objects together", "Gravity")

	// Even a single-sentence input yields an introduction and one section
	assert.True(t, strings.HasPrefix(script, "# Gravity\n"))
	assert.Equal(t, 2, SegmentCount(script))
}

func TestGenerateScriptUsesFallbackWhenUnconfigured(t *testing.T) {
	provider := &AnthropicProvider{APIKey: "", Model: "claude-3-5-sonnet-20241022"}

	script := GenerateLessonScript(provider, rawMaterial, "The Water Cycle")
	assert.Contains(t, script, "## ")
	assert.Equal(t, "The Water Cycle", ScriptTitle(script))
}

func TestGenerateScriptUsesFallbackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: assert.AnError}

	script := GenerateLessonScript(provider, rawMaterial, "The Water Cycle")
	assert.Contains(t, script, "## ")
}
