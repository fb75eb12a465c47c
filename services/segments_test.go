package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `# Photosynthesis

Plants convert light into chemical energy. This lesson walks through the full process.

## Light-dependent reactions
Chlorophyll absorbs photons in the thylakoid membrane. Water is split and oxygen released.

## The Calvin cycle
Carbon dioxide is fixed into sugar using ATP and NADPH from the first stage.

## Limiting factors
Light intensity, CO2 concentration and temperature all cap the reaction rate.

## Why it matters
Nearly all food chains start with photosynthetic organisms.`

func TestParseSegments(t *testing.T) {
	segments := ParseSegments(sampleScript)

	require.Len(t, segments, 5)
	assert.Equal(t, "", segments[0].Heading)
	assert.Contains(t, segments[0].Body, "chemical energy")
	assert.Equal(t, "Light-dependent reactions", segments[1].Heading)
	assert.Contains(t, segments[1].Body, "thylakoid")
	assert.Equal(t, "Why it matters", segments[4].Heading)
}

func TestSliceFromReproducesSuffix(t *testing.T) {
	// Splitting at index i and re-joining must reproduce the suffix of the
	// script starting at the i-th heading, for every i.
	headings := []string{
		"## Light-dependent reactions",
		"## The Calvin cycle",
		"## Limiting factors",
		"## Why it matters",
	}

	assert.Equal(t, sampleScript, SliceFrom(sampleScript, 0))

	for i, heading := range headings {
		expected := sampleScript[strings.Index(sampleScript, heading):]
		assert.Equal(t, expected, SliceFrom(sampleScript, i+1), "segment index %d", i+1)
	}

	assert.Equal(t, "", SliceFrom(sampleScript, 5))
}

func TestSliceFromNeverIncludesCompletedSegments(t *testing.T) {
	for i := 1; i < 5; i++ {
		suffix := SliceFrom(sampleScript, i)
		segments := ParseSegments(sampleScript)
		for _, seg := range segments[1:i] {
			assert.NotContains(t, suffix, seg.Heading)
		}
	}
}

func TestSegmentCountWithoutHeadings(t *testing.T) {
	assert.Equal(t, 1, SegmentCount("just a plain paragraph with no headings"))
	assert.Equal(t, 5, SegmentCount(sampleScript))
}

func TestLeadingHeading(t *testing.T) {
	script := "## First\nalpha\n## Second\nbeta"
	require.Equal(t, 3, SegmentCount(script))
	assert.Equal(t, script, SliceFrom(script, 1))
	assert.Equal(t, "## Second\nbeta", SliceFrom(script, 2))
}

func TestKeyConcepts(t *testing.T) {
	concepts := KeyConcepts(sampleScript)
	assert.Equal(t, []string{
		"Light-dependent reactions",
		"The Calvin cycle",
		"Limiting factors",
		"Why it matters",
	}, concepts)
}

func TestKeyConceptsPlaceholderFallback(t *testing.T) {
	concepts := KeyConcepts("no headings in here at all")
	assert.Equal(t, []string{"Introduction", "Key concepts", "Applications"}, concepts)
}

func TestScriptTitle(t *testing.T) {
	assert.Equal(t, "Photosynthesis", ScriptTitle(sampleScript))
	assert.Equal(t, "", ScriptTitle("## Only a section heading\nbody"))
}
