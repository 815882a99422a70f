package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgsExtractsFormatFlag(t *testing.T) {
	outputFormat = ""
	remaining := parseArgs([]string{"render", "--format", "json", "song.ng"})
	assert.Equal(t, []string{"render", "song.ng"}, remaining)
	assert.Equal(t, "json", outputFormat)
}

func TestParseArgsAcceptsEqualsForm(t *testing.T) {
	outputFormat = ""
	remaining := parseArgs([]string{"render", "-f=midi", "song.ng"})
	assert.Equal(t, []string{"render", "song.ng"}, remaining)
	assert.Equal(t, "midi", outputFormat)
}

func TestParseArgsDefaultsToText(t *testing.T) {
	outputFormat = ""
	t.Setenv("NOTEGRID_FORMAT", "")
	parseArgs([]string{"parse", "song.ng"})
	assert.Equal(t, "text", outputFormat)
}
