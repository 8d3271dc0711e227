package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cueloop/smplwav/wave"
)

func TestDumpLoopSamples_MonoLoop(t *testing.T) {
	root := &wave.Root{
		Format:     wave.Format{Kind: wave.PCM16, SampleRate: 44100, Channels: 1, BitsPerSample: 16},
		DataFrames: 4,
		Data:       []byte{0, 0, 0x00, 0x40, 0xFF, 0x3F, 0, 0x80},
		Markers: []wave.Marker{
			{Position: 1, Length: 2, InSmpl: true},
		},
	}

	var sb strings.Builder
	require.NoError(t, dumpLoopSamples(&sb, root))

	out := sb.String()
	require.Contains(t, out, "loop 1 2")
	require.Contains(t, out, "channel 0:")
}

func TestDumpLoopSamples_SkipsCuePoints(t *testing.T) {
	root := &wave.Root{
		Format: wave.Format{Kind: wave.PCM16, SampleRate: 44100, Channels: 1, BitsPerSample: 16},
		Markers: []wave.Marker{
			{Position: 0, InCue: true},
		},
	}

	var sb strings.Builder
	require.NoError(t, dumpLoopSamples(&sb, root))
	require.Empty(t, sb.String())
}
