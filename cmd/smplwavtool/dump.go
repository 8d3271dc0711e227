package main

import (
	"fmt"
	"io"

	"github.com/cueloop/smplwav/core"
	"github.com/cueloop/smplwav/wave"
)

// dumpLoopSamples prints the normalised (dequantized) sample data for every
// loop-region marker in root, one channel per line, space-separated. This
// exercises the core package's unpack/dequantize/deinterleave helpers, which
// wave itself never needs since it only moves bytes, not samples.
func dumpLoopSamples(w io.Writer, root *wave.Root) error {
	for _, m := range root.Markers {
		if !m.IsLoop() {
			continue
		}

		channels, err := loopChannels(root, m)
		if err != nil {
			return fmt.Errorf("smplwavtool: loop at %d: %w", m.Position, err)
		}

		fmt.Fprintf(w, "loop %d %d\n", m.Position, m.Length)
		for ch, samples := range channels {
			fmt.Fprintf(w, "  channel %d:", ch)
			for _, s := range samples {
				fmt.Fprintf(w, " %.6f", s)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

// loopChannels extracts and dequantizes the portion of root.Data covered by
// m, split into one slice per channel.
func loopChannels(root *wave.Root, m wave.Marker) ([][]float64, error) {
	blockAlign := int(root.Format.BlockAlign())
	channels := int(root.Format.Channels)

	start := int(m.Position) * blockAlign
	end := start + int(m.Length)*blockAlign
	if end > len(root.Data) {
		end = len(root.Data)
	}
	region := root.Data[start:end]

	var interleaved []float64
	switch root.Format.Kind {
	case wave.PCM16:
		interleaved = core.DequantizeInt16(core.UnpackInt16(region))
	case wave.PCM24:
		interleaved = core.DequantizeInt24(core.UnpackInt24(region))
	case wave.PCM32:
		interleaved = core.DequantizeInt32(core.UnpackInt32(region))
	case wave.Float32:
		interleaved = core.DequantizeFloat32(core.UnpackFloat32(region))
	default:
		return nil, fmt.Errorf("unsupported sample format %s", root.Format.Kind)
	}

	if channels <= 1 {
		return [][]float64{interleaved}, nil
	}

	return core.DeinterleaveSlices(interleaved, channels)
}
