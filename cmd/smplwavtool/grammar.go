package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cueloop/smplwav/wave"
)

// This file implements the textual metadata grammar: one command per line,
// each either adding/describing sampler metadata or setting an info tag.
// Strings are double-quoted with \", \\, \r, \n escapes, or the bare word
// null for an absent value. The grammar is:
//
//	loop <start> <duration> <name|null> <desc|null>
//	cue <position> <name|null> <desc|null>
//	smpl-pitch <u64|null>
//	info-XXXX <string|null>

// dumpMetadata writes the textual grammar describing root to w, in the same
// shape applyMetaLine accepts as input: info tags first, then the pitch
// line, then one loop/cue line per marker.
func dumpMetadata(w io.Writer, root *wave.Root) {
	for i := 0; i < 23; i++ {
		fourcc, _ := wave.InfoIndexToFourCC(i)
		if root.Info[i] == "" {
			continue
		}
		fmt.Fprintf(w, "info-%s ", fourcc.String())
		writeQuoted(w, &root.Info[i])
		fmt.Fprintln(w)
	}

	if root.Pitch.Present {
		fmt.Fprintf(w, "smpl-pitch %d\n", root.Pitch.Value)
	}

	for _, m := range root.Markers {
		if m.IsLoop() {
			fmt.Fprintf(w, "loop %d %d ", m.Position, m.Length)
		} else {
			fmt.Fprintf(w, "cue %d ", m.Position)
		}
		writeQuoted(w, optionalString(m.Name))
		fmt.Fprint(w, " ")
		writeQuoted(w, optionalString(m.Desc))
		fmt.Fprintln(w)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeQuoted(w io.Writer, s *string) {
	if s == nil {
		fmt.Fprint(w, "null")
		return
	}
	fmt.Fprint(w, `"`)
	for _, r := range *s {
		switch r {
		case '"':
			fmt.Fprint(w, `\"`)
		case '\\':
			fmt.Fprint(w, `\\`)
		case '\r':
			fmt.Fprint(w, `\r`)
		case '\n':
			fmt.Fprint(w, `\n`)
		default:
			fmt.Fprintf(w, "%c", r)
		}
	}
	fmt.Fprint(w, `"`)
}

// applyMetaLine parses and applies one line of the grammar to root.
func applyMetaLine(root *wave.Root, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(line, "info-"):
		return applyInfoLine(root, line)
	case strings.HasPrefix(line, "loop "):
		return applyLoopLine(root, line)
	case strings.HasPrefix(line, "cue "):
		return applyCueLine(root, line)
	case strings.HasPrefix(line, "smpl-pitch"):
		return applySmplPitchLine(root, line)
	default:
		return fmt.Errorf("smplwavtool: unrecognised metadata command: %q", line)
	}
}

func applyInfoLine(root *wave.Root, line string) error {
	fields := strings.SplitN(line, " ", 2)
	tag := strings.TrimPrefix(fields[0], "info-")
	if len(tag) != 4 {
		return fmt.Errorf("smplwavtool: malformed info tag %q", fields[0])
	}
	idx, ok := wave.InfoFourCCToIndex(wave.NewFourCC(tag))
	if !ok {
		return fmt.Errorf("smplwavtool: unrecognised info tag %q", tag)
	}

	rest := ""
	if len(fields) == 2 {
		rest = fields[1]
	}
	value, _, err := parseStringOrNull(rest)
	if err != nil {
		return err
	}
	if value == nil {
		root.Info[idx] = ""
	} else {
		root.Info[idx] = *value
	}
	return nil
}

func applySmplPitchLine(root *wave.Root, line string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "smpl-pitch"))
	if rest == "null" {
		root.Pitch = wave.PitchInfo{}
		return nil
	}
	v, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return fmt.Errorf("smplwavtool: invalid smpl-pitch value %q: %w", rest, err)
	}
	root.Pitch = wave.PitchInfo{Present: true, Value: v}
	return nil
}

func applyLoopLine(root *wave.Root, line string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "loop"))
	start, rest, err := parseUint(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: loop: %w", err)
	}
	duration, rest, err := parseUint(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: loop: %w", err)
	}
	if duration == 0 {
		return fmt.Errorf("smplwavtool: cannot add a loop of zero duration")
	}
	name, rest, err := parseStringOrNull(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: loop: %w", err)
	}
	desc, _, err := parseStringOrNull(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: loop: %w", err)
	}

	if start >= uint64(root.DataFrames) {
		return fmt.Errorf("smplwavtool: the start of the loop was beyond the end of the sample")
	}
	if start+duration > uint64(root.DataFrames) {
		return fmt.Errorf("smplwavtool: the loop duration went beyond the end of the sample")
	}
	if len(root.Markers) >= wave.MaxMarkers {
		return fmt.Errorf("smplwavtool: cannot add another loop - too much marker metadata")
	}

	root.Markers = append(root.Markers, wave.Marker{
		Position: uint32(start),
		Length:   uint32(duration),
		Name:     derefOr(name, ""),
		Desc:     derefOr(desc, ""),
	})
	return nil
}

func applyCueLine(root *wave.Root, line string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "cue"))
	pos, rest, err := parseUint(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: cue: %w", err)
	}
	name, rest, err := parseStringOrNull(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: cue: %w", err)
	}
	desc, _, err := parseStringOrNull(rest)
	if err != nil {
		return fmt.Errorf("smplwavtool: cue: %w", err)
	}

	if pos >= uint64(root.DataFrames) {
		return fmt.Errorf("smplwavtool: the cue marker position was beyond the end of the sample")
	}
	if len(root.Markers) >= wave.MaxMarkers {
		return fmt.Errorf("smplwavtool: cannot add another loop - too much marker metadata")
	}

	root.Markers = append(root.Markers, wave.Marker{
		Position: uint32(pos),
		Name:     derefOr(name, ""),
		Desc:     derefOr(desc, ""),
	})
	return nil
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func parseUint(s string) (uint64, string, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, fmt.Errorf("expected an integer")
	}
	v, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return 0, s, err
	}
	return v, s[i:], nil
}

// parseStringOrNull parses either the bare word null or a double-quoted
// string (with \", \\, \r, \n escapes) at the start of s, and returns the
// unconsumed remainder.
func parseStringOrNull(s string) (*string, string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "null") {
		return nil, s[4:], nil
	}
	if len(s) == 0 || s[0] != '"' {
		return nil, s, fmt.Errorf("expected a quoted string or null")
	}

	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			i++
			v := b.String()
			return &v, s[i:], nil
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return nil, s, fmt.Errorf("unterminated escape in string")
		}
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return nil, s, fmt.Errorf("invalid escape \\%c", s[i])
		}
		i++
	}
	return nil, s, fmt.Errorf("unterminated string")
}
