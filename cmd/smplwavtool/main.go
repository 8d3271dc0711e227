// Command smplwavtool mounts a sampler-oriented WAVE file, optionally edits
// its metadata via a line-based grammar read from stdin or --set flags, and
// writes the result back out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/cueloop/smplwav/filemap"
	"github.com/cueloop/smplwav/wave"
)

type setFlags []string

func (s *setFlags) String() string { return fmt.Sprint([]string(*s)) }
func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		reset               = flag.Bool("reset", false, "drop all known non-essential chunks on load")
		preserveUnknown     = flag.Bool("preserve-unknown-chunks", false, "preserve chunks this tool doesn't recognise")
		preferSmplLoops     = flag.Bool("prefer-smpl-loops", false, "resolve smpl/cue loop conflicts in favour of the smpl chunk")
		preferCueLoops      = flag.Bool("prefer-cue-loops", false, "resolve smpl/cue loop conflicts in favour of the cue chunk")
		stripEventMetadata  = flag.Bool("strip-event-metadata", false, "remove marker names and descriptions before writing output")
		writeCueLoops       = flag.Bool("write-cue-loops", false, "additionally describe loop markers in the cue/adtl chunks")
		outputMetadata      = flag.Bool("output-metadata", false, "print the file's metadata to stdout in the tool's text grammar")
		inputMetadata       = flag.Bool("input-metadata", false, "read metadata edits from stdin in the tool's text grammar")
		dumpLoopSamplesFlag = flag.Bool("dump-loop-samples", false, "print normalised sample data for every loop region to stdout")
		output              = flag.String("output", "", "output file path")
		outputInplace       = flag.Bool("output-inplace", false, "write output back to the input file")
	)
	var setItems setFlags
	flag.Var(&setItems, "set", "apply one metadata grammar line directly, e.g. --set 'info-ICMT \"a comment\"'")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: smplwavtool [flags] <input.wav>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputFilename := flag.Arg(0)

	if *output != "" && *outputInplace {
		fmt.Fprintln(os.Stderr, "smplwavtool: --output cannot be specified with --output-inplace")
		os.Exit(2)
	}
	outputFilename := *output
	if *outputInplace {
		outputFilename = inputFilename
	}

	var opts wave.MountOptions
	if *reset {
		opts |= wave.MountReset
	}
	if *preserveUnknown {
		opts |= wave.MountPreserveUnknown
	}
	if *preferSmplLoops {
		opts |= wave.MountPreferSmplLoops
	}
	if *preferCueLoops {
		opts |= wave.MountPreferCueLoops
	}

	if err := run(runConfig{
		inputFilename:      inputFilename,
		outputFilename:     outputFilename,
		mountOptions:       opts,
		stripEventMetadata: *stripEventMetadata,
		writeCueLoops:      *writeCueLoops,
		outputMetadata:     *outputMetadata,
		inputMetadata:      *inputMetadata,
		dumpLoopSamples:    *dumpLoopSamplesFlag,
		setItems:           setItems,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "smplwavtool: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	inputFilename      string
	outputFilename     string
	mountOptions       wave.MountOptions
	stripEventMetadata bool
	writeCueLoops      bool
	outputMetadata     bool
	inputMetadata      bool
	dumpLoopSamples    bool
	setItems           []string
}

func run(cfg runConfig) error {
	f, err := filemap.Open(cfg.inputFilename)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", cfg.inputFilename, err)
	}
	defer f.Close()

	root, _, err := wave.Mount(f.Bytes(), cfg.mountOptions)
	if err != nil {
		if conflict, ok := err.(*wave.ConflictError); ok {
			printConflict(os.Stderr, cfg.inputFilename, conflict)
			return fmt.Errorf("%s has conflicting loop metadata; rerun with --prefer-smpl-loops or --prefer-cue-loops", cfg.inputFilename)
		}
		return fmt.Errorf("failed to load %s: %w", cfg.inputFilename, err)
	}

	if cfg.stripEventMetadata {
		for i := range root.Markers {
			root.Markers[i].Name = ""
			root.Markers[i].Desc = ""
		}
	}

	if cfg.inputMetadata {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := applyMetaLine(root, scanner.Text()); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("error reading metadata from stdin: %w", err)
		}
	}

	for _, item := range cfg.setItems {
		if err := applyMetaLine(root, item); err != nil {
			return err
		}
	}

	wave.SortMarkers(root.Markers)

	if cfg.outputMetadata {
		dumpMetadata(os.Stdout, root)
	}

	if cfg.dumpLoopSamples {
		if err := dumpLoopSamples(os.Stdout, root); err != nil {
			return err
		}
	}

	if cfg.outputFilename == "" {
		return nil
	}

	size, err := wave.Serialise(root, nil, cfg.writeCueLoops)
	if err != nil {
		return fmt.Errorf("cannot serialise the updated waveform: %w", err)
	}
	out := make([]byte, size)
	if _, err := wave.Serialise(root, out, cfg.writeCueLoops); err != nil {
		return fmt.Errorf("cannot serialise the updated waveform: %w", err)
	}

	if err := os.WriteFile(cfg.outputFilename, out, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", cfg.outputFilename, err)
	}
	return nil
}

// printConflict prints the three-way common/sampler-only/cue-only loop
// breakdown for a file that failed to mount due to SMPL_CUE_LOOP_CONFLICTS.
func printConflict(w *os.File, filename string, conflict *wave.ConflictError) {
	fmt.Fprintf(w, "%s has sampler loops that conflict with loops in the cue chunk. you must specify --prefer-smpl-loops or --prefer-cue-loops to load it. here are the details:\n", filename)

	fmt.Fprintln(w, "common loops (position/duration):")
	for _, m := range conflict.Markers {
		if m.InCue && m.InSmpl && m.IsLoop() {
			fmt.Fprintf(w, "  %d/%d\n", m.Position, m.Length)
		}
	}
	fmt.Fprintln(w, "sampler loops (position/duration):")
	for _, m := range conflict.Markers {
		if !m.InCue && m.InSmpl && m.IsLoop() {
			fmt.Fprintf(w, "  %d/%d\n", m.Position, m.Length)
		}
	}
	fmt.Fprintln(w, "cue loops (position/duration):")
	for _, m := range conflict.Markers {
		if m.InCue && !m.InSmpl && m.IsLoop() {
			fmt.Fprintf(w, "  %d/%d\n", m.Position, m.Length)
		}
	}
}
