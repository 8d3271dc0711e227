// Package wave reads, reconciles, and writes the metadata portion of
// sampler-oriented WAVE audio files: the `fmt `, `data`, `cue `, `smpl`,
// `LIST/adtl`, `LIST/INFO`, and `fact` chunks of a RIFF/WAVE container.
//
// The central operation is Mount, which walks a byte slice holding a
// complete WAVE file and produces a Root describing its format, its audio
// payload, and a single reconciled marker list built from whatever subset of
// `cue `/`smpl`/`LIST/adtl` the file actually contains. Serialise performs
// the inverse transformation.
package wave

import "errors"

// MaxUnknownChunks bounds the pass-through list populated when
// MountPreserveUnknown is set.
const MaxUnknownChunks = 32

// UnknownChunk is a chunk Mount did not recognise, preserved verbatim so
// Serialise can write it back out. Payload aliases the input buffer.
type UnknownChunk struct {
	ID      FourCC
	Payload []byte
}

// Root is the fully reconciled, in-memory representation of a WAVE file's
// metadata and audio payload.
//
// On a freshly mounted Root, Data and every UnknownChunk's Payload alias the
// buffer passed to Mount directly (Marker Name/Desc and Info strings are
// copies); the buffer must outlive Root and must not be mutated or reused as
// the destination of a Serialise call involving this Root.
type Root struct {
	Format     Format
	Info       Info
	Pitch      PitchInfo
	Markers    []Marker
	DataFrames uint32
	Data       []byte
	Unknown    []UnknownChunk
}

// MountOptions is a bitmask of Mount behaviour flags.
type MountOptions uint32

const (
	// MountReset drops all known non-essential chunks on load: the mounted
	// Root carries the format and audio payload only, with no markers, no
	// info, and no pitch, regardless of what the file actually contains.
	MountReset MountOptions = 1 << iota
	// MountPreserveUnknown copies unrecognised chunks into Root.Unknown
	// instead of silently discarding them.
	MountPreserveUnknown
	// MountPreferSmplLoops resolves a smpl/cue loop conflict by discarding
	// the cue-only loops. Mutually exclusive with MountPreferCueLoops.
	MountPreferSmplLoops
	// MountPreferCueLoops resolves a smpl/cue loop conflict by discarding
	// the smpl-only loops. Mutually exclusive with MountPreferSmplLoops.
	MountPreferCueLoops
)

// Warnings is a bitmask of non-fatal conditions encountered while mounting a
// file. A non-zero Warnings value does not indicate failure.
type Warnings uint32

const (
	// WarnFileTruncation is set when a chunk's declared size ran past the
	// end of the input buffer and was clipped to what remained.
	WarnFileTruncation Warnings = 1 << (iota + 8)
	// WarnAdtlUnterminatedStrings is set when a labl/note entry lacked a NUL
	// terminator and was skipped.
	WarnAdtlUnterminatedStrings
	// WarnInfoUnterminatedStrings is set when a LIST/INFO entry lacked a NUL
	// terminator and was skipped.
	WarnInfoUnterminatedStrings
	// WarnSmplCueLoopConflictsResolved is set when a smpl/cue loop conflict
	// was found and resolved via a caller preference flag rather than
	// failing with ConflictError.
	WarnSmplCueLoopConflictsResolved
)

// Mount error codes. These correspond 1:1 to the numbered error codes of the
// format this package implements; see each variable's doc comment for the
// condition it reports.
var (
	// ErrNotAWave is returned when the input isn't a well-formed RIFF/WAVE
	// container, or is missing a required `fmt ` or `data` chunk.
	ErrNotAWave = errors.New("wave: input is not a RIFF/WAVE file, or is missing fmt/data")
	// ErrDataInvalid is returned when the data chunk's size is not a
	// multiple of the format's block alignment.
	ErrDataInvalid = errors.New("wave: data chunk size is not a multiple of block align")
	// ErrTooManyChunks is returned when the number of unrecognised chunks
	// exceeds MaxUnknownChunks while MountPreserveUnknown is set.
	ErrTooManyChunks = errors.New("wave: too many unrecognised chunks to preserve")
	// ErrDuplicateChunks is returned when a required or once-only chunk
	// (fmt, data, fact, cue, smpl, LIST/adtl, LIST/INFO) appears more than
	// once.
	ErrDuplicateChunks = errors.New("wave: a chunk that may appear only once appears more than once")
	// ErrTooManyMarkers is returned when reconciling cue/smpl/adtl content
	// would need more than MaxMarkers markers.
	ErrTooManyMarkers = errors.New("wave: more than MaxMarkers distinct markers")
)

// ErrSerialiseFailure is returned by Serialise when any chunk size, or the
// total output size, would exceed 2^32-1 bytes.
var ErrSerialiseFailure = errors.New("wave: output would exceed the 32-bit RIFF size limit")

// ErrInvalidOptions is returned by Mount when MountPreferSmplLoops and
// MountPreferCueLoops are both set; the two are mutually exclusive.
var ErrInvalidOptions = errors.New("wave: MountPreferSmplLoops and MountPreferCueLoops are mutually exclusive")
