package bbdlz

import "errors"

// Package errors. All of them are terminal for the decode or encode call
// that raised them; no partial results are returned.
var (
	// ErrTruncated reports a token header or payload reaching past the end
	// of the compressed input before the terminator.
	ErrTruncated = errors.New("bbdlz: compressed stream ended prematurely")

	// ErrBackReference reports an LZ distance that points before the start
	// of the decoded output.
	ErrBackReference = errors.New("bbdlz: back reference exceeds decoded output")

	// ErrFieldOverflow reports a token field value that does not fit its
	// bit width in the wire format.
	ErrFieldOverflow = errors.New("bbdlz: token field exceeds its bit width")

	// ErrEarlyTerminator reports a zero-length raw token inside a token
	// sequence; the terminator may only end a stream.
	ErrEarlyTerminator = errors.New("bbdlz: zero-length raw token before end of stream")
)
