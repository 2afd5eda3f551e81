package streamio

import (
	"bufio"
	"io"
)

// CharSequence is the char-sequence Kind: a decoded run of text, distinct
// from the language's native string Kind the way Java's CharSequence
// interface sits above its String class — most converters that produce
// text produce a CharSequence first, then a trivial char-sequence->string
// edge unwraps it.
type CharSequence string

// String returns the underlying text.
func (c CharSequence) String() string { return string(c) }

// Reader is the reader Kind: a character-level decoder layered over an
// input-stream, mirroring Java's InputStreamReader. This module does not
// implement arbitrary character sets itself (spec §1 "character-encoding
// tables ... are not defined"). It does not look at the encoding option:
// it reads the underlying bytes as they are, and ReadAll returns them as a
// CharSequence without validating them as UTF-8 or returning an
// EncodingError.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps an io.Reader as a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadAll drains the underlying stream into a single CharSequence.
func (r *Reader) ReadAll() (CharSequence, error) {
	data, err := io.ReadAll(r.br)
	if err != nil {
		return "", err
	}
	return CharSequence(data), nil
}

// Bufio exposes the underlying *bufio.Reader for callers needing
// line-oriented reads.
func (r *Reader) Bufio() *bufio.Reader { return r.br }
