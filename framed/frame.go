// Package framed populates the specialized transfer tier (spec §4.E step
// 2) with a FramedConn Kind: a length-prefixed, checksummed chunk codec
// over any io.ReadWriteCloser, grounded in the teacher's own wire-framing
// code (SPEC_FULL.md PART III "Framed transfer fast path").
package framed

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
)

// FrameType discriminates a framed chunk from the end-of-stream marker.
type FrameType uint8

const (
	FrameChunk FrameType = 1
	FrameEnd   FrameType = 2
)

// frameHeaderSize is type(1) + length(4) + checksum(4).
const frameHeaderSize = 1 + 4 + 4

// ComputeChecksum is the FNV-1a checksum covering a chunk's payload.
func ComputeChecksum(payload []byte) uint32 {
	h := fnv.New32a()
	h.Write(payload)
	return h.Sum32()
}

// VerifyChunkChecksum reports whether payload matches the checksum
// carried alongside it in a frame.
func VerifyChunkChecksum(payload []byte, checksum uint32) bool {
	return ComputeChecksum(payload) == checksum
}

// WriteFrame writes one length-prefixed, checksummed chunk frame.
func WriteFrame(w io.Writer, typ FrameType, payload []byte) error {
	header := make([]byte, frameHeaderSize)
	header[0] = byte(typ)
	binary.BigEndian.PutUint32(header[1:5], uint32(len(payload)))
	binary.BigEndian.PutUint32(header[5:9], ComputeChecksum(payload))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("framed: write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("framed: write payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one frame, verifying its checksum. It returns io.EOF
// only when the peer closed the connection before any header bytes
// arrived; a truncated header/payload is reported as an error, never a
// silent EOF, so the caller cannot mistake a dropped connection for a
// clean end-of-stream.
func ReadFrame(r io.Reader) (FrameType, []byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("framed: read header: %w", err)
	}
	typ := FrameType(header[0])
	length := binary.BigEndian.Uint32(header[1:5])
	checksum := binary.BigEndian.Uint32(header[5:9])

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, fmt.Errorf("framed: read payload: %w", err)
		}
	}
	if !VerifyChunkChecksum(payload, checksum) {
		return 0, nil, fmt.Errorf("framed: checksum mismatch (%d bytes)", length)
	}
	return typ, payload, nil
}
