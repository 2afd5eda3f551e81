package framed

// Limits is the max frame / max chunk record of a FramedConn. MaxChunkSize
// caps the payload of each frame FramedConn.SendBytes writes; MaxFrameSize
// is carried and negotiated but not checked by ReadFrame, TakeBytes or the
// framed transfer.
type Limits struct {
	MaxFrameSize int
	MaxChunkSize int
}

// DefaultLimits is a conservative default: 1 MiB frames, 64 KiB chunks.
func DefaultLimits() Limits {
	return Limits{MaxFrameSize: 1 << 20, MaxChunkSize: 64 << 10}
}

// NegotiateLimits returns the pointwise minimum of a and b — the safe
// bound either side is guaranteed able to honor, matching the teacher's
// own negotiation semantics minus the wire handshake that originally
// carried it.
func NegotiateLimits(a, b Limits) Limits {
	return Limits{
		MaxFrameSize: minInt(a.MaxFrameSize, b.MaxFrameSize),
		MaxChunkSize: minInt(a.MaxChunkSize, b.MaxChunkSize),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
