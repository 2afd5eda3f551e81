package byteconv

import (
	"errors"
	"io"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"no-path", &NoPathError{Src: Concrete("a"), Dst: Concrete("b")}},
		{"no-transfer", &NoTransferError{Src: Concrete("a"), Dst: Concrete("b")}},
		{"invariant", &InvariantError{Src: Concrete("a"), Dst: Concrete("b")}},
		{"options", &OptionsError{Code: ErrorOptions, Message: "bad options"}},
		{"encoding", &EncodingError{Encoding: "utf-16", Message: "nope"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.err.Error() == "" {
				t.Fatalf("expected non-empty message")
			}
		})
	}
}

func TestEncodingErrorUnwraps(t *testing.T) {
	wrapped := &EncodingError{Encoding: "utf-16", Message: "decode failed", Cause: io.ErrUnexpectedEOF}
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Fatalf("expected errors.Is to see through EncodingError to its cause")
	}
}
