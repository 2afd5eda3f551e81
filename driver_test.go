package byteconv

import (
	"io"
	"testing"
)

func TestDriverIdentity(t *testing.T) {
	d := NewDriver(NewRegistry())
	plan := &Plan{Steps: []Kind{Concrete("x")}}

	out, err := d.Apply(plan, 42, NoOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 42 {
		t.Fatalf("identity plan should return input unchanged, got %v", out)
	}
}

func TestDriverAppliesChain(t *testing.T) {
	r := NewRegistry()
	a, b, c := Concrete("d-a"), Concrete("d-b"), Concrete("d-c")
	r.RegisterConversion(a, b, func(v any, _ Options) (any, error) { return v.(int) + 1, nil })
	r.RegisterConversion(b, c, func(v any, _ Options) (any, error) { return v.(int) * 10, nil })

	d := NewDriver(r)
	plan := &Plan{Steps: []Kind{a, b, c}}
	out, err := d.Apply(plan, 1, NoOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 20 {
		t.Fatalf("expected (1+1)*10=20, got %v", out)
	}
}

func TestDriverInvariantErrorOnMissingEdge(t *testing.T) {
	r := NewRegistry()
	a, b := Concrete("d-missing-a"), Concrete("d-missing-b")

	d := NewDriver(r)
	plan := &Plan{Steps: []Kind{a, b}}
	_, err := d.Apply(plan, 1, NoOptions())
	if _, ok := err.(*InvariantError); !ok {
		t.Fatalf("expected *InvariantError, got %T (%v)", err, err)
	}
}

func TestDriverLiftsManyLazily(t *testing.T) {
	r := NewRegistry()
	a, b := Concrete("d-lift-a"), Concrete("d-lift-b")

	var calls int
	r.RegisterConversion(a, b, func(v any, _ Options) (any, error) {
		calls++
		return v.(int) * 2, nil
	})

	d := NewDriver(r)
	plan := &Plan{Steps: []Kind{Many(a), Many(b)}}

	seq := NewSliceSeq([]any{1, 2, 3})
	out, err := d.Apply(plan, seq, NoOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("lifting must not force any element eagerly, got %d calls", calls)
	}

	result := out.(Seq)
	v, err := result.Next()
	if err != nil {
		t.Fatalf("unexpected error pulling first element: %v", err)
	}
	if v != 2 {
		t.Fatalf("expected 1*2=2, got %v", v)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one element forced so far, got %d", calls)
	}

	drained, err := Drain(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drained) != 2 || drained[0] != 4 || drained[1] != 6 {
		t.Fatalf("unexpected remaining elements: %v", drained)
	}

	if _, err := result.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after exhausting sequence, got %v", err)
	}
}

func TestDriverOptionsSchemaValidation(t *testing.T) {
	r := NewRegistry()
	a, b := Concrete("d-schema-a"), Concrete("d-schema-b")
	r.RegisterConversionSchema(a, b, func(v any, opts Options) (any, error) {
		return v, nil
	}, `{"type":"object","required":["mode"],"properties":{"mode":{"type":"string"}}}`)

	d := NewDriver(r)
	plan := &Plan{Steps: []Kind{a, b}}

	if _, err := d.Apply(plan, 1, NoOptions()); err == nil {
		t.Fatalf("expected OptionsError for missing required field")
	}

	_, err := d.Apply(plan, 1, NewOptions(map[string]any{"mode": "fast"}))
	if err != nil {
		t.Fatalf("unexpected error with valid options: %v", err)
	}
}
