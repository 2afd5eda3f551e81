package byteconv

import "testing"

func freshRegistry() *Registry {
	return NewRegistry()
}

func TestPlannerIdentityPath(t *testing.T) {
	r := freshRegistry()
	p := NewPlanner(r)

	a := Concrete("planner-a")
	plan, err := p.FindPath(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 1 {
		t.Fatalf("expected singleton identity path, got %v", plan.Steps)
	}
}

func TestPlannerShortestPath(t *testing.T) {
	r := freshRegistry()
	a := Concrete("planner-a")
	b := Concrete("planner-b")
	c := Concrete("planner-c")
	d := Concrete("planner-d")

	noop := func(v any, _ Options) (any, error) { return v, nil }

	// a -> b -> c -> d (long route) and a -> d (direct, short route).
	r.RegisterConversion(a, b, noop)
	r.RegisterConversion(b, c, noop)
	r.RegisterConversion(c, d, noop)
	r.RegisterConversion(a, d, noop)

	p := NewPlanner(r)
	plan, err := p.FindPath(a, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 2 {
		t.Fatalf("expected shortest 1-hop path a->d, got %v", plan.Steps)
	}
}

func TestPlannerNoPath(t *testing.T) {
	r := freshRegistry()
	p := NewPlanner(r)

	a := Concrete("planner-isolated-a")
	b := Concrete("planner-isolated-b")

	_, err := p.FindPath(a, b)
	if err == nil {
		t.Fatalf("expected NoPathError")
	}
	if _, ok := err.(*NoPathError); !ok {
		t.Fatalf("expected *NoPathError, got %T", err)
	}
}

func TestPlannerMemoizesFailures(t *testing.T) {
	r := freshRegistry()
	p := NewPlanner(r)

	a := Concrete("planner-memo-a")
	b := Concrete("planner-memo-b")

	_, err1 := p.FindPath(a, b)
	_, err2 := p.FindPath(a, b)
	if err1 == nil || err2 == nil {
		t.Fatalf("expected both calls to fail")
	}
	if len(p.cache) != 1 {
		t.Fatalf("expected exactly one memoized entry, got %d", len(p.cache))
	}
}

func TestPlannerManyLifting(t *testing.T) {
	r := freshRegistry()
	a := Concrete("planner-lift-a")
	b := Concrete("planner-lift-b")
	noop := func(v any, _ Options) (any, error) { return v, nil }
	r.RegisterConversion(a, b, noop)

	p := NewPlanner(r)
	plan, err := p.FindPath(Many(a), Many(b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 2 {
		t.Fatalf("expected lifted 1-hop path, got %v", plan.Steps)
	}
}

func TestPlannerTerminatesOnCycle(t *testing.T) {
	r := freshRegistry()
	a := Concrete("planner-cycle-a")
	b := Concrete("planner-cycle-b")
	noop := func(v any, _ Options) (any, error) { return v, nil }
	r.RegisterConversion(a, b, noop)
	r.RegisterConversion(b, a, noop)

	p := NewPlanner(r)
	_, err := p.FindPath(a, Concrete("planner-cycle-unreachable"))
	if err == nil {
		t.Fatalf("expected NoPathError despite cyclic registry")
	}
}

func TestPlannerCapabilityGoal(t *testing.T) {
	r := freshRegistry()
	a := Concrete("planner-cap-a")
	impl := Concrete("planner-cap-impl")
	noop := func(v any, _ Options) (any, error) { return v, nil }
	r.RegisterConversion(a, impl, noop)
	RegisterCapability("planner-test-cap", impl)

	p := NewPlanner(r)
	plan, err := p.FindPath(a, CapabilityKind("planner-test-cap"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.Steps[len(plan.Steps)-1].Equal(impl) {
		t.Fatalf("expected path to terminate at implementing concrete kind, got %v", plan.Steps)
	}
}
