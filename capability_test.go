package byteconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityImplementingSet(t *testing.T) {
	name := "test-widget-source"
	concrete := Concrete("test-widget")

	cap := RegisterCapability(name, concrete)
	require.NotNil(t, cap)
	assert.True(t, cap.Implements(concrete))
	assert.False(t, cap.Implements(Concrete("something-else")))

	found, ok := LookupCapability(name)
	require.True(t, ok)
	assert.Same(t, cap, found)
}

func TestAssignableCapabilityExpansion(t *testing.T) {
	name := "test-widget-sink"
	concrete := Concrete("test-widget-impl")
	RegisterCapability(name, concrete)

	assert.True(t, Assignable(concrete, CapabilityKind(name)))
	assert.False(t, Assignable(Concrete("unrelated"), CapabilityKind(name)))
}

func TestValidDestinationsCapability(t *testing.T) {
	name := "test-widget-multi"
	a := Concrete("widget-a")
	b := Concrete("widget-b")
	RegisterCapability(name, a)
	RegisterCapability(name, b)

	dests := ValidDestinations(CapabilityKind(name))
	assert.Len(t, dests, 2)
	assert.Contains(t, dests, a)
	assert.Contains(t, dests, b)
}

func TestValidDestinationsMany(t *testing.T) {
	dests := ValidDestinations(Many(Concrete("x")))
	require.Len(t, dests, 1)
	inner, ok := dests[0].IsMany()
	require.True(t, ok)
	assert.Equal(t, "x", inner.String())
}
