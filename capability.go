package byteconv

import "sync"

// Capability describes a behavioral contract (ByteSource, ByteSink,
// Closeable, ...) and tracks which concrete Kinds implement it (spec §3,
// §4.A valid_destinations).
type Capability struct {
	Kind         Kind
	implementing map[Kind]struct{}
}

// NewCapability declares a new capability with no implementing kinds yet.
func NewCapability(name string) *Capability {
	return &Capability{
		Kind:         CapabilityKind(name),
		implementing: make(map[Kind]struct{}),
	}
}

// Implement records that concrete implements this capability.
func (c *Capability) Implement(concrete Kind) *Capability {
	c.implementing[concrete] = struct{}{}
	return c
}

// Implements reports whether concrete has been registered as implementing
// this capability.
func (c *Capability) Implements(concrete Kind) bool {
	_, ok := c.implementing[concrete]
	return ok
}

// Implementing returns the set of concrete Kinds implementing this
// capability, in no particular order.
func (c *Capability) Implementing() []Kind {
	out := make([]Kind, 0, len(c.implementing))
	for k := range c.implementing {
		out = append(out, k)
	}
	return out
}

// capabilityTable is the process-wide map from capability name to its
// Capability record. Guarded by capabilityMu; effectively write-once
// during package init, read-heavy afterward (spec §5 "process-wide,
// effectively write-once").
var (
	capabilityMu    sync.RWMutex
	capabilityTable = make(map[string]*Capability)
)

// RegisterCapability declares (or looks up) a capability by name and
// records concrete as one of its implementing Kinds. Safe to call
// repeatedly for the same name from multiple packages' init functions.
func RegisterCapability(name string, concrete Kind) *Capability {
	capabilityMu.Lock()
	defer capabilityMu.Unlock()
	cap, ok := capabilityTable[name]
	if !ok {
		cap = NewCapability(name)
		capabilityTable[name] = cap
	}
	cap.Implement(concrete)
	return cap
}

// LookupCapability returns the Capability registered under name, if any.
func LookupCapability(name string) (*Capability, bool) {
	capabilityMu.RLock()
	defer capabilityMu.RUnlock()
	cap, ok := capabilityTable[name]
	return cap, ok
}

// Assignable implements assignable(a, b) from spec §4.A: concrete-to-
// concrete uses equality (this module has no subtyping relation between
// distinct concrete tags — every "A ≼ B for concrete A,B" case in the
// source corpus turns out to be "a concrete type implements capability
// B", which is handled by valid_destinations, not by Assignable);
// Many/Many recurses; a concrete Kind is assignable to a capability Kind
// iff it has been registered as implementing it.
func Assignable(a, b Kind) bool {
	if aInner, aMany := a.IsMany(); aMany {
		bInner, bMany := b.IsMany()
		return bMany && Assignable(aInner, bInner)
	}
	if _, bMany := b.IsMany(); bMany {
		return false
	}
	if b.IsCapability() {
		cap, ok := LookupCapability(b.String())
		return ok && cap.Implements(a)
	}
	return a.Equal(b)
}

// ValidDestinations implements valid_destinations(k) from spec §4.A: a
// concrete Kind maps to itself; a capability Kind expands to its
// implementing concrete Kinds; Many(K) lifts pointwise.
func ValidDestinations(k Kind) []Kind {
	if inner, isMany := k.IsMany(); isMany {
		out := make([]Kind, 0)
		for _, d := range ValidDestinations(inner) {
			out = append(out, Many(d))
		}
		return out
	}
	if k.IsCapability() {
		cap, ok := LookupCapability(k.String())
		if !ok {
			return nil
		}
		return cap.Implementing()
	}
	return []Kind{k}
}
