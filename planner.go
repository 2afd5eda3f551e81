package byteconv

import "sync"

// Plan is a resolved conversion route: a sequence of Kinds beginning at the
// source and ending at a Kind satisfying the requested destination, where
// each consecutive pair is bridged by either a direct registered edge or
// its element-wise Many lifting (spec §4.C).
type Plan struct {
	Steps []Kind
}

// planKey is the memoization key: exact (src, dst) Kind pair as requested,
// not the resolved destination (spec §4.C "memoized by (src kind, dst
// kind) pair").
type planKey struct {
	src, dst string
}

// Planner finds shortest conversion routes over a Registry's direct edges,
// expanding capability destinations and lifting edges across Many (spec
// §4.C). Safe for concurrent use.
type Planner struct {
	registry *Registry

	mu    sync.RWMutex
	cache map[planKey]*Plan // nil entry means "no path", cached too
}

// NewPlanner returns a Planner backed by registry.
func NewPlanner(registry *Registry) *Planner {
	return &Planner{registry: registry, cache: make(map[planKey]*Plan)}
}

// FindPath returns the shortest Plan from src to dst, or a *NoPathError if
// none exists. Results are memoized per (src, dst) pair, including
// failures.
func (p *Planner) FindPath(src, dst Kind) (*Plan, error) {
	key := planKey{src: src.String(), dst: dst.String()}

	p.mu.RLock()
	if plan, ok := p.cache[key]; ok {
		p.mu.RUnlock()
		if plan == nil {
			_, many := src.IsMany()
			return nil, &NoPathError{Src: src, Dst: dst, WasMany: many}
		}
		return plan, nil
	}
	p.mu.RUnlock()

	plan := p.search(src, dst)

	p.mu.Lock()
	p.cache[key] = plan
	p.mu.Unlock()

	if plan == nil {
		_, many := src.IsMany()
		return nil, &NoPathError{Src: src, Dst: dst, WasMany: many}
	}
	return plan, nil
}

// search runs a breadth-first search from src over the direct-edge graph
// (expanded for Many lifting) until it reaches a node satisfying dst, or
// exhausts the reachable set.
func (p *Planner) search(src, dst Kind) *Plan {
	if isGoal(src, dst) {
		return &Plan{Steps: []Kind{src}}
	}

	visited := map[string]bool{src.String(): true}
	parent := map[string]string{}
	byKey := map[string]Kind{src.String(): src}

	queue := []Kind{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range p.neighbors(cur) {
			nk := next.String()
			if visited[nk] {
				continue
			}
			visited[nk] = true
			parent[nk] = cur.String()
			byKey[nk] = next

			if isGoal(next, dst) {
				return &Plan{Steps: reconstruct(parent, byKey, src.String(), nk)}
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// neighbors returns every Kind reachable from k by one direct registered
// edge. When k is Many(inner), this is the union of the implicit
// element-wise lifting (Many(d) for every d reachable from inner) and
// whatever is registered directly under the Many(inner) key itself — the
// non-lift edges of spec §4.F (a reducer like Many(byte-buffer)->byte-buffer,
// or a pipe bridge like Many(byte-buffer)->readable-channel) live there and
// would otherwise never be discovered.
func (p *Planner) neighbors(k Kind) []Kind {
	if inner, isMany := k.IsMany(); isMany {
		innerDests := p.registry.allDestinationsFrom(inner)
		out := make([]Kind, 0, len(innerDests))
		for _, d := range innerDests {
			out = append(out, Many(d))
		}
		return append(out, p.registry.allDestinationsFrom(k)...)
	}
	return p.registry.allDestinationsFrom(k)
}

// isGoal reports whether node satisfies a request for dst: concrete
// equality, capability implementation, or recursive Many agreement.
func isGoal(node, dst Kind) bool {
	if dInner, dMany := dst.IsMany(); dMany {
		nInner, nMany := node.IsMany()
		return nMany && isGoal(nInner, dInner)
	}
	if _, nMany := node.IsMany(); nMany {
		return false
	}
	if dst.IsCapability() {
		cap, ok := LookupCapability(dst.String())
		return ok && cap.Implements(node)
	}
	return node.Equal(dst)
}

func reconstruct(parent map[string]string, byKey map[string]Kind, srcKey, goalKey string) []Kind {
	var rev []Kind
	for k := goalKey; ; {
		rev = append(rev, byKey[k])
		if k == srcKey {
			break
		}
		k = parent[k]
	}
	steps := make([]Kind, len(rev))
	for i, k := range rev {
		steps[len(rev)-1-i] = k
	}
	return steps
}
