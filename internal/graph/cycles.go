package graph

import "github.com/swiftdeps/modscan/internal/types"

// DepsOf returns the resolved dependencies of a module, in resolution
// order (nil for a module with none).
type DepsOf func(types.ModuleID) []types.ModuleID

// DiagnoseCycle performs the iterative open/closed-stack DFS of spec.md
// §4.7 starting at root. It visits each edge at most twice and is linear in
// graph size. It returns the formatted chain of the first cycle found
// (e.g. "X.swiftmodule -> Y.swiftmodule -> X.swiftmodule") and true, or
// ("", false) if nothing reachable from root cycles back.
//
// This is deliberately not Tarjan's SCC algorithm: spec.md asks for one
// concrete, human-readable chain through the cycle, not the set of all
// strongly connected components.
func DiagnoseCycle(root types.ModuleID, depsOf DepsOf) (string, bool) {
	open := newOpenStack(root)
	closed := make(map[types.ModuleID]struct{})

	for len(open.items) > 0 {
		u := open.top()
		descended := false

		for _, v := range depsOf(u) {
			if _, done := closed[v]; done {
				continue
			}
			if !open.contains(v) {
				open.push(v)
				descended = true
				break
			}
			return formatChain(open.chainFrom(v)), true
		}

		if !descended {
			closed[u] = struct{}{}
			open.pop()
		}
	}

	return "", false
}

// openStack is the ordered open-set-as-stack from spec.md §4.7: membership
// testing (v ∈ open) and positional slicing (open[pos(v)…end]) both need to
// be cheap, which a plain []ModuleID with linear search would not give for
// large graphs.
type openStack struct {
	items []types.ModuleID
	pos   map[types.ModuleID]int
}

func newOpenStack(root types.ModuleID) *openStack {
	return &openStack{
		items: []types.ModuleID{root},
		pos:   map[types.ModuleID]int{root: 0},
	}
}

func (s *openStack) top() types.ModuleID {
	return s.items[len(s.items)-1]
}

func (s *openStack) push(id types.ModuleID) {
	s.pos[id] = len(s.items)
	s.items = append(s.items, id)
}

func (s *openStack) pop() {
	last := s.items[len(s.items)-1]
	delete(s.pos, last)
	s.items = s.items[:len(s.items)-1]
}

func (s *openStack) contains(id types.ModuleID) bool {
	_, ok := s.pos[id]
	return ok
}

// chainFrom returns open[pos(v)…end] followed by v itself, closing the loop.
func (s *openStack) chainFrom(v types.ModuleID) []types.ModuleID {
	start := s.pos[v]
	chain := make([]types.ModuleID, 0, len(s.items)-start+1)
	chain = append(chain, s.items[start:]...)
	chain = append(chain, v)
	return chain
}

// formatChain renders a cycle chain as "name.ext -> name.ext -> ... -> name.ext".
func formatChain(chain []types.ModuleID) string {
	s := ""
	for i, id := range chain {
		if i > 0 {
			s += " -> "
		}
		s += id.Name + id.Kind.FileExtension()
	}
	return s
}
