package viz

// OpKind enumerates the primitive operations the replay engine understands.
type OpKind string

const (
	OpSet     OpKind = "set"
	OpSwap    OpKind = "swap"
	OpCompare OpKind = "compare"
	OpAdvance OpKind = "advance"
	OpWindow  OpKind = "window"
	OpPush    OpKind = "push"
	OpPop     OpKind = "pop"
)

// Operation is one primitive transformation recorded against a container.
// Operations are pure: applying one yields a new container state and never
// mutates the prior state as observed by callers.
type Operation struct {
	Op      OpKind `json:"op"`
	Index   *int   `json:"index,omitempty"`
	Indices []int  `json:"indices,omitempty"`
	Value   any    `json:"value,omitempty"`
	Pointer string `json:"pointer,omitempty"`
}

// Snapshot is the container state after applying one operation during
// replay. Step is the 0-based position of the operation in the operation
// list, not the global step index.
type Snapshot struct {
	Step   int       `json:"step"`
	Values []any     `json:"values"`
	Op     Operation `json:"op"`
}

// Replay applies ops in list order against a copy of initial and returns
// one Snapshot per operation. The caller's container is never aliased or
// mutated.
//
// Mutation semantics are deliberately permissive: a set or swap whose index
// falls outside the container skips the mutation silently, and operation
// kinds with no container effect (compare, advance, window, unrecognized
// kinds) still emit a snapshot shell so consumers' index arithmetic stays
// stable. Replay never fails; a malformed operation degrades to a
// no-op snapshot.
func Replay(initial []any, ops []Operation) []Snapshot {
	values := make([]any, len(initial))
	copy(values, initial)

	snapshots := make([]Snapshot, 0, len(ops))
	for i, op := range ops {
		values = applyOp(values, op)

		snap := Snapshot{Step: i, Values: make([]any, len(values)), Op: op}
		copy(snap.Values, values)
		snapshots = append(snapshots, snap)
	}
	return snapshots
}

// applyOp applies a single operation to values, returning the (possibly
// resized) container. Out-of-range or underspecified operations leave the
// container untouched.
func applyOp(values []any, op Operation) []any {
	switch op.Op {
	case OpSet:
		if op.Index != nil && *op.Index >= 0 && *op.Index < len(values) {
			values[*op.Index] = op.Value
		}
	case OpSwap:
		if len(op.Indices) >= 2 {
			i, j := op.Indices[0], op.Indices[1]
			if i >= 0 && i < len(values) && j >= 0 && j < len(values) {
				values[i], values[j] = values[j], values[i]
			}
		}
	case OpPush:
		values = append(values, op.Value)
	case OpPop:
		if len(values) > 0 {
			values = values[:len(values)-1]
		}
	}
	// compare/advance/window and unknown kinds: snapshot shell only.
	return values
}
