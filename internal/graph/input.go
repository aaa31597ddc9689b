package graph

import (
	"sync"

	"github.com/vk/compgraph/internal/timeline"
	"github.com/vk/compgraph/internal/value"
)

// noCachedTime is the cache-invalidation sentinel. Valid request times are
// never negative, so a negative last-resolved time can never match one.
var noCachedTime = value.Rat{Num: -1, Den: 1}

// TimeMin and TimeMax bound the spans reported by value-change
// notifications when a change affects every time (e.g. setting the static
// value).
var (
	TimeMin = value.Rat{Num: -1 << 31, Den: 1}
	TimeMax = value.Rat{Num: 1 << 31, Den: 1}
)

// Input is a parameter that takes either user-authored data or data from a
// connected output. It declares an ordered set of accepted data types; any
// output whose type is compatible with one of them may connect.
type Input struct {
	param

	accepts   []value.DataType
	multi     bool
	dependent bool

	// mu guards the authored value state and the resolution cache. It is
	// held only for in-memory reads and writes, never across a node
	// computation.
	mu         sync.Mutex
	keyframing bool
	static     value.Value
	tl         timeline.Timeline
	hasMin     bool
	hasMax     bool
	min        value.Value
	max        value.Value

	cacheEnabled bool
	cachedTime   value.Rat
	cachedValue  value.Value
	cacheGen     uint64
}

// NewInput creates an input accepting the given types. The first type is
// the input's primary data type. Inputs are dependent and value-caching by
// default, matching the common case of a parameter the node's computation
// reads directly.
func NewInput(id string, accepts ...value.DataType) *Input {
	return &Input{
		param:        param{id: id},
		accepts:      append([]value.DataType(nil), accepts...),
		dependent:    true,
		cacheEnabled: true,
		cachedTime:   noCachedTime,
	}
}

func (in *Input) IsInput() bool { return true }

// DataType returns the input's primary (first accepted) type.
func (in *Input) DataType() value.DataType {
	if len(in.accepts) == 0 {
		return value.None
	}
	return in.accepts[0]
}

// Name returns the display name or the primary type's default label.
func (in *Input) Name() string {
	if in.name != "" {
		return in.name
	}
	return in.DataType().Label()
}

// AcceptedTypes returns the ordered accepted-type set. The slice is a copy.
func (in *Input) AcceptedTypes() []value.DataType {
	return append([]value.DataType(nil), in.accepts...)
}

// Accepts reports whether the input's accepted-type set is compatible with
// the given output type.
func (in *Input) Accepts(t value.DataType) bool {
	return value.CompatibleAny(t, in.accepts)
}

// Edges returns a snapshot of the edges currently connected to this input.
func (in *Input) Edges() []*Edge { return in.resolveEdges() }

// Connected reports whether at least one edge feeds this input.
func (in *Input) Connected() bool { return len(in.edgeHandles()) > 0 }

// AllowsMultiple reports whether the input opts into holding several edges
// at once. Single connection is the default.
func (in *Input) AllowsMultiple() bool { return in.multi }

// SetAllowsMultiple opts the input into (or out of) multi-connection.
// Intended to be called while declaring the node's parameters.
func (in *Input) SetAllowsMultiple(multi bool) { in.multi = multi }

// Dependent reports whether changes to this input force re-evaluation of
// the owning node.
func (in *Input) Dependent() bool { return in.dependent }

// SetDependent sets the dependent flag.
func (in *Input) SetDependent(d bool) { in.dependent = d }

// Keyframing reports whether keyframing is enabled. While disabled, the
// single static value is authoritative and the timeline is ignored.
func (in *Input) Keyframing() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keyframing
}

// SetKeyframing toggles keyframing for the input.
func (in *Input) SetKeyframing(k bool) {
	in.mu.Lock()
	in.keyframing = k
	in.invalidateLocked()
	in.mu.Unlock()
	in.notifyChanged(TimeMin, TimeMax)
}

// Value returns the static value authored on the input.
func (in *Input) Value() value.Value {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.static
}

// SetValue sets the static value, clamping numeric values into the
// configured bounds. The value is only consulted while the input is
// unconnected and not keyframing.
func (in *Input) SetValue(v value.Value) {
	in.mu.Lock()
	in.static = in.clamp(v)
	in.invalidateLocked()
	in.mu.Unlock()
	in.notifyChanged(TimeMin, TimeMax)
}

// SetKeyframe inserts or replaces a keyframe. It is ignored while
// keyframing is disabled.
func (in *Input) SetKeyframe(k timeline.Keyframe) bool {
	in.mu.Lock()
	if !in.keyframing {
		in.mu.Unlock()
		return false
	}
	k.Value = in.clamp(k.Value)
	in.tl.Set(k)
	start, end := in.affectedSpan(k.Time)
	in.invalidateLocked()
	in.mu.Unlock()
	in.notifyChanged(start, end)
	return true
}

// RemoveKeyframe deletes the keyframe at the exact time, if present and
// keyframing is enabled.
func (in *Input) RemoveKeyframe(t value.Rat) bool {
	in.mu.Lock()
	if !in.keyframing {
		in.mu.Unlock()
		return false
	}
	start, end := in.affectedSpan(t)
	ok := in.tl.Remove(t)
	if ok {
		in.invalidateLocked()
	}
	in.mu.Unlock()
	if ok {
		in.notifyChanged(start, end)
	}
	return ok
}

// Keyframes returns the input's timeline contents in time order.
func (in *Input) Keyframes() []timeline.Keyframe {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.tl.Keyframes()
}

// SetMinimum constrains numeric values authored on the input.
func (in *Input) SetMinimum(min value.Value) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.hasMin = true
	in.min = min
}

// SetMaximum constrains numeric values authored on the input.
func (in *Input) SetMaximum(max value.Value) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.hasMax = true
	in.max = max
}

// HasMinimum reports whether a lower bound is set.
func (in *Input) HasMinimum() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hasMin
}

// HasMaximum reports whether an upper bound is set.
func (in *Input) HasMaximum() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hasMax
}

// Minimum returns the lower bound; meaningful only when HasMinimum.
func (in *Input) Minimum() value.Value {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.min
}

// Maximum returns the upper bound; meaningful only when HasMaximum.
func (in *Input) Maximum() value.Value {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.max
}

// SetValueCachingEnabled toggles memoization of the last resolved time.
func (in *Input) SetValueCachingEnabled(enabled bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cacheEnabled = enabled
	in.invalidateLocked()
}

// ValueCachingEnabled reports whether resolution memoizes the last time.
func (in *Input) ValueCachingEnabled() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cacheEnabled
}

// LastResolvedTime returns the memoized request time, or a negative
// sentinel when the cache is invalid.
func (in *Input) LastResolvedTime() value.Rat {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cachedTime
}

// invalidateCache resets the memoized time to the sentinel. Called by the
// connection protocol whenever an edge touching this input is added or
// removed.
func (in *Input) invalidateCache() {
	in.mu.Lock()
	in.invalidateLocked()
	in.mu.Unlock()
}

// invalidateLocked resets the memoized time and advances the cache
// generation, so a resolution that started before this invalidation can
// never store its result. Callers hold in.mu.
func (in *Input) invalidateLocked() {
	in.cachedTime = noCachedTime
	in.cacheGen++
}

// clamp applies the configured bounds to int and float values. Callers
// hold in.mu.
func (in *Input) clamp(v value.Value) value.Value {
	if v.Type() != value.Int && v.Type() != value.Float {
		return v
	}
	f := v.Float64()
	if in.hasMin && f < in.min.Float64() {
		return boundAs(v.Type(), in.min.Float64())
	}
	if in.hasMax && f > in.max.Float64() {
		return boundAs(v.Type(), in.max.Float64())
	}
	return v
}

func boundAs(t value.DataType, f float64) value.Value {
	if t == value.Int {
		return value.NewInt(int64(f))
	}
	return value.NewFloat(f)
}

// affectedSpan returns the timeline span whose resolved values change when
// the keyframe at t does. Callers hold in.mu.
func (in *Input) affectedSpan(t value.Rat) (value.Rat, value.Rat) {
	start, end := TimeMin, TimeMax
	for _, k := range in.tl.Keyframes() {
		switch {
		case k.Time.Cmp(t) < 0:
			start = k.Time
		case k.Time.Cmp(t) > 0:
			return start, k.Time
		}
	}
	return start, end
}

func (in *Input) notifyChanged(start, end value.Rat) {
	if in.node != nil && in.node.graph != nil {
		in.node.graph.notifyValueChanged(in, start, end)
	}
}

// CopyValues copies all authored values, keyframes, flags and connections
// from one input to another. Used when a node is duplicated.
func CopyValues(src, dst *Input) {
	src.mu.Lock()
	static := src.static
	keys := src.tl.Keyframes()
	keyframing := src.keyframing
	hasMin, hasMax := src.hasMin, src.hasMax
	min, max := src.min, src.max
	src.mu.Unlock()

	dst.mu.Lock()
	dst.static = static
	dst.keyframing = keyframing
	dst.hasMin, dst.hasMax = hasMin, hasMax
	dst.min, dst.max = min, max
	dst.tl = timeline.Timeline{}
	for _, k := range keys {
		dst.tl.Set(k)
	}
	dst.cachedTime = noCachedTime
	dst.mu.Unlock()

	for _, e := range src.Edges() {
		Connect(e.Output(), dst)
	}
}
