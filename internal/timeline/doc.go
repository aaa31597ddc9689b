// Package timeline implements the keyframe timeline that backs unconnected
// node inputs: an ordered-by-time sequence of (time, value, interpolation)
// samples evaluated at arbitrary times with clamp-to-boundary semantics.
package timeline
