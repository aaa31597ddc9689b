// Package value defines the closed set of data types exchanged between node
// parameters, a tagged-union Value type holding one payload per tag, the
// pairwise type-compatibility rules used by the connection protocol, and the
// fixed-width binary persistence encoding for parameter values.
package value
