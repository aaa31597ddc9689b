// Package compfile loads composition files written in HCL.
//
// A composition file declares node blocks (kind and name labels, with
// input blocks carrying a static value or keyframes) and connect blocks
// wiring output parameters to input parameters by address. Loading
// instantiates the nodes through the definition registry and applies the
// connections through the graph's connection protocol, so a loaded file
// obeys the same rules as edits made at runtime.
//
// Errors are reported as hcl.Diagnostics so callers can print them with
// source ranges.
package compfile
