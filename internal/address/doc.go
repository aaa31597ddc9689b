/*
Package address provides the structured representation of parameter
addresses used by composition files and the CLI, based on the canonical
format `node.param`.

This package enforces the address schema and centralizes all formatting
and parsing logic so that every consumer agrees on what a valid address
looks like.
*/
package address
