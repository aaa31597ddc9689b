// Package nodedef provides the central registry for node definitions.
//
// A Definition maps a node kind string (e.g. "math/add") to the parameter
// layout and computation that every instance of that kind shares. During
// application startup the registry is populated with the built-in kinds;
// composition loading then instantiates graph nodes from it by kind.
//
// Registration of a duplicate or malformed definition is a programming
// error and panics, so mistakes surface at startup instead of during
// evaluation.
package nodedef
