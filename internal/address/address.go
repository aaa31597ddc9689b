package address

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex validates a single segment of a parameter address.
var nameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Address identifies one parameter on one node, e.g. `blur1.radius`.
type Address struct {
	Node  string
	Param string
}

// Parse splits a canonical `node.param` address into its parts. Both
// segments must be non-empty identifiers.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("parameter address cannot be empty")
	}

	node, param, ok := strings.Cut(raw, ".")
	if !ok {
		return Address{}, fmt.Errorf("invalid parameter address %q: want node.param", raw)
	}
	if !nameRegex.MatchString(node) {
		return Address{}, fmt.Errorf("invalid node name %q in address %q", node, raw)
	}
	if !nameRegex.MatchString(param) {
		return Address{}, fmt.Errorf("invalid parameter id %q in address %q", param, raw)
	}

	return Address{Node: node, Param: param}, nil
}

// String returns the canonical form.
func (a Address) String() string {
	return a.Node + "." + a.Param
}
