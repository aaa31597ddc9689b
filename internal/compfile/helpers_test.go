package compfile

import (
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

func ctyNumber(f float64) cty.Value {
	return cty.NumberVal(big.NewFloat(f))
}

func ctyString(s string) cty.Value {
	return cty.StringVal(s)
}

func ctyTuple(fs ...float64) cty.Value {
	vals := make([]cty.Value, len(fs))
	for i, f := range fs {
		vals[i] = ctyNumber(f)
	}
	return cty.TupleVal(vals)
}
