package value

// Compatible reports whether a value of outputType may flow into a
// connection point that declares inputType.
//
// The rules are intentionally narrow: equal types always match, a None
// input matches nothing, an Any input matches everything, and integers may
// widen losslessly into float inputs. Narrowing float into int loses
// precision and is never permitted.
func Compatible(outputType, inputType DataType) bool {
	if inputType == None {
		return false
	}
	if inputType == outputType {
		return true
	}
	if inputType == Any {
		return true
	}
	if outputType == Int && inputType == Float {
		return true
	}
	return false
}

// CompatibleAny reports whether outputType is compatible with at least one
// member of an input's accepted-type set.
func CompatibleAny(outputType DataType, inputTypes []DataType) bool {
	for _, t := range inputTypes {
		if Compatible(outputType, t) {
			return true
		}
	}
	return false
}
