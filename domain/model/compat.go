package model

// setMatrix[from][to] and getMatrix[from][to] are built once from the rules below.
var (
	setMatrix = buildMatrix(canSetRule)
	getMatrix = buildMatrix(canGetRule)
)

func buildMatrix(rule func(from, to TypeTag) bool) [typeTagCount][typeTagCount]bool {
	var m [typeTagCount][typeTagCount]bool
	for from := range typeTagCount {
		for to := range typeTagCount {
			m[from][to] = rule(from, to)
		}
	}
	return m
}

// CanSet reports whether a value of tag from may be stored in a cell of tag to.
// It is defined for every pair of tags and never fails; invalid tags yield false.
func CanSet(from, to TypeTag) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return setMatrix[from][to]
}

// CanGet reports whether a cell of tag from may be read as a value of tag to.
// It is defined for every pair of tags and never fails; invalid tags yield false.
func CanGet(from, to TypeTag) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return getMatrix[from][to]
}

func canSetRule(from, to TypeTag) bool {
	switch {
	case from == TypeNull || to == TypeNull:
		return false
	case from == to:
		return true
	case from == TypeBit || from.IsInteger():
		// narrowing keeps the low bits
		return to == TypeBit || to.IsInteger() || (from.IsInteger() && to.IsFloat())
	case from.IsFloat(), from == TypeFixedPoint:
		return to.IsFloat()
	case from.IsCharacter():
		return to.IsCharacter()
	case from == TypeDate:
		return to == TypeDateTime
	case from == TypeDateTime:
		return to == TypeDate || to == TypeTime
	case from.IsBinary():
		return to.IsBinary()
	default:
		return false
	}
}

func canGetRule(from, to TypeTag) bool {
	switch {
	case from == TypeNull || to == TypeNull:
		return false
	case from == to:
		return true
	case to.IsCharacter():
		return from.IsNumeric() || from.IsTemporal() || from.IsCharacter()
	case from == TypeBit:
		return to.IsInteger() || to.IsFloat()
	case from.IsInteger():
		return integerReadable(from, to)
	case from == TypeFloat32:
		return to == TypeFloat64
	case from == TypeFixedPoint:
		return to.IsFloat()
	case from.IsCharacter():
		return to.IsBinary()
	case from.IsBinary():
		return to.IsBinary()
	case from == TypeDateTime:
		return to == TypeDate || to == TypeTime
	case from == TypeDate:
		return to == TypeDateTime
	default:
		return false
	}
}

// integerReadable reports whether every value of the integer tag from survives
// a read as to.
func integerReadable(from, to TypeTag) bool {
	fw := from.BitWidth()
	switch {
	case to == TypeBit:
		return fw == 8
	case to.IsInteger():
		tw := to.BitWidth()
		switch {
		case from.IsSigned() == to.IsSigned():
			return tw >= fw
		case !from.IsSigned():
			return tw > fw
		default:
			return false
		}
	case to == TypeFloat32:
		return fw <= 24
	case to == TypeFloat64:
		return fw <= 32
	default:
		return false
	}
}
