package observable

import "reflect"

// LooseEqual reports whether a write of b over a counts as "no change".
//
// Values of the same type compare with == when both are comparable at run
// time. Numbers of different kinds compare by value, so an int 1 equals a
// float64 1. Everything else, including slices, maps and funcs or structs
// holding them, is never equal, so writing it always notifies.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() == vb.Type() {
		return va.Comparable() && vb.Comparable() && a == b
	}
	return numericEqual(va, vb)
}

// numericEqual compares numbers of different kinds. Integers compare
// exactly; a float on either side compares as float64.
func numericEqual(va, vb reflect.Value) bool {
	ka, kb := numKind(va), numKind(vb)
	switch {
	case ka == kindNone || kb == kindNone:
		return false
	case ka == kindInt && kb == kindInt:
		return va.Int() == vb.Int()
	case ka == kindUint && kb == kindUint:
		return va.Uint() == vb.Uint()
	case ka == kindInt && kb == kindUint:
		return va.Int() >= 0 && uint64(va.Int()) == vb.Uint()
	case ka == kindUint && kb == kindInt:
		return vb.Int() >= 0 && va.Uint() == uint64(vb.Int())
	}
	return asFloat(va) == asFloat(vb)
}

type numericKind int

const (
	kindNone numericKind = iota
	kindInt
	kindUint
	kindFloat
)

func numKind(v reflect.Value) numericKind {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindUint
	case reflect.Float32, reflect.Float64:
		return kindFloat
	}
	return kindNone
}

func asFloat(v reflect.Value) float64 {
	switch numKind(v) {
	case kindInt:
		return float64(v.Int())
	case kindUint:
		return float64(v.Uint())
	}
	return v.Float()
}
