package resp

import "bytes"

const (
	TypeSimpleString = '+'
	TypeError        = '-'
	TypeInteger      = ':'
	TypeBulkString   = '$'
	TypeArray        = '*'
)

// Value is one decoded RESP frame.
// Exactly one payload field is meaningful, selected by Type;
// IsNull distinguishes nil bulk strings and nil arrays from empty ones.
type Value struct {
	String  []byte // SimpleString, Error, BulkString
	Array   []Value
	Integer int64 // Integer
	Type    byte
	IsNull  bool // for nil BulkString and nil Array
}

// Equal reports whether two values are structurally identical:
// same type, same null-ness, same payload, recursively for arrays.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || v.IsNull != other.IsNull {
		return false
	}

	switch v.Type {
	case TypeInteger:
		return v.Integer == other.Integer
	case TypeSimpleString, TypeError, TypeBulkString:
		return bytes.Equal(v.String, other.String)
	case TypeArray:
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	}

	return false
}
