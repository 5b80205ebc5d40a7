package bloom

import "fmt"

// KeyOf returns the canonical byte form of v used for hashing. []byte is used
// as is, strings as their bytes, fmt.Stringer values as their String() and
// anything else as fmt.Sprint(v).
//
// Two values with the same canonical form are the same key to a filter, so
// 42 and "42" collide.
func KeyOf(v any) []byte {
	switch k := v.(type) {
	case []byte:
		return k
	case string:
		return []byte(k)
	case fmt.Stringer:
		return []byte(k.String())
	}
	return []byte(fmt.Sprint(v))
}
