// Package object defines the sealed value kinds of the language and the
// owned dispatch tables that custom literal suffixes are installed into.
package object

import "hash/fnv"

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	COMPLEX_OBJ  = "COMPLEX"
	BOOLEAN_OBJ  = "BOOLEAN"
	STRING_OBJ   = "STRING"
	BYTES_OBJ    = "BYTES"
	NONE_OBJ     = "NONE"
	ELLIPSIS_OBJ = "ELLIPSIS"
	TUPLE_OBJ    = "TUPLE"
	LIST_OBJ     = "LIST"
	SET_OBJ      = "SET"
	MAP_OBJ      = "MAP"
	KIND_OBJ     = "KIND"
)

type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
