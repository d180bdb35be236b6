package model

import (
	"encoding/json"
	"fmt"
)

// MetaKind tags the concrete shape held by a MetaValue.
type MetaKind int

const (
	MetaAbsent MetaKind = iota
	MetaString
	MetaNumber
	MetaBool
	MetaList
	MetaMap
)

// MetaValue is a closed variant for platform-specific metadata fields.
// It accepts scalar, string-list and flat string-map JSON values; anything
// deeper is flattened to its JSON text so downstream code never sees an
// untyped interface{}.
type MetaValue struct {
	kind MetaKind
	str  string
	num  float64
	b    bool
	list []string
	m    map[string]string
}

// MetaString builds a string-valued MetaValue.
func MetaStr(s string) MetaValue { return MetaValue{kind: MetaString, str: s} }

// MetaNum builds a number-valued MetaValue.
func MetaNum(f float64) MetaValue { return MetaValue{kind: MetaNumber, num: f} }

// MetaBoolVal builds a bool-valued MetaValue.
func MetaBoolVal(v bool) MetaValue { return MetaValue{kind: MetaBool, b: v} }

// MetaStrings builds a list-valued MetaValue.
func MetaStrings(vs ...string) MetaValue { return MetaValue{kind: MetaList, list: vs} }

// Kind returns the variant tag.
func (v MetaValue) Kind() MetaKind { return v.kind }

// String returns the string form of the value for any kind.
func (v MetaValue) String() string {
	switch v.kind {
	case MetaString:
		return v.str
	case MetaNumber:
		return fmt.Sprintf("%g", v.num)
	case MetaBool:
		return fmt.Sprintf("%t", v.b)
	case MetaList:
		raw, _ := json.Marshal(v.list)
		return string(raw)
	case MetaMap:
		raw, _ := json.Marshal(v.m)
		return string(raw)
	}
	return ""
}

// Number returns the numeric value and whether the variant is a number.
func (v MetaValue) Number() (float64, bool) { return v.num, v.kind == MetaNumber }

// Bool returns the bool value and whether the variant is a bool.
func (v MetaValue) Bool() (bool, bool) { return v.b, v.kind == MetaBool }

// Strings returns the list value and whether the variant is a list.
func (v MetaValue) Strings() ([]string, bool) { return v.list, v.kind == MetaList }

// Map returns the map value and whether the variant is a map.
func (v MetaValue) Map() (map[string]string, bool) { return v.m, v.kind == MetaMap }

// MarshalJSON implements json.Marshaler.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetaString:
		return json.Marshal(v.str)
	case MetaNumber:
		return json.Marshal(v.num)
	case MetaBool:
		return json.Marshal(v.b)
	case MetaList:
		return json.Marshal(v.list)
	case MetaMap:
		return json.Marshal(v.m)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler. Unsupported shapes (nested
// arrays/objects, mixed-type arrays) degrade to their raw JSON text rather
// than failing the whole event.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetaStr(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = MetaNum(f)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = MetaBoolVal(b)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = MetaValue{kind: MetaList, list: list}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		*v = MetaValue{kind: MetaMap, m: m}
		return nil
	}
	*v = MetaStr(string(data))
	return nil
}
