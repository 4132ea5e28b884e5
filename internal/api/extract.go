package api

import "github.com/tidwall/gjson"

// Kind is the JSON kind a field is expected to have
type Kind int

const (
	KindString Kind = iota
	KindArray
	KindObject
)

// matches reports whether r holds a value of kind k
func (k Kind) matches(r gjson.Result) bool {
	switch k {
	case KindString:
		return r.Type == gjson.String
	case KindArray:
		return r.IsArray()
	case KindObject:
		return r.IsObject()
	default:
		return false
	}
}

// ParseDocument parses raw as a JSON document. The bool is false when raw
// is not valid JSON; the returned Result is then empty.
func ParseDocument(raw []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(raw), true
}

// Field reads the value at path in doc. def is returned when doc is not an
// object, the field is absent, or its kind is not kind.
func Field(doc gjson.Result, path string, kind Kind, def gjson.Result) gjson.Result {
	if !doc.IsObject() {
		return def
	}
	v := doc.Get(path)
	if !v.Exists() || !kind.matches(v) {
		return def
	}
	return v
}

// StringField reads a string field, returning def on any mismatch
func StringField(doc gjson.Result, path, def string) string {
	v := Field(doc, path, KindString, gjson.Result{})
	if !v.Exists() {
		return def
	}
	return v.String()
}

// ArrayField reads an array field as its elements, returning an empty
// slice on any mismatch
func ArrayField(doc gjson.Result, path string) []gjson.Result {
	v := Field(doc, path, KindArray, gjson.Result{})
	if !v.Exists() {
		return []gjson.Result{}
	}
	return v.Array()
}

// ObjectField reads an object field. The bool is false on any mismatch.
func ObjectField(doc gjson.Result, path string) (gjson.Result, bool) {
	v := Field(doc, path, KindObject, gjson.Result{})
	return v, v.Exists()
}
