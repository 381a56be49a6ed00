// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package models

// FieldKind identifies which shape an upstream display field arrived in.
type FieldKind int

const (
	// FieldAbsent means the field was missing, null, or of an unusable type.
	FieldAbsent FieldKind = iota
	// FieldPlain means the field was a bare string.
	FieldPlain
	// FieldNamed means the field was an object with a string "name".
	FieldNamed
)

// String returns the kind name for logs and test output.
func (k FieldKind) String() string {
	switch k {
	case FieldPlain:
		return "plain"
	case FieldNamed:
		return "named"
	default:
		return "absent"
	}
}

// NamedField is an upstream display field that may be a plain string, an
// object with a name, or absent.
type NamedField struct {
	Kind  FieldKind
	Value string
}

// ParseNamedField classifies a decoded JSON value.
//
// A plain string is kept even when empty. An object counts as named only if
// its "name" is a non-empty string; anything else is absent.
func ParseNamedField(v any) NamedField {
	switch t := v.(type) {
	case string:
		return NamedField{Kind: FieldPlain, Value: t}
	case map[string]any:
		if name, ok := t["name"].(string); ok && name != "" {
			return NamedField{Kind: FieldNamed, Value: name}
		}
	}
	return NamedField{Kind: FieldAbsent}
}

// Present reports whether the field resolved to a string.
func (f NamedField) Present() bool {
	return f.Kind != FieldAbsent
}

// Resolve returns the display string, or fallback when the field is absent.
func (f NamedField) Resolve(fallback string) string {
	if f.Kind == FieldAbsent {
		return fallback
	}
	return f.Value
}
