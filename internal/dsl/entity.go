package dsl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TechXTT/scaffold/internal/typeconv"
)

// SoftDeleteField marks models whose delete only stamps a timestamp.
const SoftDeleteField = "deletedAt"

func (f Field) hasAttr(name string) bool {
	for _, tok := range strings.Fields(f.Attributes) {
		if tok == name || strings.HasPrefix(tok, name+"(") {
			return true
		}
	}
	return false
}

// IsID reports whether f is the model's identifier.
func (f Field) IsID() bool {
	return f.Name == "id" || f.hasAttr("@id")
}

// HasDefault reports whether the database fills f when it is omitted.
func (f Field) HasDefault() bool {
	return f.hasAttr("@default") || f.hasAttr("@updatedAt")
}

// IsUUID reports a native uuid column.
func (f Field) IsUUID() bool {
	return f.hasAttr("@db.Uuid")
}

// typeField returns the type-mapping input for f with the given optionality.
func (f Field) typeField(optional bool) typeconv.Field {
	return typeconv.Field{
		Type:     f.Type,
		List:     f.List,
		Optional: optional,
		Enum:     f.Kind == KindEnum,
		UUID:     f.IsUUID(),
	}
}

// TSType returns the TypeScript type of f.
func (f Field) TSType() string {
	ts, _ := typeconv.Map(f.typeField(f.Optional))
	return ts
}

// JoiType returns the Joi validator of f in a create payload, where fields
// with a default may be omitted.
func (f Field) JoiType() string {
	_, joi := typeconv.Map(f.typeField(f.Optional || f.HasDefault()))
	return joi
}

// Folder is the output directory and Prisma client accessor of the model.
func (e Entity) Folder() string {
	return lowerFirst(e.Name)
}

// Var is the camel-case variable name used for one record in generated code.
func (e Entity) Var() string {
	return lowerFirst(e.Name)
}

// IDField returns the identifier field, if the model declares one.
func (e Entity) IDField() (Field, bool) {
	for _, f := range e.Fields {
		if f.IsID() {
			return f, true
		}
	}
	return Field{}, false
}

// IDType is the TypeScript type of the identifier, string when unknown.
func (e Entity) IDType() string {
	if f, ok := e.IDField(); ok {
		switch ts := typeconv.Lookup(f.Type).TS; ts {
		case "number", "bigint":
			return ts
		}
	}
	return "string"
}

// SoftDelete reports whether the model carries a deletedAt column.
func (e Entity) SoftDelete() bool {
	for _, f := range e.Fields {
		if f.Name == SoftDeleteField {
			return true
		}
	}
	return false
}

// Writable lists the fields accepted on create and update: everything but
// the identifier, relations and the soft-delete stamp.
func (e Entity) Writable() []Field {
	soft := e.SoftDelete()
	var out []Field
	for _, f := range e.Fields {
		if f.IsID() || f.Kind == KindRelation {
			continue
		}
		if soft && f.Name == SoftDeleteField {
			continue
		}
		out = append(out, f)
	}
	return out
}

// EnumsUsed lists the enums referenced by writable fields, first use first.
func (e Entity) EnumsUsed() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range e.Writable() {
		if f.Kind == KindEnum && !seen[f.Type] {
			seen[f.Type] = true
			out = append(out, f.Type)
		}
	}
	return out
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
