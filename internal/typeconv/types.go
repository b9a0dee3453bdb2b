package typeconv

import "strings"

// Mapping pairs the TypeScript type and the Joi expression for a Prisma scalar.
type Mapping struct {
	TS  string
	Joi string
}

var scalars = map[string]Mapping{
	"String":   {TS: "string", Joi: "Joi.string()"},
	"Int":      {TS: "number", Joi: "Joi.number().integer()"},
	"BigInt":   {TS: "bigint", Joi: "Joi.number().integer()"},
	"Float":    {TS: "number", Joi: "Joi.number()"},
	"Decimal":  {TS: "number", Joi: "Joi.number()"},
	"Boolean":  {TS: "boolean", Joi: "Joi.boolean()"},
	"DateTime": {TS: "Date", Joi: "Joi.date()"},
	"Json":     {TS: "any", Joi: "Joi.any()"},
	"Bytes":    {TS: "Buffer", Joi: "Joi.binary()"},
}

var fallback = Mapping{TS: "any", Joi: "Joi.any()"}

// IsScalar reports whether typ is one of the Prisma scalar types.
func IsScalar(typ string) bool {
	_, ok := scalars[typ]
	return ok
}

// Field describes a field for mapping purposes.
type Field struct {
	Type     string // base Prisma type, modifiers stripped
	List     bool
	Optional bool
	Enum     bool // Type names an enum block
	UUID     bool // String column annotated @db.Uuid
}

// Lookup returns the base mapping of a Prisma type, ignoring modifiers.
// Unknown types map to any.
func Lookup(typ string) Mapping {
	if m, ok := scalars[typ]; ok {
		return m
	}
	return fallback
}

// Map returns the TypeScript type and Joi expression for f.
// Lists become arrays and carry no presence modifier; other fields end in
// .optional() or .required().
func Map(f Field) (tsType, joiType string) {
	m := Lookup(f.Type)
	switch {
	case f.Enum:
		m = Mapping{
			TS:  f.Type,
			Joi: "Joi.string().valid(...Object.values(" + f.Type + "))",
		}
	case f.UUID && f.Type == "String":
		m.Joi = "Joi.string().uuid()"
	}

	tsType, joiType = m.TS, m.Joi
	if f.List {
		tsType += "[]"
		joiType = "Joi.array().items(" + joiType + ")"
		return tsType, joiType
	}
	if f.Optional {
		return tsType, joiType + ".optional()"
	}
	return tsType, joiType + ".required()"
}

// SQLType returns the canonical postgres column type Prisma uses for a scalar.
func SQLType(typ string, uuid bool) string {
	switch typ {
	case "String":
		if uuid {
			return "UUID"
		}
		return "TEXT"
	case "Int":
		return "INTEGER"
	case "BigInt":
		return "BIGINT"
	case "Float":
		return "REAL"
	case "Decimal":
		return "DECIMAL"
	case "Boolean":
		return "BOOLEAN"
	case "DateTime":
		return "TIMESTAMP"
	case "Json":
		return "JSON"
	case "Bytes":
		return "BYTES"
	default:
		return ""
	}
}

// CanonicalType normalizes postgres udt names for comparison.
func CanonicalType(typ string) string {
	t := strings.ToUpper(typ)
	switch t {
	case "INT2", "INT4", "INTEGER", "SERIAL":
		return "INTEGER"
	case "INT8", "BIGINT", "BIGSERIAL":
		return "BIGINT"
	case "BOOL", "BOOLEAN":
		return "BOOLEAN"
	case "TEXT", "VARCHAR", "BPCHAR", "CITEXT":
		return "TEXT"
	case "REAL", "FLOAT4", "FLOAT8":
		return "REAL"
	case "NUMERIC", "DECIMAL", "MONEY":
		return "DECIMAL"
	case "TIMESTAMP", "TIMESTAMPTZ", "DATE", "TIME", "TIMETZ":
		return "TIMESTAMP"
	case "JSON", "JSONB":
		return "JSON"
	case "BYTEA":
		return "BYTES"
	case "UUID":
		return "UUID"
	default:
		return t
	}
}
