// File: internal/dsl/parser.go
package dsl

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/TechXTT/scaffold/internal/typeconv"
)

// ErrNoModels is returned when a schema holds no model blocks.
var ErrNoModels = errors.New("no model definitions found")

// Kind classifies what a field's type refers to.
type Kind int

const (
	KindScalar Kind = iota
	KindEnum
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindRelation:
		return "relation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AST is the abstract syntax tree for schema definitions
type AST struct {
	Entities []Entity
	Enums    []Enum
}

type Entity struct {
	Name   string
	Fields []Field
	// Map is the table name given by a @@map("...") block attribute.
	Map string
}

type Enum struct {
	Name   string
	Values []string
}

// Field is one line of a model block.
type Field struct {
	Name       string
	Type       string // base type, "?" and "[]" removed
	Optional   bool
	List       bool
	Attributes string // everything after the type, e.g. `@id @default(uuid())`
	Kind       Kind
}

var (
	blockCommentRe = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)^\s*//.*$`)
	trailCommentRe = regexp.MustCompile(`\s//.*$`)
	blockMapRe     = regexp.MustCompile(`(?m)^\s*@@map\(\s*(?:name:\s*)?"([^"]+)"`)
	fieldRe        = regexp.MustCompile(`^(\w+)\s+(\S+)(?:\s+(.*))?$`)
)

// ParseFile reads and parses the schema at path.
func ParseFile(path string) (AST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AST{}, fmt.Errorf("read schema %s: %w", path, err)
	}
	return ParseSchema(data)
}

// ParseSchema extracts models and enums from a Prisma schema. It is a
// textual extraction: models keep source order, fields keep line order.
func ParseSchema(input []byte) (AST, error) {
	schema := blockCommentRe.ReplaceAllString(string(input), "")
	schema = lineCommentRe.ReplaceAllString(schema, "")

	var ast AST
	for _, b := range Blocks(schema, "enum") {
		ast.Enums = append(ast.Enums, Enum{Name: b.Name, Values: blockLines(b.Body, firstWord)})
	}

	models := Blocks(schema, "model")
	if len(models) == 0 {
		return AST{}, ErrNoModels
	}

	enums := make(map[string]bool, len(ast.Enums))
	for _, e := range ast.Enums {
		enums[e.Name] = true
	}

	for _, b := range models {
		ent := Entity{Name: b.Name}
		if m := blockMapRe.FindStringSubmatch(b.Body); m != nil {
			ent.Map = m[1]
		}
		for _, line := range blockLines(b.Body, identity) {
			f, ok := parseField(line)
			if !ok {
				continue
			}
			switch {
			case typeconv.IsScalar(f.Type):
				f.Kind = KindScalar
			case enums[f.Type]:
				f.Kind = KindEnum
			case f.Type == "Unsupported":
				f.Kind = KindScalar
			default:
				f.Kind = KindRelation
			}
			ent.Fields = append(ent.Fields, f)
		}
		ast.Entities = append(ast.Entities, ent)
	}
	return ast, nil
}

func identity(s string) string { return s }

func firstWord(s string) string {
	if parts := strings.Fields(s); len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// blockLines returns the meaningful lines of a block body, skipping
// blanks, comments and block attributes.
func blockLines(body string, pick func(string) string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(trailCommentRe.ReplaceAllString(line, ""))
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "@") || strings.HasPrefix(line, "}") {
			continue
		}
		if v := pick(line); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseField(line string) (Field, bool) {
	m := fieldRe.FindStringSubmatch(line)
	if m == nil {
		return Field{}, false
	}
	typ := m[2]
	f := Field{Name: m[1], Attributes: strings.TrimSpace(m[3])}
	if i := strings.Index(typ, "("); i >= 0 {
		// Unsupported("...") and friends
		f.Optional = strings.HasSuffix(typ, "?")
		typ = typ[:i]
	}
	if strings.HasSuffix(typ, "?") {
		f.Optional = true
		typ = strings.TrimSuffix(typ, "?")
	}
	if strings.HasSuffix(typ, "[]") {
		f.List = true
		typ = strings.TrimSuffix(typ, "[]")
	}
	f.Type = typ
	return f, typ != ""
}

// Entity returns the model named name.
func (a AST) Entity(name string) (Entity, bool) {
	for _, e := range a.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Names lists model names in source order.
func (a AST) Names() []string {
	names := make([]string, len(a.Entities))
	for i, e := range a.Entities {
		names[i] = e.Name
	}
	return names
}
