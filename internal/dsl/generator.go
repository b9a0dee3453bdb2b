package dsl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/TechXTT/scaffold/internal/typeconv"
)

// Artifact is one kind of generated file.
type Artifact string

const (
	ArtifactTypes       Artifact = "types"
	ArtifactSchemas     Artifact = "schemas"
	ArtifactServices    Artifact = "services"
	ArtifactControllers Artifact = "controllers"
	ArtifactRoutes      Artifact = "routes"
	ArtifactIndex       Artifact = "index"
)

// Artifacts lists every artifact in emission order.
var Artifacts = []Artifact{
	ArtifactTypes,
	ArtifactSchemas,
	ArtifactServices,
	ArtifactControllers,
	ArtifactRoutes,
	ArtifactIndex,
}

// FileName returns the file name of a inside the model folder.
func (a Artifact) FileName(folder string) string {
	if a == ArtifactIndex {
		return "index.ts"
	}
	return folder + "." + string(a) + ".ts"
}

const (
	DefaultClientImport    = "@prisma/client"
	DefaultValidatorImport = "../../middlewares/validateRequestBody"
)

// Options are the literal import paths substituted into generated code.
type Options struct {
	ClientImport    string
	ValidatorImport string
}

// File is a rendered artifact.
type File struct {
	Artifact Artifact
	Name     string
	Content  []byte
}

// Generator renders the per-model artifacts.
type Generator struct {
	Template *template.Template
	opts     Options
}

type entityTemplateData struct {
	Entity
	Client    string
	Validator string
}

type mountTemplateData struct {
	Prefix   string
	Entities []Entity
}

func NewGenerator(opts ...Options) (*Generator, error) {
	o := Options{ClientImport: DefaultClientImport, ValidatorImport: DefaultValidatorImport}
	if len(opts) > 0 {
		if opts[0].ClientImport != "" {
			o.ClientImport = opts[0].ClientImport
		}
		if opts[0].ValidatorImport != "" {
			o.ValidatorImport = opts[0].ValidatorImport
		}
	}

	funcMap := template.FuncMap{
		"lower":       strings.ToLower,
		"join":        strings.Join,
		"pickList":    pickList,
		"idName":      idName,
		"whereID":     whereID,
		"idParam":     idParam,
		"swaggerType": swaggerType,
		"joiCreate":   joiCreate,
		"joiUpdate":   joiUpdate,
	}
	tmpl := template.New("entity").Funcs(funcMap)
	for name, text := range templates {
		if _, err := tmpl.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
	}
	return &Generator{Template: tmpl, opts: o}, nil
}

// Render executes the template of one artifact for ent.
func (g *Generator) Render(a Artifact, ent Entity) ([]byte, error) {
	data := entityTemplateData{
		Entity:    ent,
		Client:    g.opts.ClientImport,
		Validator: g.opts.ValidatorImport,
	}
	var buf bytes.Buffer
	if err := g.Template.ExecuteTemplate(&buf, string(a), data); err != nil {
		return nil, fmt.Errorf("render %s for %s: %w", a, ent.Name, err)
	}
	return buf.Bytes(), nil
}

// Files renders every artifact for ent.
func (g *Generator) Files(ent Entity) ([]File, error) {
	files := make([]File, 0, len(Artifacts))
	for _, a := range Artifacts {
		content, err := g.Render(a, ent)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Artifact: a, Name: a.FileName(ent.Folder()), Content: content})
	}
	return files, nil
}

// RenderMount renders a router that mounts every entity's routes. prefix is
// the import path from the mount file to the output directory.
func (g *Generator) RenderMount(prefix string, ents []Entity) ([]byte, error) {
	if prefix == "" {
		prefix = "."
	}
	var buf bytes.Buffer
	if err := g.Template.ExecuteTemplate(&buf, "mount", mountTemplateData{Prefix: prefix, Entities: ents}); err != nil {
		return nil, fmt.Errorf("render mount: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteEntity writes every artifact of ent into outDir/<folder> and returns
// the written paths.
func (g *Generator) WriteEntity(ent Entity, outDir string) ([]string, error) {
	files, err := g.Files(ent)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(outDir, ent.Folder())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.Name)
		if err := os.WriteFile(p, f.Content, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func pickList(e Entity) string {
	fields := e.Writable()
	if len(fields) == 0 {
		return "never"
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f.Name + `"`
	}
	return strings.Join(quoted, " | ")
}

func idName(e Entity) string {
	if f, ok := e.IDField(); ok {
		return f.Name
	}
	return "id"
}

func whereID(e Entity) string {
	if name := idName(e); name != "id" {
		return name + ": id"
	}
	return "id"
}

func idParam(e Entity) string {
	switch e.IDType() {
	case "number":
		return "const id = Number(req.params.id);"
	case "bigint":
		return "const id = BigInt(req.params.id);"
	default:
		return "const { id } = req.params;"
	}
}

// swaggerType is the OpenAPI type of the id path parameter.
func swaggerType(e Entity) string {
	switch e.IDType() {
	case "number", "bigint":
		return "integer"
	default:
		return "string"
	}
}

func joiCreate(f Field) string {
	return f.JoiType()
}

func joiUpdate(f Field) string {
	_, joi := typeconv.Map(f.typeField(true))
	return joi
}
