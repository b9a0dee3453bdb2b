package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/TechXTT/scaffold/internal/dsl"
)

// ErrNoSelection is returned when the prompt input ends before an answer.
var ErrNoSelection = errors.New("no model selection given")

// Options configures one generation run.
type Options struct {
	SchemaPath string
	OutDir     string
	// Models is an explicit selection; with All unset and Models empty the
	// user is prompted on In.
	Models []string
	All    bool
	DryRun bool
	// MountFile, when set, receives a router mounting every generated model.
	MountFile string
	Templates dsl.Options

	In     io.Reader
	Out    io.Writer
	Logger *zap.Logger
}

// Report summarizes a run.
type Report struct {
	Generated []string
	// Files lists the written paths; in a dry run, the paths that would be
	// written.
	Files   []string
	Unknown []string
}

// Generate reads the schema, resolves the model selection and writes every
// artifact for each selected model under OutDir/<folder>.
func Generate(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := newPrinter(opts.Out)
	schemaName := filepath.Base(opts.SchemaPath)

	ast, err := dsl.ParseFile(opts.SchemaPath)
	if errors.Is(err, dsl.ErrNoModels) {
		p.Failf("No models found in %s", schemaName)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed schema",
		zap.String("schema", opts.SchemaPath),
		zap.Int("models", len(ast.Entities)),
		zap.Int("enums", len(ast.Enums)),
	)
	p.Infof("Models found in %s: %s", schemaName, strings.Join(ast.Names(), ", "))

	var selected []string
	switch {
	case opts.All:
		selected = ast.Names()
	case len(opts.Models) > 0:
		selected = ParseSelection(strings.Join(opts.Models, ","), ast.Names())
	default:
		p.Prompt("Enter the models to generate (comma separated) or 'all' for every model:")
		answer, err := readAnswer(opts.In)
		if err != nil {
			return nil, err
		}
		selected = ParseSelection(answer, ast.Names())
	}
	if len(selected) == 0 {
		p.Warnf("No models selected")
		return &Report{}, nil
	}

	gen, err := dsl.NewGenerator(opts.Templates)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	report := &Report{}
	var generated []dsl.Entity
	for _, name := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		ent, ok := ast.Entity(name)
		if !ok {
			p.Warnf("Model '%s' not found in %s", name, schemaName)
			logger.Warn("unknown model", zap.String("model", name))
			report.Unknown = append(report.Unknown, name)
			continue
		}

		paths, err := emit(gen, ent, outDir, opts.DryRun)
		report.Files = append(report.Files, paths...)
		if err != nil {
			return report, fmt.Errorf("generate %s: %w", name, err)
		}
		logger.Info("generated model",
			zap.String("model", ent.Name),
			zap.String("dir", filepath.Join(outDir, ent.Folder())),
			zap.Bool("dry_run", opts.DryRun),
		)
		if opts.DryRun {
			p.Successf("Files for model %s (dry run):", ent.Name)
			for _, path := range paths {
				fmt.Fprintln(p.w, "   "+path)
			}
		} else {
			p.Successf("Files generated for model %s!", ent.Name)
		}
		report.Generated = append(report.Generated, ent.Name)
		generated = append(generated, ent)
	}

	if opts.MountFile != "" && len(generated) > 0 {
		if err := writeMount(gen, opts.MountFile, outDir, generated, opts.DryRun); err != nil {
			return report, err
		}
		report.Files = append(report.Files, opts.MountFile)
		if opts.DryRun {
			p.Successf("Router for %s (dry run, not written)", opts.MountFile)
		} else {
			p.Successf("Router mounted in %s", opts.MountFile)
		}
	}
	return report, nil
}

// ParseSelection turns a prompt answer into model names. "all" (any case)
// selects every name; otherwise the comma-separated entries are trimmed,
// blanks dropped and repeats removed.
func ParseSelection(answer string, names []string) []string {
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "all") {
		return append([]string(nil), names...)
	}
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

func readAnswer(in io.Reader) (string, error) {
	if in == nil {
		return "", ErrNoSelection
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	switch {
	case err == nil, errors.Is(err, io.EOF) && line != "":
		return line, nil
	case errors.Is(err, io.EOF):
		return "", ErrNoSelection
	default:
		return "", fmt.Errorf("read selection: %w", err)
	}
}

func emit(gen *dsl.Generator, ent dsl.Entity, outDir string, dryRun bool) ([]string, error) {
	if !dryRun {
		return gen.WriteEntity(ent, outDir)
	}
	files, err := gen.Files(ent)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(outDir, ent.Folder(), f.Name)
	}
	return paths, nil
}

func writeMount(gen *dsl.Generator, mountFile, outDir string, ents []dsl.Entity, dryRun bool) error {
	prefix, err := importPrefix(filepath.Dir(mountFile), outDir)
	if err != nil {
		return err
	}
	content, err := gen.RenderMount(prefix, ents)
	if err != nil {
		return err
	}
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(mountFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(mountFile, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", mountFile, err)
	}
	return nil
}

// importPrefix is the relative module path from dir to outDir.
func importPrefix(dir, outDir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absOut)
	if err != nil {
		return "", fmt.Errorf("mount file cannot import %s: %w", outDir, err)
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == ".":
		return ".", nil
	case strings.HasPrefix(rel, "../"), rel == "..":
		return rel, nil
	default:
		return "./" + rel, nil
	}
}
