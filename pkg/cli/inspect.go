package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TechXTT/scaffold/internal/dsl"
	"github.com/TechXTT/scaffold/pkg/config"
	"github.com/TechXTT/scaffold/pkg/internal/introspect"
	"github.com/TechXTT/scaffold/pkg/logging"
	"github.com/TechXTT/scaffold/pkg/runtime"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		probe    bool
		dbSchema string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the models, fields and enums read from the schema",
		Long: `inspect prints what the generator sees in the schema: every model with its
fields, the TypeScript and Joi types they map to, and the declared enums.
With --probe it also connects to the datasource and checks that a table and
columns exist for every model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ast, err := dsl.ParseFile(a.cfg.SchemaPath)
			if err != nil {
				return err
			}
			printAST(cmd, ast)
			if !probe {
				return nil
			}
			return runProbe(cmd, a, ast, dbSchema)
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, "compare the models with the live database")
	cmd.Flags().StringVar(&dbSchema, "db-schema", "public", "database schema holding the tables")
	return cmd
}

func printAST(cmd *cobra.Command, ast dsl.AST) {
	w := cmd.OutOrStdout()
	for _, ent := range ast.Entities {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("FIELD", "PRISMA", "TYPESCRIPT", "JOI", "KIND")
		for _, f := range ent.Fields {
			prisma := f.Type
			if f.List {
				prisma += "[]"
			}
			if f.Optional {
				prisma += "?"
			}
			ts, joi := f.TSType(), f.JoiType()
			if f.Kind == dsl.KindRelation {
				// relations are not part of any payload
				ts, joi = strings.TrimSuffix(prisma, "?"), "-"
			}
			t.Row(f.Name, prisma, ts, joi, f.Kind.String())
		}
		fmt.Fprintf(w, "%s -> %s/\n%s\n\n", ent.Name, ent.Folder(), t.Render())
	}
	for _, e := range ast.Enums {
		fmt.Fprintf(w, "enum %s: %s\n", e.Name, strings.Join(e.Values, ", "))
	}
}

func runProbe(cmd *cobra.Command, a *app, ast dsl.AST, dbSchema string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	ds, err := config.ReadDatasource(a.cfg.SchemaPath)
	if err != nil {
		return err
	}
	if ds.Provider != "postgresql" && ds.Provider != "postgres" {
		return fmt.Errorf("probe supports postgresql datasources, got %q", ds.Provider)
	}
	db, err := runtime.Connect(ctx, ds.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	reports, err := introspect.Probe(ctx, db, ast, dbSchema, logger.Named("probe"))
	if err != nil {
		return err
	}
	drift := printReports(cmd.OutOrStdout(), reports)
	logger.Info("probe finished", zap.Int("models", len(reports)), zap.Int("drift", drift))
	if drift > 0 {
		return fmt.Errorf("%d model(s) do not match the database", drift)
	}
	return nil
}

// printReports writes one line per model plus its problems and returns how
// many models drifted.
func printReports(w io.Writer, reports []introspect.ModelReport) int {
	drift := 0
	for _, r := range reports {
		switch {
		case r.Table == "":
			drift++
			fmt.Fprintf(w, "✗ %s: no table found\n", r.Model)
			continue
		case r.OK():
			fmt.Fprintf(w, "✓ %s -> %s\n", r.Model, r.Table)
			continue
		}
		drift++
		fmt.Fprintf(w, "✗ %s -> %s\n", r.Model, r.Table)
		for _, c := range r.MissingColumns {
			fmt.Fprintf(w, "    missing column %s\n", c)
		}
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "    %s: expected %s, found %s\n", m.Field, m.Want, m.Got)
		}
	}
	return drift
}
