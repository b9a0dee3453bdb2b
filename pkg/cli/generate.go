package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/TechXTT/scaffold/internal/dsl"
	"github.com/TechXTT/scaffold/pkg/internal/generator"
	"github.com/TechXTT/scaffold/pkg/logging"
)

type generateFlags struct {
	models []string
	all    bool
	dryRun bool
	mount  string
}

func (f *generateFlags) bind(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&f.models, "models", "m", nil, "comma separated models to generate (skips the prompt)")
	fs.BoolVar(&f.all, "all", false, "generate every model (skips the prompt)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "list the files that would be written without writing them")
	fs.StringVar(&f.mount, "mount", "", "also write an Express router mounting the generated resources")
}

func newGenerateCmd(a *app) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate CRUD resources for the selected models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, flags)
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, flags *generateFlags) error {
	logger := logging.FromContext(cmd.Context())
	report, err := generator.Generate(cmd.Context(), generator.Options{
		SchemaPath: a.cfg.SchemaPath,
		OutDir:     a.cfg.OutDir,
		Models:     flags.models,
		All:        flags.all,
		DryRun:     flags.dryRun,
		MountFile:  flags.mount,
		Templates: dsl.Options{
			ClientImport:    a.cfg.ClientImport,
			ValidatorImport: a.cfg.ValidatorImport,
		},
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logger.Named("generate"),
	})
	if err != nil {
		return err
	}
	logger.Info("generation finished",
		zap.Strings("models", report.Generated),
		zap.Strings("unknown", report.Unknown),
		zap.Int("files", len(report.Files)),
	)
	return nil
}
