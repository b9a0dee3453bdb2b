package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TechXTT/scaffold/pkg/config"
	"github.com/TechXTT/scaffold/pkg/logging"
)

// version is overridden at build time with -ldflags "-X".
var version = "v0.1.0"

// rootFlags are the persistent flags shared by every command. Empty values
// leave the loaded configuration untouched.
type rootFlags struct {
	configPath string
	schema     string
	out        string
	logLevel   string
	logFormat  string
}

// app carries the resolved settings from the root pre-run to the commands.
// The logger travels on the command context.
type app struct {
	flags rootFlags
	cfg   *config.Config
}

// setup loads the configuration, applies flag overrides and installs the
// logger on the command context.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.schema != "" {
		cfg.SchemaPath = a.flags.schema
	}
	if a.flags.out != "" {
		cfg.OutDir = a.flags.out
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.logFormat != "" {
		cfg.LogFormat = a.flags.logFormat
	}

	logger, err := logging.NewLogger(logging.Config{
		Component: cmd.Name(),
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Output:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	logger.Debug("configuration loaded",
		zap.String("schema", cfg.SchemaPath),
		zap.String("out", cfg.OutDir),
	)
	return nil
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}

// NewRootCmd builds the top-level `scaffold` command. Run without a
// subcommand it behaves like `scaffold generate`.
func NewRootCmd() *cobra.Command {
	a := &app{}
	gen := &generateFlags{}

	root := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate TypeScript CRUD resources from a Prisma schema",
		Long: `scaffold reads the models of a Prisma schema and writes, for every selected
model, an Express resource folder: DTO types, Joi schemas, Prisma services,
controllers, routes and an index barrel.`,
		Example: `  scaffold --schema prisma/schema.prisma --out src/resources
  scaffold generate --models User,Post --mount src/router.ts
  scaffold inspect --probe`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, gen)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")
	pf.StringVar(&a.flags.schema, "schema", "", "Prisma schema path (default prisma/schema.prisma)")
	pf.StringVar(&a.flags.out, "out", "", "directory receiving one folder per model (default .)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: console or json")
	gen.bind(root.Flags())

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(NewVersionCmd())
	return root
}
