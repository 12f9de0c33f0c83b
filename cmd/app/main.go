package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/jera/internal"
	"github.com/starford/jera/internal/document"
	pkgconfig "github.com/starford/jera/pkg/config"
)

// loadConfig builds the effective configuration: defaults, then the
// config file, then command-line flags. A config file named explicitly
// must exist; the default jera.yaml is optional.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	configPath := cmd.String("config")
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("workspace") {
		cfg.Workspace.Path = cmd.String("workspace")
	}
	if cmd.IsSet("output") {
		cfg.Build.Output = cmd.String("output")
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func workspaceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "Path to the workspace directory",
		Sources: cli.EnvVars("JERA_WORKSPACE"),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output directory for the built site",
		Sources: cli.EnvVars("JERA_OUTPUT"),
	}
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Compile the workspace into a static site",
		Flags: []cli.Flag{workspaceFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return internal.RunBuild(ctx, internal.WithConfig(cfg))
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Scaffold a new document",
		Commands: []*cli.Command{
			newKindCommand("note", document.KindNote),
			newKindCommand("experiment", document.KindExperiment),
		},
	}
}

func newKindCommand(name, kind string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("Create a new %s from the template", name),
		ArgsUsage: "<title>",
		Flags:     []cli.Flag{workspaceFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if title == "" {
				return fmt.Errorf("title is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return internal.RunNew(ctx, title, kind, internal.WithConfig(cfg))
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the built site with live reload and the JSON API",
		Flags: []cli.Flag{
			workspaceFlag(),
			outputFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP port",
				Value:   8080,
				Sources: cli.EnvVars("JERA_PORT"),
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Disable the file watcher and live reload",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return internal.Run(ctx,
				internal.WithConfig(cfg),
				internal.WithWatch(!cmd.Bool("no-watch")))
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Flags: []cli.Flag{workspaceFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return internal.RunMCP(ctx, internal.WithConfig(cfg))
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "jera",
		Usage: "Turn a directory of research notes and experiment logs into a browsable site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "jera.yaml",
				Value:       "jera.yaml",
				Sources:     cli.EnvVars("JERA_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			buildCommand(),
			newCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
