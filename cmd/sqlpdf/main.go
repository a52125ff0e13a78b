package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/enix403/gen-sql-pdf/internal/cli"
	"github.com/enix403/gen-sql-pdf/internal/logger"
	"github.com/enix403/gen-sql-pdf/internal/render"
	"github.com/enix403/gen-sql-pdf/internal/report"
	urfavecli "github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	app := &urfavecli.Command{
		Name:      "sqlpdf",
		Usage:     "Run SQL scripts and render every result as a page of a PDF report",
		Version:   version,
		ArgsUsage: "[file or directory ...]",
		Action:    renderCommand,
		Flags:     renderFlags(),
		Commands: []*urfavecli.Command{
			{
				Name:      "render",
				Usage:     "Execute statements and write the report (default)",
				ArgsUsage: "[file or directory ...]",
				Action:    renderCommand,
				Flags:     renderFlags(),
			},
			{
				Name:      "split",
				Usage:     "Print the statements as they will be executed",
				ArgsUsage: "[file or directory ...]",
				Action:    splitCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.BoolFlag{
						Name:  "json",
						Usage: "Print statements as JSON",
					},
				},
			},
			{
				Name:   "themes",
				Usage:  "List available themes",
				Action: themesCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:  "themes-dir",
						Usage: "Directory with additional <theme>.css files",
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "SQLite database file or PostgreSQL connection string",
		},
		&urfavecli.StringFlag{
			Name:  "driver",
			Usage: "Database driver (sqlite or postgres); detected from --db when empty",
		},
		&urfavecli.StringFlag{
			Name:  "config",
			Usage: "YAML config file (default " + cli.DefaultConfigFile + " when present)",
		},
		&urfavecli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (use - for stdout)",
		},
		&urfavecli.StringFlag{
			Name:  "format",
			Usage: fmt.Sprintf("Output format %v", report.SupportedFormats()),
		},
		&urfavecli.StringFlag{
			Name:  "title",
			Usage: "Report title",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Page theme",
		},
		&urfavecli.StringFlag{
			Name:  "themes-dir",
			Usage: "Directory with additional <theme>.css files",
		},
		&urfavecli.StringFlag{
			Name:  "chrome",
			Usage: "Path to the Chrome or Chromium executable",
		},
		&urfavecli.IntFlag{
			Name:  "width",
			Usage: "Browser window width in pixels",
		},
		&urfavecli.IntFlag{
			Name:  "height",
			Usage: "Browser window height in pixels",
		},
		&urfavecli.IntFlag{
			Name:  "quality",
			Usage: "JPEG quality of captured pages (1-100)",
		},
		&urfavecli.IntFlag{
			Name:  "parallel",
			Usage: "Maximum concurrent page captures (1 = sequential)",
		},
		&urfavecli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-statement timeout (0 disables)",
		},
		&urfavecli.IntFlag{
			Name:  "max-rows",
			Usage: "Maximum rows kept per result (0 = all)",
		},
		&urfavecli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug output",
		},
	}
}

// renderCommand handles 'sqlpdf render' and the bare 'sqlpdf' invocation
func renderCommand(ctx context.Context, cmd *urfavecli.Command) error {
	// Load configuration
	config, err := cli.LoadConfig(cmd.String("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Apply flags
	cli.ApplyFlagsToConfig(config, cli.Flags{
		DSN:        cmd.String("db"),
		Driver:     cmd.String("driver"),
		Output:     cmd.String("output"),
		Format:     cmd.String("format"),
		Title:      cmd.String("title"),
		Theme:      cmd.String("theme"),
		ThemesDir:  cmd.String("themes-dir"),
		ChromePath: cmd.String("chrome"),
		Width:      cmd.Int("width"),
		Height:     cmd.Int("height"),
		Quality:    cmd.Int("quality"),
		Parallel:   cmd.Int("parallel"),
		Timeout:    cmd.Duration("timeout"),
		MaxRows:    cmd.Int("max-rows"),
		Verbose:    cmd.Bool("verbose"),
	})
	logger.SetVerbose(config.Verbose)

	// Validate configuration
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Input paths, default to current directory
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	exitCode, err := cli.Run(ctx, config, paths)
	if err != nil {
		return err
	}

	// Exit with appropriate code
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	return nil
}

// splitCommand handles 'sqlpdf split'
func splitCommand(ctx context.Context, cmd *urfavecli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return cli.Split(paths, cmd.Bool("json"), os.Stdout)
}

// themesCommand handles 'sqlpdf themes'
func themesCommand(ctx context.Context, cmd *urfavecli.Command) error {
	names, err := render.Themes(cmd.String("themes-dir"))
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
