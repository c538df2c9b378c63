package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/merrow/gtdvault/internal"
	"github.com/merrow/gtdvault/internal/vault"
	pkgconfig "github.com/merrow/gtdvault/pkg/config"
)

// loadConfig reads the config file named by --config. A missing file is
// only an error when the flag was set explicitly; otherwise the
// defaults stand.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadIfPresent(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found && cmd.IsSet("config") {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}
	return cfg, nil
}

// vaultTarget resolves the vault a subcommand works on: the --vault
// flag when given, the configured vault otherwise.
func vaultTarget(cmd *cli.Command, cfg *internal.Config) string {
	if p := cmd.String("vault"); p != "" {
		return p
	}
	return cfg.Vault.Path
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func setup(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := vault.Setup(vaultTarget(cmd, cfg), cfg.Vault.Folder)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func capture(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := vault.Capture(vaultTarget(cmd, cfg), cfg.Vault.Folder, cmd.String("text"))
	if err != nil {
		return err
	}
	return printJSON(report)
}

func check(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := vault.Check(ctx, vaultTarget(cmd, cfg), cfg.Vault.Folder)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	vaultFlag := &cli.StringFlag{
		Name:  "vault",
		Usage: "Vault directory (defaults to the configured vault)",
	}

	cmd := &cli.Command{
		Name:   "gtdvault",
		Usage:  "GTD vault MCP server for Markdown knowledge bases",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve MCP over stdio (the default action)",
				Action: serve,
			},
			{
				Name:   "setup",
				Usage:  "Create the GTD folder structure in a vault",
				Flags:  []cli.Flag{vaultFlag},
				Action: setup,
			},
			{
				Name:  "capture",
				Usage: "Capture one thought into the vault inbox",
				Flags: []cli.Flag{
					vaultFlag,
					&cli.StringFlag{
						Name:     "text",
						Usage:    "Text to capture",
						Required: true,
					},
				},
				Action: capture,
			},
			{
				Name:   "check",
				Usage:  "Validate header fields across the vault's GTD files",
				Flags:  []cli.Flag{vaultFlag},
				Action: check,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
