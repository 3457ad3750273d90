package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/colordropper/config"
)

var (
	errConfigExists = errors.New("config file already exists, use --force to replace it")
	errNoConfigPath = errors.New("no default config directory, pass a file")
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(a.configSchemaCmd(), a.configInitCmd(), a.configShowCmd())

	return cmd
}

func (a *app) configSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			return writeString(cmd.OutOrStdout(), string(out)+"\n")
		},
	}
}

func (a *app) configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write the default configuration",
		Long: `init writes the default configuration to FILE, or to the default
configuration path when FILE is omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}

			if path == "" {
				return errNoConfigPath
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%s: %w", path, errConfigExists)
				}

				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat config: %w", err)
				}
			}

			err := config.Default().Save(path)
			if err != nil {
				return err
			}

			a.logger.Info("wrote config", slog.String("path", path))

			return writeString(cmd.OutOrStdout(), path+"\n")
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")

	return cmd
}

func (a *app) configShowCmd() *cobra.Command {
	var terminal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `show prints the configuration after reading the file and applying
command line overrides. With --terminal the picker settings are the ones the
terminal viewer uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.config.Load(terminal)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(f)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			return writeString(cmd.OutOrStdout(), string(out))
		},
	}

	cmd.Flags().BoolVar(&terminal, "terminal", false, "show the terminal viewer settings")

	return cmd
}
