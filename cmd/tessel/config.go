package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tessel/internal/config"
	"github.com/vango-dev/tessel/internal/errors"
)

func configCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect tessel.json",
	}
	cmd.PersistentFlags().StringVarP(&dir, "dir", "d", ".", "Directory holding tessel.json")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a tessel.json with every default spelled out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil {
				if !force {
					return errors.Newf(errors.CategoryConfig, "%s already exists (use --force to overwrite)", path)
				}
				console{cmd.OutOrStdout()}.warn("Overwriting %s", path)
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			console{cmd.OutOrStdout()}.success("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration tessel.json resolves to, defaults included.
A missing file prints the defaults. Invalid files are reported and
exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(dir)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
