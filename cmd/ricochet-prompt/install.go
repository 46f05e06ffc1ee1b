package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/install"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register `serve --mcp` with the MCP clients installed on this machine",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home dir: %w", err)
		}
		binary, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
		cwd, err := filepath.Abs(a.cwd)
		if err != nil {
			return err
		}

		installed, err := install.Install(install.UserConfigPaths(home, runtime.GOOS), install.ServerEntry(binary, cwd), a.log)
		if err != nil {
			return err
		}
		for _, name := range installed {
			fmt.Printf("Configured %s\n", name)
		}
		return nil
	},
}
