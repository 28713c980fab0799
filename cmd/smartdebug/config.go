package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YakDriver/smartdebug"
	"github.com/YakDriver/smartdebug/internal"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
)

var startDir string
var baseDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective smartdebug configuration for a directory",
	Long: `This command prints the merged smartdebug configuration that would apply
at the specified directory path. It helps debug layered config resolution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if startDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			startDir = cwd
		}
		if baseDir == "" {
			return fmt.Errorf("--base-dir is required")
		}

		fmt.Printf("Loading configuration...\nStart dir: %s\nBase dir: %s\n", startDir, baseDir)

		fsys := smartdebug.NewWrappedFS(baseDir)
		relStartDir, err := filepath.Rel(baseDir, startDir)
		if err != nil {
			return fmt.Errorf("failed to relativize startDir: %w", err)
		}

		cfg, err := internal.LoadConfig(fsys, []string{relStartDir}, ".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Println("Merged config:")
		hclBytes, err := convertConfigToHCL(cfg)
		if err != nil {
			return fmt.Errorf("failed to convert config to HCL: %w", err)
		}
		fmt.Println(string(hclBytes))
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&startDir, "start-dir", "", "Starting directory for configuration traversal (default is current directory)")
	configCmd.Flags().StringVar(&baseDir, "base-dir", "", "Base directory to restrict traversal")
	rootCmd.AddCommand(configCmd)
}

func convertConfigToHCL(cfg *internal.Config) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	if cfg.Settings != nil {
		block := body.AppendNewBlock("smartdebug", nil)
		b := block.Body()
		if cfg.Settings.Debug != nil {
			b.SetAttributeValue("debug", cty.BoolVal(*cfg.Settings.Debug))
		}
		if cfg.Settings.SelfDebug != nil {
			b.SetAttributeValue("self_debug", cty.BoolVal(*cfg.Settings.SelfDebug))
		}
		if cfg.Settings.LogLevel != "" {
			b.SetAttributeValue("log_level", cty.StringVal(cfg.Settings.LogLevel))
		}
	}

	for _, probe := range cfg.Probes {
		block := body.AppendNewBlock("probe", []string{probe.Name})
		if probe.Enabled != nil {
			block.Body().SetAttributeValue("enabled", cty.BoolVal(*probe.Enabled))
		}
	}

	for _, group := range cfg.Groups {
		block := body.AppendNewBlock("group", []string{group.Name})
		if group.Enabled != nil {
			block.Body().SetAttributeValue("enabled", cty.BoolVal(*group.Enabled))
		}
	}

	return file.Bytes(), nil
}
