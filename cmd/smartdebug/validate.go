package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YakDriver/smartdebug"
	"github.com/YakDriver/smartdebug/internal"
	"github.com/spf13/cobra"
)

var debugFlag bool

func init() {
	validateCmd.Flags().StringVar(&startDir, "start-dir", "", "Directory where code using smartdebug lives (default: current directory).")
	validateCmd.Flags().StringVar(&baseDir, "base-dir", "", "Parent directory the config filesystem is rooted at. If not set, config applies only to the current directory.")
	validateCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable smartdebug internal debug output (even if config fails to load)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate smartdebug configuration for a directory",
	Long:  `Validate the merged smartdebug configuration for a directory. Checks for parse errors, duplicate declarations, and invalid settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			internal.EnableDebugForce()
		}
		if baseDir == "" {
			fmt.Println("WARNING: --base-dir is not set. Config will only apply to the current directory.")
		}
		absBaseDir, err := filepath.Abs(baseDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute baseDir: %w", err)
		}
		absStartDir := startDir
		if absStartDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			absStartDir = cwd
		}
		absStartDir, err = filepath.Abs(absStartDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute startDir: %w", err)
		}

		fmt.Printf("Validating configuration...\nStart dir: %s\nBase dir: %s\n", absStartDir, absBaseDir)

		relStartDir, err := filepath.Rel(absBaseDir, absStartDir)
		if err != nil {
			return fmt.Errorf("failed to relativize startDir: %w", err)
		}
		if strings.HasPrefix(relStartDir, "..") {
			return fmt.Errorf("startDir must be inside baseDir")
		}

		fsys := smartdebug.NewWrappedFS(absBaseDir)
		cfg, err := internal.LoadConfig(fsys, []string{relStartDir}, ".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config load error: %v\n", err)
			return fmt.Errorf("config validation failed")
		}

		var allErrs []error
		var allWarnings []string

		errs, warnings := validateSettingsBlock(cfg)
		allErrs = append(allErrs, errs...)
		allWarnings = append(allWarnings, warnings...)

		errs, warnings = validateProbes(cfg)
		allErrs = append(allErrs, errs...)
		allWarnings = append(allWarnings, warnings...)

		errs, warnings = validateGroups(cfg)
		allErrs = append(allErrs, errs...)
		allWarnings = append(allWarnings, warnings...)

		fmt.Println("Merged config:")
		hclBytes, err := convertConfigToHCL(cfg)
		if err != nil {
			return fmt.Errorf("failed to convert config to HCL: %w", err)
		}
		fmt.Println(string(hclBytes))

		if len(allWarnings) > 0 {
			fmt.Println("\nWarnings:")
			for _, w := range allWarnings {
				fmt.Printf("  - %s\n", w)
			}
		}
		if len(allErrs) > 0 {
			fmt.Println("\nErrors:")
			for _, e := range allErrs {
				fmt.Printf("  - %s\n", e)
			}
			return fmt.Errorf("config validation failed (%d error(s))", len(allErrs))
		}

		fmt.Println("Config loaded and validated successfully.")
		return nil
	},
}

var validLogLevels = []string{"silent", "error", "warn", "info", "debug"}

// validateSettingsBlock checks smartdebug block fields for valid values.
func validateSettingsBlock(cfg *internal.Config) (errs []error, warnings []string) {
	if cfg.Settings == nil {
		warnings = append(warnings, "no smartdebug block found; global debug flag defaults to off")
		return
	}
	if cfg.Settings.LogLevel != "" {
		valid := false
		for _, lvl := range validLogLevels {
			if cfg.Settings.LogLevel == lvl {
				valid = true
				break
			}
		}
		if !valid {
			errs = append(errs, fmt.Errorf("smartdebug.log_level must be one of %s (got %q)",
				strings.Join(validLogLevels, ", "), cfg.Settings.LogLevel))
		}
	}
	return
}

// validateProbes checks for duplicate probe declarations and missing states.
func validateProbes(cfg *internal.Config) (errs []error, warnings []string) {
	seen := make(map[string]struct{})
	for _, p := range cfg.Probes {
		if _, ok := seen[p.Name]; ok {
			errs = append(errs, fmt.Errorf("probe %q is declared more than once", p.Name))
		}
		seen[p.Name] = struct{}{}
		if p.Enabled == nil {
			warnings = append(warnings, fmt.Sprintf("probe %q has no enabled attribute; registrations fall back to their own initial state", p.Name))
		}
	}
	return
}

// validateGroups checks for duplicate group declarations.
func validateGroups(cfg *internal.Config) (errs []error, warnings []string) {
	seen := make(map[string]struct{})
	for _, g := range cfg.Groups {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("group with empty name"))
			continue
		}
		if _, ok := seen[g.Name]; ok {
			errs = append(errs, fmt.Errorf("group %q is declared more than once", g.Name))
		}
		seen[g.Name] = struct{}{}
	}
	if _, ok := seen[smartdebug.GlobalGroup]; ok {
		warnings = append(warnings, fmt.Sprintf("group %q is declared explicitly; it gates every other group", smartdebug.GlobalGroup))
	}
	return
}
