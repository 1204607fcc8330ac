package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/config"
	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/scanner"
	"github.com/codescope/codescope/scanner/contracts"
)

// RootDependencies holds the collaborators every subcommand works with.
type RootDependencies struct {
	Cwd     string
	Config  *config.Config
	Filter  *scanner.RuleSet
	Locator contracts.ILibraryLocator
}

var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "Generate an LLM-ready snapshot of a software project",
	Long: `Codescope walks a project directory and produces a textual snapshot for
consumption by language models: a hierarchical codemap of the project
structure, a flat timestamped extraction of every included source file and a
report of the libraries the project imports, optionally repeated for each
resolved dependency.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and compiles the ignore rules. Any
// failure here is fatal: nothing is traversed on bad configuration.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)

	filter, err := scanner.LoadRules(cwd, cfg.IgnoreFile)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error loading ignore rules: %v", err)))
		os.Exit(1)
	}

	return &RootDependencies{
		Cwd:     cwd,
		Config:  cfg,
		Filter:  filter,
		Locator: scanner.NewHostLibraryLocator(cfg.LibraryPaths),
	}
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
