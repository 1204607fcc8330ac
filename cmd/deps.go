package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/scanner"
	"github.com/codescope/codescope/scanner/contracts"
)

var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "Print the dependency report for a project without writing artifacts",
	Long: `The 'deps' subcommand scans the project at the given path (the current
directory by default) and prints the imported libraries with their
referencing files and resolved install paths. Nothing is written to disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleDepsCommand(rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func handleDepsCommand(rootDependencies *RootDependencies, args []string) {
	projectRoot := rootDependencies.Cwd
	if len(args) > 0 {
		projectRoot = args[0]
	}

	// Depth 0: resolve install paths for the report, never expand.
	orchestrator := scanner.NewSnapshotOrchestrator(
		rootDependencies.Filter,
		rootDependencies.Locator,
		func(string) (contracts.IOutputSink, error) { return scanner.NewMemorySink(), nil },
		true,
		0,
	)

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerInstance, _ := spinner.Start("Analyzing dependencies...")

	snapshot, err := orchestrator.Scan(projectRoot)

	spinnerInstance.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	printWarnings(snapshot)

	if len(snapshot.Libraries) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No imported libraries found."))
		return
	}
	fmt.Println(lipgloss.BoxStyle.Render(scanner.RenderDependencyReport(snapshot)))
}
