package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/scanner"
	"github.com/codescope/codescope/scanner/contracts"
	"github.com/codescope/codescope/scanner/models"
	"github.com/codescope/codescope/utils"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [path]",
	Short: "Build the codemap, extracted codebase and dependency report for a project",
	Long: `The 'snapshot' subcommand walks the project at the given path (the current
directory by default), renders its codemap, extracts every included file into
a flat timestamped bundle and writes the dependency report. With dependency
expansion enabled, each resolved library gets the same treatment.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleSnapshotCommand(rootDependencies, cmd, args)
	},
}

func init() {
	snapshotCmd.Flags().BoolP("interactive", "i", false, "Prompt for the libraries to expand instead of expanding all resolved ones")
	snapshotCmd.Flags().Bool("clean", false, "Remove a previous output directory for this project before writing")

	rootCmd.AddCommand(snapshotCmd)
}

func handleSnapshotCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {
	projectRoot := rootDependencies.Cwd
	if len(args) > 0 {
		projectRoot = args[0]
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid project path: %v", err)))
		os.Exit(1)
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	clean, _ := cmd.Flags().GetBool("clean")

	reader := bufio.NewReader(os.Stdin)

	analyzeDeps := rootDependencies.Config.AnalyzeDeps
	locator := rootDependencies.Locator
	if interactive {
		selection, err := utils.InputPrompt("Libraries to expand (comma-separated names, 'all', or Enter for none):", reader)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return
		}
		switch selection {
		case "":
			analyzeDeps = false
		case "all":
			analyzeDeps = true
		default:
			analyzeDeps = true
			locator = newSelectiveLocator(locator, strings.Split(selection, ","))
		}
	}

	outBase := filepath.Join(rootDependencies.Config.OutputDir, filepath.Base(projectRoot))
	if clean {
		if _, err := os.Stat(outBase); err == nil {
			accepted, err := utils.ConfirmPrompt(outBase, reader)
			if err != nil {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
				return
			}
			if !accepted {
				fmt.Println(lipgloss.Yellow.Render("Snapshot cancelled."))
				return
			}
			if err := os.RemoveAll(outBase); err != nil {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error cleaning output directory: %v", err)))
				return
			}
		}
	}

	runStamp := time.Now().Format("2006.01.02_15.04.05")
	runDir := filepath.Join(outBase, "codebase-"+runStamp)
	librariesDir := filepath.Join(outBase, "Libraries")

	sinks := func(label string) (contracts.IOutputSink, error) {
		if label == filepath.Base(projectRoot) {
			return scanner.NewDirectorySink(runDir)
		}
		return scanner.NewDirectorySink(filepath.Join(librariesDir, label))
	}

	orchestrator := scanner.NewSnapshotOrchestrator(
		rootDependencies.Filter,
		locator,
		sinks,
		analyzeDeps,
		rootDependencies.Config.DepthLimit,
	)

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerInstance, _ := spinner.Start("Building snapshot...")

	snapshot, err := orchestrator.Scan(projectRoot)

	spinnerInstance.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	printWarnings(snapshot)

	summary := fmt.Sprintf("✓ Snapshot of %s: %d files extracted, %d libraries found", snapshot.Name, len(snapshot.Files), len(snapshot.Libraries))
	if len(snapshot.Dependencies) > 0 {
		summary += fmt.Sprintf(", %d dependencies expanded", len(snapshot.Dependencies))
	}
	fmt.Println(lipgloss.Green.Render(summary))
	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Artifacts written to %s", runDir)))
}

// printWarnings surfaces every recovered condition of a run, including those
// of nested dependency snapshots.
func printWarnings(snapshot *models.Snapshot) {
	for _, warning := range snapshot.Warnings {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning %s", warning)))
	}
	for _, nested := range snapshot.Dependencies {
		printWarnings(nested)
	}
}

// selectiveLocator restricts resolution to the library names the user picked.
type selectiveLocator struct {
	inner contracts.ILibraryLocator
	names map[string]bool
}

func newSelectiveLocator(inner contracts.ILibraryLocator, names []string) *selectiveLocator {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		selected[strings.TrimSpace(name)] = true
	}
	return &selectiveLocator{inner: inner, names: selected}
}

func (l *selectiveLocator) Resolve(name string) (string, bool) {
	if !l.names[name] {
		return "", false
	}
	return l.inner.Resolve(name)
}
