package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codescope/codescope/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version      string   `mapstructure:"version"`
	Theme        string   `mapstructure:"theme"`
	OutputDir    string   `mapstructure:"output_dir"`
	IgnoreFile   string   `mapstructure:"ignore_file"`
	AnalyzeDeps  bool     `mapstructure:"analyze_deps"`
	DepthLimit   int      `mapstructure:"depth_limit"`
	LibraryPaths []string `mapstructure:"library_paths"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "0.3.0",
	Theme:        "dracula",
	OutputDir:    "codescope-out",
	IgnoreFile:   ".codescopeignore",
	AnalyzeDeps:  false,
	DepthLimit:   1,
	LibraryPaths: nil,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("codescope-config") // Name of config file (without extension)
		viper.AddConfigPath(cwd)                // Look in the current working directory

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// Neither format found, continue with defaults
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("output_dir", DefaultConfig.OutputDir)
	viper.SetDefault("ignore_file", DefaultConfig.IgnoreFile)
	viper.SetDefault("analyze_deps", DefaultConfig.AnalyzeDeps)
	viper.SetDefault("depth_limit", DefaultConfig.DepthLimit)
	viper.SetDefault("library_paths", DefaultConfig.LibraryPaths)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("output_dir", "OUTPUT_DIR")
	_ = viper.BindEnv("ignore_file", "IGNORE_FILE")
	_ = viper.BindEnv("analyze_deps", "ANALYZE_DEPS")
	_ = viper.BindEnv("depth_limit", "DEPTH_LIMIT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output_dir"))
	_ = viper.BindPFlag("ignore_file", rootCmd.PersistentFlags().Lookup("ignore_file"))
	_ = viper.BindPFlag("analyze_deps", rootCmd.PersistentFlags().Lookup("analyze_deps"))
	_ = viper.BindPFlag("depth_limit", rootCmd.PersistentFlags().Lookup("depth_limit"))
	_ = viper.BindPFlag("library_paths", rootCmd.PersistentFlags().Lookup("library_paths"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the theme used when printing artifacts to the terminal. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().String("output_dir", DefaultConfig.OutputDir, "Directory the snapshot artifacts are written into.")
	rootCmd.PersistentFlags().String("ignore_file", DefaultConfig.IgnoreFile, "Ignore-pattern file merged over the built-in defaults.")
	rootCmd.PersistentFlags().Bool("analyze_deps", DefaultConfig.AnalyzeDeps, "Expand resolved dependencies into nested snapshots.")
	rootCmd.PersistentFlags().Int("depth_limit", DefaultConfig.DepthLimit, "Recursion depth limit for dependency expansion.")
	rootCmd.PersistentFlags().StringSlice("library_paths", DefaultConfig.LibraryPaths, "Install roots searched when resolving libraries (defaults to the host's conventional locations).")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
