package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/gist/internal/config"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gist",
	Short: "Gist - personal code snippet store",
	Long: `Gist keeps code snippets in a local SQLite database with an interactive viewer.

Run without arguments to start the viewer.

Examples:
  gist                                 # Start interactive viewer
  gist add -t "go, http" main.go       # Save a file with tags
  echo "SELECT 1;" | gist add          # Save from stdin
  gist add                             # Write a new gist in $EDITOR
  gist search docker                   # Search content and tags
  gist list -n 20 -o yaml              # List as YAML
  gist list --query "[].id"            # JMESPath over the JSON listing
  gist export backup.yaml              # Export everything`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd)
	},
}

var addCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Add a gist from arguments, a file, stdin or the editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a gist in the editor, optionally replacing its tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, args[0])
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Show a gist (pick one interactively when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd, args)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a gist",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args[0])
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search gists by content and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, args[0])
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent gists",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the interactive viewer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all gists (YAML for .yaml/.yml, JSON otherwise, - for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import gists from an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0])
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd)
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compact the database and refresh its statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOptimize(cmd)
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show viewer keybindings or write keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeys(cmd)
	},
}

// Flags for add/update
var (
	flagTags      string
	flagFile      string
	flagNoSuggest bool
)

// Flags for view/delete/import
var (
	flagCopy  bool
	flagForce bool
	flagYes   bool
)

// Flags for search/list
var (
	flagTagsOnly bool
	flagFuzzy    bool
	flagLimit    int
	flagSortBy   string
	flagOutput   string
	flagQuery    string
)

// Flags for config
var (
	flagEditor         string
	flagAutoTags       bool
	flagAPIKey         string
	flagTheme          string
	flagDefaultTags    string
	flagModel          string
	flagBaseURL        string
	flagMessageTimeout int
	flagShow           bool
)

// Flags for keys
var (
	flagKeysInit bool
)

func init() {
	addCmd.Flags().StringVarP(&flagTags, "tags", "t", "", "Comma separated tags (skips suggestion)")
	addCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Read content from file")
	addCmd.Flags().BoolVar(&flagNoSuggest, "no-suggest", false, "Use default tags instead of suggesting")

	updateCmd.Flags().StringVarP(&flagTags, "tags", "t", "", "Replace tags (otherwise changed content gets suggested tags)")

	viewCmd.Flags().BoolVarP(&flagCopy, "copy", "c", false, "Copy content to clipboard")

	deleteCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Delete without confirmation")

	searchCmd.Flags().BoolVar(&flagTagsOnly, "tags-only", false, "Match tags only")
	searchCmd.Flags().BoolVar(&flagFuzzy, "fuzzy", false, "Fuzzy match and rank by score")
	searchCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	listCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of gists to show (0 for all)")
	listCmd.Flags().StringVarP(&flagSortBy, "sort-by", "s", "created", "Sort key (created/id/tags)")
	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression applied to the JSON listing")

	importCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")

	configCmd.Flags().StringVar(&flagEditor, "editor", "", "Editor command")
	configCmd.Flags().BoolVar(&flagAutoTags, "auto-tags", true, "Suggest tags for new gists")
	configCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for tag suggestion")
	configCmd.Flags().StringVar(&flagTheme, "theme", "", "Viewer theme (dark/light/system)")
	configCmd.Flags().StringVar(&flagDefaultTags, "default-tags", "", "Comma separated default tags")
	configCmd.Flags().StringVar(&flagModel, "model", "", "Model used for tag suggestion")
	configCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Chat completions API base URL")
	configCmd.Flags().IntVar(&flagMessageTimeout, "message-timeout", 0, "Status message timeout in seconds")
	configCmd.Flags().BoolVar(&flagShow, "show", false, "Print current settings")

	keysCmd.Flags().BoolVar(&flagKeysInit, "init", false, "Write the active bindings to keybinds.json")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(keysCmd)
}

// initConfig prepares paths and loads settings; a broken config file falls
// back to defaults with a warning
func initConfig(cmd *cobra.Command) (config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.Load(config.ConfigFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}
	return settings, nil
}
