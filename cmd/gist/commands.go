package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/studiowebux/gist/internal/cli"
	"github.com/studiowebux/gist/internal/config"
	"github.com/studiowebux/gist/internal/editor"
	"github.com/studiowebux/gist/internal/filter"
	"github.com/studiowebux/gist/internal/keybinds"
	"github.com/studiowebux/gist/internal/store"
	"github.com/studiowebux/gist/internal/tags"
	"github.com/studiowebux/gist/internal/tui"
	"github.com/studiowebux/gist/internal/types"
)

// suggestTimeout bounds the tag suggestion request made by add and update
const suggestTimeout = 15 * time.Second

// openStore loads settings and opens the database
func openStore(cmd *cobra.Command) (*store.Manager, config.Settings, error) {
	settings, err := initConfig(cmd)
	if err != nil {
		return nil, settings, err
	}

	mgr, err := store.NewManager(config.DatabasePath)
	if err != nil {
		return nil, settings, err
	}
	return mgr, settings, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid gist id '%s'", arg)
	}
	return id, nil
}

func notFound(id int64) error {
	return fmt.Errorf("Gist #%d not found", id)
}

// readContent picks the content source for add: --file, arguments, piped
// stdin, then the editor
func readContent(cmd *cobra.Command, args []string, settings config.Settings) (string, error) {
	switch {
	case flagFile != "":
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", flagFile, err)
		}
		return string(data), nil

	case len(args) > 0:
		return strings.Join(args, " "), nil

	case !cli.IsInteractive():
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}

	return editor.EditWithSettings(settings, "")
}

// runAdd saves a new gist
func runAdd(cmd *cobra.Command, args []string) error {
	mgr, settings, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	content, err := readContent(cmd, args, settings)
	if err != nil {
		return err
	}
	if err := editor.ValidateContent(content); err != nil {
		return err
	}

	var tagString string
	switch {
	case cmd.Flags().Changed("tags"):
		tagString = tags.Sanitize(flagTags)
	case flagNoSuggest:
		tagString = tags.Sanitize(settings.DefaultTagString())
	default:
		ctx, cancel := context.WithTimeout(cmd.Context(), suggestTimeout)
		defer cancel()
		tagString = tags.Sanitize(tags.NewSuggester(settings).Suggest(ctx, content))
	}

	id, err := mgr.Insert(content, tagString)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cli.PrintSuccess(out, fmt.Sprintf("Saved as gist #%d", id))
	if tagString != "" {
		fmt.Fprintf(out, "Tags: %s\n", tagString)
	}
	return nil
}

// runUpdate edits content in the editor. --tags replaces the tags; otherwise
// changed content gets suggested tags and unchanged content keeps its own.
func runUpdate(cmd *cobra.Command, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	mgr, settings, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	g, err := mgr.Get(id)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound(id)
	}

	content, err := editor.EditWithSettings(settings, g.Content)
	if err != nil {
		return err
	}
	if err := editor.ValidateContent(content); err != nil {
		return err
	}

	tagString := g.Tags
	switch {
	case cmd.Flags().Changed("tags"):
		tagString = tags.Sanitize(flagTags)
	case content == g.Content:
		fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
		return nil
	default:
		ctx, cancel := context.WithTimeout(cmd.Context(), suggestTimeout)
		defer cancel()
		if suggested := tags.Sanitize(tags.NewSuggester(settings).Suggest(ctx, content)); suggested != "" {
			tagString = suggested
		}
	}

	if err := mgr.Update(id, content, tagString); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(id)
		}
		return err
	}

	out := cmd.OutOrStdout()
	cli.PrintSuccess(out, fmt.Sprintf("Updated gist #%d", id))
	if tagString != g.Tags {
		fmt.Fprintf(out, "Tags: %s\n", tagString)
	}
	return nil
}

// runView prints one gist
func runView(cmd *cobra.Command, args []string) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	var id int64
	if len(args) == 1 {
		if id, err = parseID(args[0]); err != nil {
			return err
		}
	} else {
		if !cli.IsInteractive() {
			return fmt.Errorf("no gist id given")
		}
		gists, err := mgr.List(0, store.SortCreated)
		if err != nil {
			return err
		}
		if id, err = cli.SelectGist(gists); err != nil {
			return err
		}
	}

	g, err := mgr.Get(id)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound(id)
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.Display(*g))

	if flagCopy {
		if err := clipboard.WriteAll(g.Content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess(cmd.OutOrStdout(), "Copied to clipboard")
	}
	return nil
}

// runDelete removes a gist after confirmation
func runDelete(cmd *cobra.Command, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if !flagForce {
		g, err := mgr.Get(id)
		if err != nil {
			return err
		}
		if g == nil {
			return notFound(id)
		}
		fmt.Fprint(cmd.OutOrStdout(), cli.Preview(*g))
		if !cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete gist #%d?", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	found, err := mgr.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return notFound(id)
	}

	cli.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted gist #%d", id))
	return nil
}

// runSearch prints gists matching a query
func runSearch(cmd *cobra.Command, query string) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	var results []types.Gist
	if flagFuzzy {
		all, err := mgr.List(0, store.SortCreated)
		if err != nil {
			return err
		}
		results = fuzzySearch(all, query, flagTagsOnly)
	} else {
		if results, err = mgr.Search(query, flagTagsOnly); err != nil {
			return err
		}
	}

	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results found for '%s'.\n", query)
		return nil
	}

	out, err := cli.FormatList(results, flagOutput, "")
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// fuzzySearch ranks gists by fuzzy score; with tagsOnly the content is
// hidden from the matcher
func fuzzySearch(all []types.Gist, query string, tagsOnly bool) []types.Gist {
	if !tagsOnly {
		return filter.Rank(all, query)
	}

	reduced := make([]types.Gist, len(all))
	for i, g := range all {
		reduced[i] = types.Gist{ID: g.ID, Tags: g.Tags}
	}

	ranked := filter.Rank(reduced, query)
	out := make([]types.Gist, 0, len(ranked))
	for _, g := range ranked {
		if i := types.FindByID(all, g.ID); i >= 0 {
			out = append(out, all[i])
		}
	}
	return out
}

// runList prints recent gists
func runList(cmd *cobra.Command) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	gists, err := mgr.List(flagLimit, flagSortBy)
	if err != nil {
		return err
	}

	if len(gists) == 0 && flagQuery == "" && flagOutput == "text" {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved gists.")
		return nil
	}

	out, err := cli.FormatList(gists, flagOutput, flagQuery)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if flagQuery != "" {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// runUI starts the interactive viewer and reports whether anything changed
func runUI(cmd *cobra.Command) error {
	mgr, settings, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	gists, err := mgr.List(0, store.SortCreated)
	if err != nil {
		return err
	}
	if len(gists) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No gists found. Add some first!")
		return nil
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using default keybindings)\n", err)
	}

	var mirror []types.Gist
	result, err := tui.Run(tui.Options{
		Store:    mgr,
		Gists:    gists,
		Mirror:   &mirror,
		Settings: settings,
		Keybinds: registry,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result == tui.Modified {
		cli.PrintSuccess(out, "Changes saved successfully.")
		fmt.Fprintf(out, "%d gists stored\n", len(mirror))
	} else {
		fmt.Fprintln(out, "No changes made.")
	}
	return nil
}

// runExport writes every gist to path, or stdout for "-"
func runExport(cmd *cobra.Command, path string) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if path == "-" {
		_, err := mgr.Export(cmd.OutOrStdout(), "json")
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	count, err := mgr.Export(f, store.FormatForPath(path))
	if err != nil {
		return err
	}

	cli.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported %d gists to %s", count, path))
	return nil
}

// runImport loads gists from an export file
func runImport(cmd *cobra.Command, path string) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if !flagYes && cli.IsInteractive() {
		if !cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Import gists from %s?", path)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	count, err := mgr.Import(f, store.FormatForPath(path))
	if err != nil {
		return err
	}

	cli.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Imported %d gists", count))
	return nil
}

// runConfig applies changed flags and saves, or prints settings with --show
func runConfig(cmd *cobra.Command) error {
	settings, err := initConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false

	if flags.Changed("editor") {
		settings.Editor = flagEditor
		changed = true
	}
	if flags.Changed("auto-tags") {
		settings.AutoGenerateTags = flagAutoTags
		changed = true
	}
	if flags.Changed("api-key") {
		settings.TagAPIKey = flagAPIKey
		changed = true
	}
	if flags.Changed("theme") {
		if err := settings.SetTheme(flagTheme); err != nil {
			return err
		}
		changed = true
	}
	if flags.Changed("default-tags") {
		settings.DefaultTags = tags.Split(flagDefaultTags)
		changed = true
	}
	if flags.Changed("model") {
		settings.AIModel = flagModel
		changed = true
	}
	if flags.Changed("base-url") {
		settings.AIBaseURL = flagBaseURL
		changed = true
	}
	if flags.Changed("message-timeout") {
		if flagMessageTimeout <= 0 {
			return fmt.Errorf("message timeout must be positive")
		}
		settings.MessageTimeout = flagMessageTimeout
		changed = true
	}

	out := cmd.OutOrStdout()
	if changed {
		if err := config.Save(config.ConfigFile, settings); err != nil {
			return err
		}
		cli.PrintSuccess(out, fmt.Sprintf("Settings saved to %s", config.ConfigFile))
	}

	if flagShow || !changed {
		shown := settings
		if shown.TagAPIKey != "" {
			shown.TagAPIKey = maskKey(shown.TagAPIKey)
		}
		data, err := toml.Marshal(shown)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprintf(out, "# %s\n%s", config.ConfigFile, data)
		fmt.Fprintf(out, "# resolved editor: %s\n", config.ResolveEditor(settings.Editor))
	}
	return nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// runOptimize compacts the database
func runOptimize(cmd *cobra.Command) error {
	mgr, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Optimize(); err != nil {
		return err
	}
	cli.PrintSuccess(cmd.OutOrStdout(), "Database optimized")
	return nil
}

// runKeys prints bindings per context, or writes them with --init
func runKeys(cmd *cobra.Command) error {
	if _, err := initConfig(cmd); err != nil {
		return err
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using default keybindings)\n", err)
	}

	out := cmd.OutOrStdout()

	if flagKeysInit {
		if err := keybinds.SaveConfig(keybinds.ExportRegistry(registry), config.KeybindsFile); err != nil {
			return err
		}
		cli.PrintSuccess(out, fmt.Sprintf("Keybindings written to %s", config.KeybindsFile))
		return nil
	}

	for _, ctx := range keybinds.Contexts {
		fmt.Fprintf(out, "[%s]\n", ctx)
		for _, b := range registry.ListBindings(ctx) {
			fmt.Fprintf(out, "  %-14s %s\n", b.Key, b.Action)
		}
		fmt.Fprintln(out)
	}

	result := keybinds.NewValidator().ValidateRegistry(registry)
	if result.HasWarnings() || result.HasErrors() {
		fmt.Fprint(out, result.String())
	}
	return nil
}
