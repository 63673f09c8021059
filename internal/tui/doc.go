/*
Package tui implements the interactive gist viewer.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all viewer state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, modes and message types
  - init.go: Construction, Run and list reconciliation helpers
  - keys.go: Keyboard input handling and keybind routing per mode
  - actions.go: Navigation, editor invocation and worker results
  - render.go: List/content layout, status bar, confirmation and help

# State Management

The model keeps one authoritative list (all) and a derived filtered view
recomputed from the applied search query. A caller-owned mirror slice is
rewritten whenever a worker result changes all, so the caller sees the
post-session list without touching the store.

# Modes

  - ModeNormal: list navigation and gist operations
  - ModeSearch / ModeTagEdit: one-line prompts in the status bar
  - ModeHelp: full-screen scrollable key reference
  - ModeConfirm: centered dialog for delete and quit

# Threading Model

The store belongs to a worker.Worker once the viewer starts. Add, update,
delete and reload requests are queued on it and a 100ms tick drains finished
results back into the model in submission order. Only one mutation may be
outstanding at a time.

The external editor runs through tea.ExecProcess, which releases the terminal
for the editor and restores the alternate screen afterwards.

# Example Usage

	var mirror []types.Gist
	result, err := tui.Run(tui.Options{
		Store:    mgr,
		Gists:    gists,
		Mirror:   &mirror,
		Settings: settings,
	})
	if err != nil {
		log.Fatal(err)
	}
	if result == tui.Modified {
		fmt.Println("Changes saved successfully.")
	}
*/
package tui
