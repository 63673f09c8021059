package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // List/content view
	ContextTextInput Context = "text_input" // Search and tag editing
	ContextHelp      Context = "help"       // Help screen
	ContextConfirm   Context = "confirm"    // Delete/quit confirmation
)

// Contexts lists every context in display order
var Contexts = []Context{ContextGlobal, ContextNormal, ContextTextInput, ContextHelp, ContextConfirm}

const (
	// Global
	ActionQuitForce Action = "quit_force"

	// Normal mode
	ActionQuit         Action = "quit"
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionSwitchFocus  Action = "switch_focus"
	ActionOpenSearch   Action = "open_search"
	ActionEditTags     Action = "edit_tags"
	ActionDelete       Action = "delete"
	ActionOpenHelp     Action = "open_help"
	ActionAdd          Action = "add"
	ActionEdit         Action = "edit"
	ActionCopy         Action = "copy_to_clipboard"
	ActionReload       Action = "reload"

	// Text input
	ActionTextSubmit    Action = "text_submit"
	ActionTextCancel    Action = "text_cancel"
	ActionTextBackspace Action = "text_backspace"
	ActionTextClear     Action = "text_clear"
	ActionTextPaste     Action = "text_paste"

	// Help
	ActionCloseModal Action = "close_modal"
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"

	// Confirm
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// knownActions is used to validate user configuration
var knownActions = map[Action]bool{
	ActionQuitForce: true, ActionQuit: true,
	ActionNavigateUp: true, ActionNavigateDown: true,
	ActionPageUp: true, ActionPageDown: true,
	ActionGoToTop: true, ActionGoToBottom: true,
	ActionSwitchFocus: true, ActionOpenSearch: true, ActionEditTags: true,
	ActionDelete: true, ActionOpenHelp: true, ActionAdd: true, ActionEdit: true,
	ActionCopy: true, ActionReload: true,
	ActionTextSubmit: true, ActionTextCancel: true, ActionTextBackspace: true,
	ActionTextClear: true, ActionTextPaste: true,
	ActionCloseModal: true, ActionScrollUp: true, ActionScrollDown: true,
	ActionConfirm: true, ActionCancel: true,
}

// IsKnownAction reports whether a is handled by the viewer
func IsKnownAction(a Action) bool {
	return knownActions[a]
}
