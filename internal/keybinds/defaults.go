package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerTextInputBindings(r)
	registerHelpBindings(r)
	registerConfirmBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)
	r.Register(ContextNormal, "tab", ActionSwitchFocus)

	// Navigation
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.Register(ContextNormal, "home", ActionGoToTop)
	r.Register(ContextNormal, "end", ActionGoToBottom)

	// Modes
	r.RegisterMultiple(ContextNormal, []string{"s", "/"}, ActionOpenSearch)
	r.Register(ContextNormal, "t", ActionEditTags)
	r.Register(ContextNormal, "d", ActionDelete)
	r.Register(ContextNormal, "?", ActionOpenHelp)

	// Gist operations
	r.Register(ContextNormal, "a", ActionAdd)
	r.Register(ContextNormal, "e", ActionEdit)
	r.Register(ContextNormal, "y", ActionCopy)
	r.Register(ContextNormal, "r", ActionReload)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.Register(ContextTextInput, "backspace", ActionTextBackspace)
	r.Register(ContextTextInput, "ctrl+k", ActionTextClear)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextHelp, "pgup", ActionPageUp)
	r.Register(ContextHelp, "pgdown", ActionPageDown)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"esc", "n", "N"}, ActionCancel)
}
