/*
Package keybinds provides customizable keyboard binding management for the viewer.

# Contexts

  - Global: bindings available everywhere (ctrl+c force quit)
  - Normal: list/content view
  - TextInput: search query and tag editing
  - Help: help screen
  - Confirm: delete and quit confirmations

A key is looked up in the active context first, then in Global.

# Configuration File Format

Overrides live in keybinds.json next to config.toml. Each section maps an
action to a comma-separated key list; comments are allowed:

	{
	  // vim users rarely want the arrows
	  "normal": {
	    "navigate_down": "j",
	    "navigate_up": "k",
	    "add": "n"
	  },
	  "confirm": {
	    "confirm": "y,enter"
	  }
	}

Listing an action replaces its default keys in that context; actions not
listed keep their defaults.

# Validation

ValidateConfig rejects unknown actions, empty keys, and keys bound to two
actions in the same context. Rebinding ctrl+c is reported as a warning.
*/
package keybinds
