package tui

import "github.com/moneta-cli/moneta/internal/api"

// Data loading messages.
type collectionsLoadedMsg struct {
	cols *api.Collections
	err  error
}
