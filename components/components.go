// Package components links every built-in component type into the binary.
// Each component package registers itself with the default registry from its
// init function; importing this package pulls them all in.
package components

import (
	_ "github.com/vk/pipeweld/components/blackhole"
	_ "github.com/vk/pipeweld/components/console"
	_ "github.com/vk/pipeweld/components/demologs"
	_ "github.com/vk/pipeweld/components/fileenrichment"
	_ "github.com/vk/pipeweld/components/filter"
	_ "github.com/vk/pipeweld/components/httpprovider"
	_ "github.com/vk/pipeweld/components/remap"
)
