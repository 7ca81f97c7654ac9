package theme

import "embed"

// EmbeddedThemes ships the built-in themes under defaults/.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
