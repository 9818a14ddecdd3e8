package layout

import (
	"embed"
	"io/fs"
)

//go:embed variants/*.yaml
var embeddedVariants embed.FS

// EmbeddedFS returns the bundled case variants.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedVariants, "variants")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the bundled variants.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
