package static

import (
	"embed"
	"io/fs"
)

// PageHTML is the html/template source of the cat page.
//
//go:embed templates/page.html
var PageHTML string

//go:embed assets/*
var assets embed.FS

// Assets returns the stylesheet and carousel script rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err) // the directory is embedded above
	}
	return sub
}
