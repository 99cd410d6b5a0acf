// Package assets embeds the default word lists so the server runs
// without any word files configured.
package assets

import (
	"embed"
	"io"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

func open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}

// StartWords opens the embedded root word list.
func StartWords() (io.ReadCloser, error) {
	return open("start.txt")
}

// DictionaryWords opens the embedded dictionary list.
func DictionaryWords() (io.ReadCloser, error) {
	return open("dictionary.txt")
}
