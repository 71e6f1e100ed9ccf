package register

import "github.com/atotto/clipboard"

// SystemClipboard reads and writes the operating system clipboard.
type SystemClipboard struct{}

// Get returns the current clipboard content.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set replaces the clipboard content.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}

// Available reports whether a clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
