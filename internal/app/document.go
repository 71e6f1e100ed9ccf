package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Document is the file a session edits.
type Document struct {
	// Path is the file path, empty for a scratch buffer.
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	// CRLF records that the file used CRLF line endings, so writing keeps
	// them.
	CRLF bool

	// NoEOL records that the last line had no newline.
	NoEOL bool
}

// NewScratchDocument creates a document with no file.
func NewScratchDocument() *Document {
	return &Document{Name: "Untitled"}
}

// IsScratch reports whether the document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// ReadDocument reads the file at path and splits it into lines. A
// missing file gives an empty document that writing will create.
func ReadDocument(path string) (*Document, []string, error) {
	doc := &Document{Path: path, Name: filepath.Base(path)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, []string{""}, nil
	}
	if err != nil {
		return nil, nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return doc, doc.split(string(data)), nil
}

// split breaks content into lines, recording the line ending style.
func (d *Document) split(content string) []string {
	if content == "" {
		return []string{""}
	}
	d.CRLF = strings.Contains(content, "\r\n")
	if d.CRLF {
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	if strings.HasSuffix(content, "\n") {
		content = content[:len(content)-1]
	} else {
		d.NoEOL = true
	}
	return strings.Split(content, "\n")
}

// Join renders lines as file content in the document's line ending style.
func (d *Document) Join(lines []string) string {
	eol := "\n"
	if d.CRLF {
		eol = "\r\n"
	}
	content := strings.Join(lines, eol)
	if !d.NoEOL {
		content += eol
	}
	return content
}

// Write writes lines to path, or to the document's own path when path is
// empty. Writing to a new path renames the document.
func (d *Document) Write(path string, lines []string) error {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(path, []byte(d.Join(lines)), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if d.Path == "" {
		d.Path = path
		d.Name = filepath.Base(path)
	}
	return nil
}
