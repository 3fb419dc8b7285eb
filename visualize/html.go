package visualize

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

//go:embed template.html
var pageSource string

var page = template.Must(template.New("visualization").Parse(pageSource))

type pageData struct {
	Title string
	Tree  Record
}

// Render writes a standalone HTML page drawing the tree.
func Render(w io.Writer, title string, tree Record) error {
	if err := page.Execute(w, pageData{Title: title, Tree: tree}); err != nil {
		return fmt.Errorf("failed to render visualization: %w", err)
	}
	return nil
}

// WriteHTML renders the page to path and returns its absolute path.
func WriteHTML(path, title string, tree Record) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create visualization file: %w", err)
	}
	defer f.Close()
	if err := Render(f, title, tree); err != nil {
		return "", err
	}
	return abs, nil
}

// WriteJSON writes the tree as indented JSON.
func WriteJSON(w io.Writer, tree Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return nil
}
