// Package notebook provides a minimal document model for notebook files:
// just enough structure to enumerate cells, tag them through metadata, and
// upsert stamp cells, while preserving every field it doesn't understand.
package notebook

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Document is a parsed notebook. Cells and metadata are held as generic JSON
// structures so that a read-stamp-write cycle preserves fields the model
// doesn't interpret (outputs, execution counts, format versions).
type Document struct {
	// root is the top-level notebook object.
	root map[string]interface{}
}

// Parse parses a notebook document from raw bytes.
func Parse(data []byte) (*Document, error) {
	root := make(map[string]interface{})
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "unable to decode notebook")
	}
	if _, ok := root["cells"]; !ok {
		return nil, errors.New("notebook has no cell list")
	}
	return &Document{root: root}, nil
}

// Read loads and parses the notebook document at the specified path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read notebook")
	}
	return Parse(data)
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", " ")
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode notebook")
	}
	return append(data, '\n'), nil
}

// Write serializes the document to the specified path.
func (d *Document) Write(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "unable to write notebook")
	}
	return nil
}

// cells returns the document's cell list. The boolean return value indicates
// whether or not the list was structurally valid.
func (d *Document) cells() ([]interface{}, bool) {
	cells, ok := d.root["cells"].([]interface{})
	return cells, ok
}

// taggedCellIndex locates the cell whose metadata name matches the specified
// tag, returning -1 if no such cell exists.
func (d *Document) taggedCellIndex(tag string) int {
	cells, ok := d.cells()
	if !ok {
		return -1
	}
	for i, c := range cells {
		cell, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		metadata, ok := cell["metadata"].(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := metadata["name"].(string); ok && name == tag {
			return i
		}
	}
	return -1
}

// TaggedCellCount returns the number of cells whose metadata name matches the
// specified tag.
func (d *Document) TaggedCellCount(tag string) int {
	cells, ok := d.cells()
	if !ok {
		return 0
	}
	var count int
	for _, c := range cells {
		cell, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		metadata, ok := cell["metadata"].(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := metadata["name"].(string); ok && name == tag {
			count++
		}
	}
	return count
}

// TaggedCellSource returns the source of the cell carrying the specified tag,
// or an empty string if no such cell exists.
func (d *Document) TaggedCellSource(tag string) string {
	index := d.taggedCellIndex(tag)
	if index < 0 {
		return ""
	}
	cells, _ := d.cells()
	cell, ok := cells[index].(map[string]interface{})
	if !ok {
		return ""
	}
	switch source := cell["source"].(type) {
	case string:
		return source
	case []interface{}:
		var joined string
		for _, line := range source {
			if s, ok := line.(string); ok {
				joined += s
			}
		}
		return joined
	default:
		return ""
	}
}

// Stamp upserts a markdown cell carrying the specified metadata tag. If a
// cell with the tag exists, only its source is replaced; otherwise a new
// non-deletable, non-editable cell is appended. The operation is idempotent:
// at most one cell carries a given tag afterwards.
func (d *Document) Stamp(tag, source string) {
	if index := d.taggedCellIndex(tag); index >= 0 {
		cells, _ := d.cells()
		if cell, ok := cells[index].(map[string]interface{}); ok {
			cell["source"] = source
			return
		}
	}

	cells, _ := d.cells()
	cell := map[string]interface{}{
		"cell_type": "markdown",
		"metadata": map[string]interface{}{
			"name":      tag,
			"deletable": false,
			"editable":  false,
		},
		"source": source,
	}
	d.root["cells"] = append(cells, cell)
}
