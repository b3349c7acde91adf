// Package catalogfile loads the local catalog XML snapshot.
package catalogfile

import (
	"fmt"
	"os"

	"github.com/dinetrack/backend/internal/xmltree"
)

// Load reads and parses a catalog file into its root node.
func Load(path string) (*xmltree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return root, nil
}
