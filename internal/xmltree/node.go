package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed feed document: a label, its attributes,
// ordered child elements, and the text that precedes the first child.
// Labels are not unique among siblings.
type Node struct {
	Label    string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Parse decodes an XML document into a Node tree rooted at the document
// element.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no root element in document")
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{Label: start.Name.Local}
	if len(start.Attr) > 0 {
		n.Attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			// Only text before the first child counts as the node's text.
			if len(n.Children) == 0 {
				text.Write(t)
			}
		case xml.EndElement:
			n.Text = text.String()
			return n, nil
		}
	}
}
