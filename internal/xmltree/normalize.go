package xmltree

import "strings"

// ValueKey is the reserved record key that holds a node's leftover text
// when the node also carries attributes or children.
const ValueKey = "value"

// Normalize converts a node into a generic record. It returns nil for an
// empty node, the trimmed text for a text-only leaf, and otherwise a
// map[string]interface{} whose values are strings, nested records, or
// ordered lists.
//
// Attributes seed the record. Each child is normalized in order and assigned
// under its label; a label that is already present promotes the existing
// value to a list (or appends to one), so a field is a list exactly when its
// label repeated among the children. Trailing text is assigned to ValueKey
// last and replaces any same-named entry.
func Normalize(n *Node) interface{} {
	rec := make(map[string]interface{}, len(n.Attrs)+len(n.Children))
	for k, v := range n.Attrs {
		rec[k] = v
	}

	for _, child := range n.Children {
		val := Normalize(child)
		existing, ok := rec[child.Label]
		if !ok {
			rec[child.Label] = val
			continue
		}
		if list, ok := existing.([]interface{}); ok {
			rec[child.Label] = append(list, val)
		} else {
			rec[child.Label] = []interface{}{existing, val}
		}
	}

	text := strings.TrimSpace(n.Text)
	if text != "" {
		if len(rec) == 0 {
			return text
		}
		rec[ValueKey] = text
	}

	if len(rec) == 0 {
		return nil
	}
	return rec
}

// Document wraps a normalized root under its own label, the shape every
// feed response is delivered in: {rootTag: record}.
func Document(root *Node) map[string]interface{} {
	return map[string]interface{}{root.Label: Normalize(root)}
}
