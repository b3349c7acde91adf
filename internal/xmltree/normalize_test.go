package xmltree

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return root
}

func TestParse(t *testing.T) {
	t.Run("reads attributes, children, and text", func(t *testing.T) {
		root := mustParse(t, `<RECIPES date="20260823"><RECIPE id="1032" category="Entrees:Meat:Beef">Beef Stew</RECIPE></RECIPES>`)

		if root.Label != "RECIPES" {
			t.Errorf("Label = %q, want RECIPES", root.Label)
		}
		if root.Attrs["date"] != "20260823" {
			t.Errorf("Attrs[date] = %q, want 20260823", root.Attrs["date"])
		}
		if len(root.Children) != 1 {
			t.Fatalf("len(Children) = %d, want 1", len(root.Children))
		}

		child := root.Children[0]
		if child.Label != "RECIPE" {
			t.Errorf("child.Label = %q, want RECIPE", child.Label)
		}
		if child.Attrs["id"] != "1032" {
			t.Errorf("child.Attrs[id] = %q, want 1032", child.Attrs["id"])
		}
		if child.Text != "Beef Stew" {
			t.Errorf("child.Text = %q, want Beef Stew", child.Text)
		}
	})

	t.Run("keeps only text before the first child", func(t *testing.T) {
		root := mustParse(t, `<ITEM>header<SUB>x</SUB>tail</ITEM>`)
		if root.Text != "header" {
			t.Errorf("Text = %q, want header", root.Text)
		}
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		if _, err := Parse([]byte(`<OPEN><NEVER></OPEN>`)); err == nil {
			t.Error("expected error for mismatched tags")
		}
		if _, err := Parse([]byte(``)); err == nil {
			t.Error("expected error for empty document")
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want interface{}
	}{
		{
			name: "empty node yields nil",
			doc:  `<EMPTY></EMPTY>`,
			want: nil,
		},
		{
			name: "whitespace-only text yields nil",
			doc:  "<EMPTY>\n\t   </EMPTY>",
			want: nil,
		},
		{
			name: "text-only leaf yields trimmed scalar",
			doc:  `<NAME>  Beef Stew  </NAME>`,
			want: "Beef Stew",
		},
		{
			name: "attributes seed the record",
			doc:  `<RECIPE id="1032" category="Entrees"></RECIPE>`,
			want: map[string]interface{}{"id": "1032", "category": "Entrees"},
		},
		{
			name: "attributes and text merge under the value key",
			doc:  `<RECIPE id="1032">Beef Stew</RECIPE>`,
			want: map[string]interface{}{"id": "1032", "value": "Beef Stew"},
		},
		{
			name: "single child stays scalar",
			doc:  `<DETAIL><NAME>Stew</NAME></DETAIL>`,
			want: map[string]interface{}{"NAME": "Stew"},
		},
		{
			name: "three same-label children become a list in source order",
			doc:  `<LIST><ITEM>a</ITEM><ITEM>b</ITEM><ITEM>c</ITEM></LIST>`,
			want: map[string]interface{}{
				"ITEM": []interface{}{"a", "b", "c"},
			},
		},
		{
			name: "child label colliding with an attribute promotes to list",
			doc:  `<NODE kind="attr"><kind>child</kind></NODE>`,
			want: map[string]interface{}{
				"kind": []interface{}{"attr", "child"},
			},
		},
		{
			name: "node text replaces a child named value",
			doc:  `<NODE>text<value>child</value></NODE>`,
			want: map[string]interface{}{"value": "text"},
		},
		{
			name: "nested structures recurse",
			doc:  `<A><B x="1"><C>deep</C></B></A>`,
			want: map[string]interface{}{
				"B": map[string]interface{}{
					"x": "1",
					"C": "deep",
				},
			},
		},
		{
			name: "empty children collapse to nil values",
			doc:  `<A><B></B></A>`,
			want: map[string]interface{}{"B": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(mustParse(t, tt.doc))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_textBeforeFirstChildOnly(t *testing.T) {
	// Matches element-tree semantics: tail text after a child is not the
	// node's own text.
	root := mustParse(t, `<NODE>lead<SUB>x</SUB>tail</NODE>`)
	got := Normalize(root)
	want := map[string]interface{}{
		"SUB":   "x",
		"value": "lead",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %#v, want %#v", got, want)
	}
}

func TestDocument(t *testing.T) {
	root := mustParse(t, `<RECIPES><RECIPE id="1">Stew</RECIPE></RECIPES>`)
	got := Document(root)

	wrapped, ok := got["RECIPES"].(map[string]interface{})
	if !ok {
		t.Fatalf("Document()[RECIPES] = %#v, want record", got["RECIPES"])
	}
	recipe, ok := wrapped["RECIPE"].(map[string]interface{})
	if !ok {
		t.Fatalf("RECIPE = %#v, want record", wrapped["RECIPE"])
	}
	if recipe["id"] != "1" || recipe["value"] != "Stew" {
		t.Errorf("RECIPE = %#v, want id=1 value=Stew", recipe)
	}
}
