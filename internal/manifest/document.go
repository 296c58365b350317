package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// indentUnit matches composer's own formatting.
const indentUnit = "    "

// Document is a JSON object document that keeps its keys in source order.
// JSON is decoded token by token into a yaml.v3 node tree, which preserves
// mapping order, and written back as JSON.
type Document struct {
	root *yaml.Node
}

// Entry is one key/value pair of a string-valued JSON object.
type Entry struct {
	Key   string
	Value string
}

// Parse decodes data into a Document. The data must be valid JSON whose
// top-level value is an object.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidManifest)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := readValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalidManifest)
	}
	return &Document{root: root}, nil
}

// readValue reads the next JSON value from dec as a node.
func readValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := newObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				value, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Content = append(obj.Content, newString(key), value)
			}
			_, err = dec.Token()
			return obj, err
		case '[':
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, item)
			}
			_, err = dec.Token()
			return seq, err
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return newString(v), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Bytes encodes the document as indented JSON with a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := writeNode(&b, d.root, 0); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// lookup walks path through nested objects. It returns nil when a key is
// missing or an intermediate value is not an object.
func (d *Document) lookup(path ...string) *yaml.Node {
	node := d.root
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		_, value := findKey(node, key)
		if value == nil {
			return nil
		}
		node = value
	}
	return node
}

// object returns the object at path, creating missing objects on the way.
func (d *Document) object(path ...string) (*yaml.Node, error) {
	node := d.root
	for i, key := range path {
		_, value := findKey(node, key)
		if value == nil {
			value = newObject()
			node.Content = append(node.Content, newString(key), value)
		}
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s", ErrNotObject, strings.Join(path[:i+1], "."))
		}
		node = value
	}
	return node, nil
}

// Has reports whether a value exists at path.
func (d *Document) Has(path ...string) bool {
	return d.lookup(path...) != nil
}

// String returns the string value at path.
func (d *Document) String(path ...string) (string, bool) {
	n := d.lookup(path...)
	if n == nil || !isString(n) {
		return "", false
	}
	return n.Value, true
}

// Entries returns the string-valued members of the object at path in
// document order. Members with non-string values are skipped.
func (d *Document) Entries(path ...string) []Entry {
	n := d.lookup(path...)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var out []Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		if isString(n.Content[i+1]) {
			out = append(out, Entry{Key: n.Content[i].Value, Value: n.Content[i+1].Value})
		}
	}
	return out
}

// Keys returns the member names of the object at path in document order.
func (d *Document) Keys(path ...string) []string {
	n := d.lookup(path...)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

// SetString sets the member key of the object at path to value. An
// existing member keeps its position; a new one is appended. Missing
// objects along path are created.
func (d *Document) SetString(value string, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrNotObject)
	}
	parent, err := d.object(path[:len(path)-1]...)
	if err != nil {
		return err
	}
	key := path[len(path)-1]
	if _, existing := findKey(parent, key); existing != nil {
		*existing = *newString(value)
		return nil
	}
	parent.Content = append(parent.Content, newString(key), newString(value))
	return nil
}

// Delete removes the value at path. It reports whether anything was removed.
func (d *Document) Delete(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	parent := d.lookup(path[:len(path)-1]...)
	if parent == nil || parent.Kind != yaml.MappingNode {
		return false
	}
	idx, _ := findKey(parent, path[len(path)-1])
	if idx < 0 {
		return false
	}
	parent.Content = append(parent.Content[:idx], parent.Content[idx+2:]...)
	return true
}

// findKey returns the index of the key node and the value node for key
// inside a mapping node, or (-1, nil).
func findKey(mapping *yaml.Node, key string) (int, *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i, mapping.Content[i+1]
		}
	}
	return -1, nil
}

func newString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

func newObject() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
}

func isString(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	return n.Tag == "!!str" || n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0
}

func writeNode(b *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			writeIndent(b, depth+1)
			if err := writeString(b, n.Content[i].Value); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := writeNode(b, n.Content[i+1], depth+1); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[\n")
		for i, item := range n.Content {
			writeIndent(b, depth+1)
			if err := writeNode(b, item, depth+1); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case yaml.ScalarNode:
		if isString(n) {
			return writeString(b, n.Value)
		}
		b.WriteString(n.Value)
	default:
		return fmt.Errorf("%w: unsupported node kind %d at line %d", ErrInvalidManifest, n.Kind, n.Line)
	}
	return nil
}

// writeString writes s as a JSON string without HTML or slash escaping,
// the way composer writes package names and namespaces.
func writeString(b *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func writeIndent(b *bytes.Buffer, depth int) {
	for range depth {
		b.WriteString(indentUnit)
	}
}
