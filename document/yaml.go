package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document. Only the first
// document of a stream is used.
func DecodeYAML(data []byte, source string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		pe := &ParseError{Source: source, Text: err.Error()}
		// yaml.v3 messages look like "yaml: line 3: ..."
		var line int
		if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
			pe.Line = line
		}
		return nil, pe
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Source: source, Line: 1, Column: 1, Text: "empty document"}
	}
	return fromYAML(doc.Content[0], source, 0)
}

// maximum alias expansion depth
const maxAliasDepth = 32

func fromYAML(y *yaml.Node, source string, depth int) (*Node, error) {
	n := &Node{Line: y.Line, Column: y.Column}
	switch y.Kind {
	case yaml.AliasNode:
		if depth >= maxAliasDepth || y.Alias == nil {
			return nil, &ParseError{Source: source, Line: y.Line, Column: y.Column, Text: "alias nested too deeply"}
		}
		return fromYAML(y.Alias, source, depth+1)
	case yaml.MappingNode:
		n.Kind = Object
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, &ParseError{Source: source, Line: k.Line, Column: k.Column, Text: "mapping keys must be scalars"}
			}
			value, err := fromYAML(v, source, depth)
			if err != nil {
				return nil, err
			}
			n.Members = append(n.Members, Member{Key: k.Value, Value: value})
		}
	case yaml.SequenceNode:
		n.Kind = Array
		for _, item := range y.Content {
			value, err := fromYAML(item, source, depth)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, value)
		}
	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!null":
			n.Kind = Null
		case "!!bool":
			n.Kind = Bool
			var b bool
			if err := y.Decode(&b); err == nil {
				n.Bool = b
			}
		case "!!int":
			var i int64
			if err := y.Decode(&i); err != nil {
				return nil, &ParseError{Source: source, Line: y.Line, Column: y.Column, Text: err.Error()}
			}
			n.Kind = Integer
			n.Int = i
			n.Num = float64(i)
		case "!!float":
			var f float64
			if err := y.Decode(&f); err != nil {
				return nil, &ParseError{Source: source, Line: y.Line, Column: y.Column, Text: err.Error()}
			}
			n.Kind = Number
			n.Num = f
		default:
			n.Kind = String
			n.Str = y.Value
		}
	default:
		return nil, &ParseError{Source: source, Line: y.Line, Column: y.Column, Text: "unsupported yaml node"}
	}
	return n, nil
}
