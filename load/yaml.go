package load

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	assure "github.com/sporekit/assure"
)

// ParseYAML loads a registry from its YAML document form. yaml.Node mapping
// content preserves key order by construction, so the same ordering
// guarantees as ParseJSON apply. Numbers are carried as json.Number to share
// the JSON code path.
func ParseYAML(data []byte) (assure.Registry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("load: empty registry document")
	}
	doc, err := yamlMembers(root.Content[0])
	if err != nil {
		return nil, err
	}
	return buildRegistry(doc)
}

func yamlMembers(n *yaml.Node) ([]member, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("load: line %d: expected a mapping", n.Line)
	}
	out := make([]member, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolveAlias(n.Content[i])
		v, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, member{key: k.Value, val: v})
	}
	return out, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return yamlMembers(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return n.Value, nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return nil, fmt.Errorf("load: line %d: %w", n.Line, err)
			}
			return b, nil
		case "!!null":
			return nil, nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("load: line %d: unsupported node", n.Line)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
