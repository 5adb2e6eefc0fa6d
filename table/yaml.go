package table

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lmoureaux/addresstable/reg"
)

// num is an optional address table number. It decodes from the raw scalar
// text, so bare and quoted 0x/0b/decimal forms all work.
type num struct {
	set bool
	val uint32
}

func (n *num) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("table: expected a number, got a %v node", node.Kind)
	}
	v, err := parseUint(node.Value)
	if err != nil {
		return err
	}
	*n = num{set: true, val: v}
	return nil
}

// yamlNode mirrors one node of a YAML address table. The semantics match the
// XML format: addresses are relative to the parent, childless nodes are
// registers, count/step turn a node into an array.
type yamlNode struct {
	Name       string     `yaml:"name"`
	Address    num        `yaml:"address"`
	Mask       num        `yaml:"mask"`
	Permission string     `yaml:"permission"`
	Count      int        `yaml:"count"`
	Step       num        `yaml:"step"`
	Children   []yamlNode `yaml:"children"`
}

// LoadYAML reads a YAML address table from a file.
func LoadYAML(path string) (*reg.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("table: %s: %w", path, err)
	}
	return n, nil
}

// ParseYAML reads a YAML address table.
func ParseYAML(r io.Reader) (*reg.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var root yamlNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("table: parse yaml: %w", err)
	}
	node, _, err := buildYAMLNode(root, 0)
	return node, err
}

func buildYAMLNode(y yamlNode, base uint32) (*reg.Node, string, error) {
	addr := base + y.Address.val

	name, err := fieldName(y.Name)
	if err != nil {
		return nil, "", err
	}

	var node *reg.Node
	if len(y.Children) == 0 {
		node, err = buildYAMLLeaf(y, addr)
	} else {
		node, err = buildYAMLGroup(y, addr)
	}
	if err != nil {
		return nil, "", err
	}

	if y.Count != 0 {
		node, err = reg.NewArray(y.Count, y.Step.val, node)
		if err != nil {
			return nil, "", fmt.Errorf("node %q: %w", y.Name, err)
		}
	}
	return node, name, nil
}

func buildYAMLLeaf(y yamlNode, addr uint32) (*reg.Node, error) {
	mask := reg.FullMask
	if y.Mask.set {
		mask = y.Mask.val
	}
	canRead, canWrite := parsePermission(y.Permission)
	node, err := reg.NewLeaf(reg.Register{
		Addr:     addr,
		Mask:     mask,
		CanRead:  canRead,
		CanWrite: canWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", y.Name, err)
	}
	return node, nil
}

func buildYAMLGroup(y yamlNode, addr uint32) (*reg.Node, error) {
	fields := make([]reg.Field, 0, len(y.Children))
	for _, child := range y.Children {
		node, name, err := buildYAMLNode(child, addr)
		if err != nil {
			return nil, err
		}
		fields = append(fields, reg.F(name, node))
	}
	group, err := reg.NewGroup(fields...)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", y.Name, err)
	}
	return group, nil
}
