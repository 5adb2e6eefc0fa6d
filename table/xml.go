package table

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/lmoureaux/addresstable/reg"
)

// xmlNode mirrors one <node> element of an XML address table.
type xmlNode struct {
	ID          string    `xml:"id,attr"`
	Address     string    `xml:"address,attr"`
	Mask        string    `xml:"mask,attr"`
	Permission  string    `xml:"permission,attr"`
	Description string    `xml:"description,attr"`
	Generate    string    `xml:"generate,attr"`
	GenSize     string    `xml:"generate_size,attr"`
	GenStep     string    `xml:"generate_address_step,attr"`
	GenIdxVar   string    `xml:"generate_idx_var,attr"`
	Children    []xmlNode `xml:"node"`
}

// LoadXML reads an XML address table from a file.
func LoadXML(path string) (*reg.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("table: %s: %w", path, err)
	}
	return n, nil
}

// ParseXML reads an XML address table.
//
// The document is a tree of <node> elements. Addresses are relative to the
// parent node and accumulate down the tree. A childless node is a register:
// mask defaults to the full word, permission is any subset of "r" and "w".
// A node with generate="true" repeats its content generate_size times,
// generate_address_step apart; the ${generate_idx_var} placeholder (and a
// preceding underscore) is stripped from its id. Any other node with
// children is a plain group.
//
// Tables in the wild declare single-byte encodings such as ISO-8859-1 in
// the XML prolog; the decoder resolves them by IANA name.
func ParseXML(r io.Reader) (*reg.Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := ianaindex.IANA.Encoding(charset)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("table: unsupported document charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("table: parse xml: %w", err)
	}
	node, _, err := buildXMLNode(root, 0)
	return node, err
}

// buildXMLNode converts one element into a schema node and its field name.
// base is the absolute address of the parent.
func buildXMLNode(x xmlNode, base uint32) (*reg.Node, string, error) {
	addr := base
	if x.Address != "" {
		rel, err := parseUint(x.Address)
		if err != nil {
			return nil, "", fmt.Errorf("node %q: %w", x.ID, err)
		}
		addr += rel
	}

	name, err := xmlNodeName(x)
	if err != nil {
		return nil, "", err
	}

	var node *reg.Node
	switch {
	case len(x.Children) == 0:
		node, err = buildXMLLeaf(x, addr)
	default:
		node, err = buildXMLGroup(x, addr)
	}
	if err != nil {
		return nil, "", err
	}

	if strings.EqualFold(x.Generate, "true") {
		node, err = buildXMLArray(x, node)
		if err != nil {
			return nil, "", err
		}
	}
	return node, name, nil
}

func buildXMLLeaf(x xmlNode, addr uint32) (*reg.Node, error) {
	mask := reg.FullMask
	if x.Mask != "" {
		m, err := parseUint(x.Mask)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", x.ID, err)
		}
		mask = m
	}
	canRead, canWrite := parsePermission(x.Permission)
	node, err := reg.NewLeaf(reg.Register{
		Addr:     addr,
		Mask:     mask,
		CanRead:  canRead,
		CanWrite: canWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", x.ID, err)
	}
	return node, nil
}

func buildXMLGroup(x xmlNode, addr uint32) (*reg.Node, error) {
	fields := make([]reg.Field, 0, len(x.Children))
	for _, child := range x.Children {
		node, name, err := buildXMLNode(child, addr)
		if err != nil {
			return nil, err
		}
		fields = append(fields, reg.F(name, node))
	}
	group, err := reg.NewGroup(fields...)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", x.ID, err)
	}
	return group, nil
}

func buildXMLArray(x xmlNode, elem *reg.Node) (*reg.Node, error) {
	if x.GenSize == "" {
		return nil, fmt.Errorf("node %q: generate without generate_size", x.ID)
	}
	count, err := parseUint(x.GenSize)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", x.ID, err)
	}
	var step uint32
	if x.GenStep != "" {
		step, err = parseUint(x.GenStep)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", x.ID, err)
		}
	}
	arr, err := reg.NewArray(int(count), step, elem)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", x.ID, err)
	}
	return arr, nil
}

// xmlNodeName derives the field name, stripping the generate index
// placeholder (for example "OH_${N}" with generate_idx_var="N" becomes
// "OH").
func xmlNodeName(x xmlNode) (string, error) {
	id := x.ID
	if strings.EqualFold(x.Generate, "true") && x.GenIdxVar != "" {
		re, err := regexp.Compile(`_?\$\{` + regexp.QuoteMeta(x.GenIdxVar) + `\}`)
		if err != nil {
			return "", fmt.Errorf("node %q: bad generate_idx_var: %w", x.ID, err)
		}
		id = re.ReplaceAllString(id, "")
	}
	return fieldName(id)
}
