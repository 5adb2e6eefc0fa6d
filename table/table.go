// Package table loads register map schemas from address table files.
//
// Two formats are supported: the XML address tables used by firmware
// register map generators (nested <node> elements with address, mask,
// permission and generate attributes) and a YAML equivalent. Both produce a
// validated *reg.Node schema.
package table

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lmoureaux/addresstable/reg"
)

// Load reads an address table, choosing the format by file extension
// (.xml for XML, .yml/.yaml for YAML).
func Load(path string) (*reg.Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return LoadXML(path)
	case ".yml", ".yaml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("table: %s: unknown address table extension", path)
	}
}

// parseUint parses an address table number: 0x hex, 0b binary, else decimal.
func parseUint(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 32)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		v, err = strconv.ParseUint(s[2:], 2, 32)
	default:
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("table: bad number %q: %w", s, err)
	}
	return uint32(v), nil
}

// parsePermission maps a permission string ("r", "w", "rw", ...) onto the
// two capability booleans.
func parsePermission(s string) (canRead, canWrite bool) {
	return strings.ContainsRune(s, 'r'), strings.ContainsRune(s, 'w')
}

// fieldName turns an address table id into a schema field name. Names that
// would collide with path syntax (leading digits, embedded dots) get a reg_
// prefix, mirroring what the table generators do for identifiers.
func fieldName(id string) (string, error) {
	name := strings.TrimSpace(id)
	if name == "" {
		return "", fmt.Errorf("table: node has an empty id")
	}
	if !validName(name) {
		name = "reg_" + strings.Map(func(r rune) rune {
			if r == '.' || r == ' ' {
				return '_'
			}
			return r
		}, name)
	}
	if !validName(name) {
		return "", fmt.Errorf("table: cannot turn id %q into a field name", id)
	}
	return name, nil
}

func validName(s string) bool {
	if s == "" || strings.ContainsAny(s, ". ") {
		return false
	}
	c := s[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
