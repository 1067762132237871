package compiler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NodeKind tags the node shapes the suppression heuristics distinguish.
// Everything that is not a declaration or an array type is KindOther.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindVariableDeclaration
	KindArrayTypeName
)

// Node is one node of the compiler AST: a nodeType tag, a source byte range,
// and children collected structurally from whatever fields carry nested
// nodes. The dynamic shape of the compiler output is flattened into this one
// type so lookups traverse a uniform tree.
type Node struct {
	NodeType string
	Name     string

	// TypeName is the declared type of a variable declaration, when present.
	TypeName *Node

	// HasLength is set on array type nodes declaring a fixed compile-time
	// length; a dynamically-sized array type leaves it false.
	HasLength bool

	Children []*Node

	start  int
	length int
	valid  bool
}

// UnmarshalJSON decodes a compact-form AST node. Known scalar fields are
// pulled out by name; every other field is probed for nested nodes (single
// objects or arrays), which become children regardless of the key they hang
// off.
func (n *Node) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["nodeType"]; ok {
		if err := json.Unmarshal(raw, &n.NodeType); err != nil {
			return err
		}
	}
	if raw, ok := fields["name"]; ok {
		json.Unmarshal(raw, &n.Name)
	}
	if raw, ok := fields["src"]; ok {
		var src string
		if err := json.Unmarshal(raw, &src); err == nil {
			n.setRange(src)
		}
	}
	if raw, ok := fields["typeName"]; ok && !isJSONNull(raw) {
		var typeName Node
		if err := json.Unmarshal(raw, &typeName); err == nil && typeName.NodeType != "" {
			n.TypeName = &typeName
			n.Children = append(n.Children, &typeName)
		}
	}
	if raw, ok := fields["length"]; ok && !isJSONNull(raw) {
		n.HasLength = true
	}

	for key, raw := range fields {
		switch key {
		case "nodeType", "name", "src", "typeName", "length":
			continue
		}
		n.Children = append(n.Children, childNodes(raw)...)
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// childNodes decodes a raw field value into the AST nodes it contains, if
// any. Objects must carry a nodeType tag to count as nodes.
func childNodes(raw json.RawMessage) []*Node {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var child Node
		if err := json.Unmarshal(trimmed, &child); err == nil && child.NodeType != "" {
			return []*Node{&child}
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		var out []*Node
		for _, item := range items {
			out = append(out, childNodes(item)...)
		}
		return out
	}
	return nil
}

func (n *Node) setRange(src string) {
	fields := strings.SplitN(src, ":", 3)
	if len(fields) < 2 {
		return
	}
	start, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	length, err := strconv.Atoi(fields[1])
	if err != nil {
		return
	}
	n.start, n.length, n.valid = start, length, true
}

// Kind classifies the node for the suppression heuristics. Tuple/list
// declaration statements count as declarations alongside the single form.
func (n *Node) Kind() NodeKind {
	switch n.NodeType {
	case "VariableDeclaration", "VariableDeclarationStatement":
		return KindVariableDeclaration
	case "ArrayTypeName":
		return KindArrayTypeName
	default:
		return KindOther
	}
}

// ByteRange returns the node's source byte range. ok is false when the node
// carried no parseable src field.
func (n *Node) ByteRange() (start, length int, ok bool) {
	return n.start, n.length, n.valid
}

func (n *Node) contains(start, length int) bool {
	return n.valid && n.start <= start && start+length <= n.start+n.length
}

// FindEnclosing returns the smallest node whose byte range contains
// [start, start+length). The second return is false when no node in the
// tree encloses the range.
func (n *Node) FindEnclosing(start, length int) (*Node, bool) {
	if n == nil || !n.contains(start, length) {
		return nil, false
	}
	best := n
	for _, child := range n.Children {
		if inner, ok := child.FindEnclosing(start, length); ok && inner.length <= best.length {
			best = inner
		}
	}
	return best, true
}

// IsVariableDeclaration reports whether the smallest node enclosing the byte
// range is a variable declaration. Best effort: an empty tree or a range
// outside the tree is false, never an error.
func IsVariableDeclaration(root *Node, start, length int) bool {
	if root == nil {
		return false
	}
	node, ok := root.FindEnclosing(start, length)
	return ok && node.Kind() == KindVariableDeclaration
}

// IsDynamicArray reports whether the declaration enclosing the byte range
// declares an array type without a fixed compile-time length.
func IsDynamicArray(root *Node, start, length int) bool {
	if root == nil {
		return false
	}
	node, ok := root.FindEnclosing(start, length)
	if !ok {
		return false
	}
	for _, decl := range declarations(node) {
		typeName := decl.TypeName
		if typeName != nil && typeName.Kind() == KindArrayTypeName && !typeName.HasLength {
			return true
		}
	}
	return false
}

// declarations unwraps a declaration statement into the variable
// declarations it binds; a plain declaration yields itself.
func declarations(n *Node) []*Node {
	if n.NodeType == "VariableDeclaration" {
		return []*Node{n}
	}
	if n.NodeType != "VariableDeclarationStatement" {
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		if child.NodeType == "VariableDeclaration" {
			out = append(out, child)
		}
	}
	return out
}
