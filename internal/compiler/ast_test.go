package compiler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletAST = `{
	"nodeType": "SourceUnit",
	"src": "0:60:0",
	"nodes": [
		{
			"nodeType": "PragmaDirective",
			"src": "0:23:0"
		},
		{
			"nodeType": "ContractDefinition",
			"src": "24:36:0",
			"name": "Wallet",
			"nodes": [
				{
					"nodeType": "VariableDeclaration",
					"src": "46:11:0",
					"name": "ids",
					"typeName": {
						"nodeType": "ArrayTypeName",
						"src": "46:6:0",
						"length": null,
						"baseType": {
							"nodeType": "ElementaryTypeName",
							"src": "46:4:0",
							"name": "uint"
						}
					}
				}
			]
		}
	]
}`

func parseAST(t *testing.T, text string) *Node {
	t.Helper()
	var root Node
	require.NoError(t, json.Unmarshal([]byte(text), &root))
	return &root
}

func TestFindEnclosingPicksSmallestNode(t *testing.T) {
	root := parseAST(t, walletAST)

	node, ok := root.FindEnclosing(46, 11)
	require.True(t, ok)
	assert.Equal(t, "VariableDeclaration", node.NodeType)
	assert.Equal(t, "ids", node.Name)

	node, ok = root.FindEnclosing(0, 23)
	require.True(t, ok)
	assert.Equal(t, "PragmaDirective", node.NodeType)

	// A sub-range of the type name lands on the type name itself.
	node, ok = root.FindEnclosing(46, 6)
	require.True(t, ok)
	assert.Equal(t, "ArrayTypeName", node.NodeType)
}

func TestFindEnclosingOutsideTree(t *testing.T) {
	root := parseAST(t, walletAST)

	_, ok := root.FindEnclosing(1000, 5)
	assert.False(t, ok)
}

func TestIsVariableDeclaration(t *testing.T) {
	root := parseAST(t, walletAST)

	assert.True(t, IsVariableDeclaration(root, 46, 11))
	assert.False(t, IsVariableDeclaration(root, 0, 23))
	assert.False(t, IsVariableDeclaration(root, 1000, 5))
	assert.False(t, IsVariableDeclaration(nil, 46, 11))
}

func TestIsDynamicArray(t *testing.T) {
	root := parseAST(t, walletAST)

	assert.True(t, IsDynamicArray(root, 46, 11))
	assert.False(t, IsDynamicArray(root, 0, 23))
	assert.False(t, IsDynamicArray(nil, 46, 11))
}

func TestIsDynamicArrayFixedLength(t *testing.T) {
	fixed := `{
		"nodeType": "SourceUnit",
		"src": "0:60:0",
		"nodes": [
			{
				"nodeType": "VariableDeclaration",
				"src": "46:14:0",
				"name": "slots",
				"typeName": {
					"nodeType": "ArrayTypeName",
					"src": "46:7:0",
					"length": {
						"nodeType": "Literal",
						"src": "51:1:0",
						"value": "4"
					}
				}
			}
		]
	}`
	root := parseAST(t, fixed)

	assert.True(t, IsVariableDeclaration(root, 46, 14))
	assert.False(t, IsDynamicArray(root, 46, 14))
}

func TestTupleDeclarationStatement(t *testing.T) {
	tuple := `{
		"nodeType": "SourceUnit",
		"src": "90:40:0",
		"nodes": [
			{
				"nodeType": "VariableDeclarationStatement",
				"src": "100:20:0",
				"declarations": [
					{
						"nodeType": "VariableDeclaration",
						"src": "101:8:0",
						"name": "xs",
						"typeName": {
							"nodeType": "ArrayTypeName",
							"src": "101:6:0",
							"length": null
						}
					}
				]
			}
		]
	}`
	root := parseAST(t, tuple)

	assert.True(t, IsVariableDeclaration(root, 100, 20))
	assert.True(t, IsDynamicArray(root, 100, 20))
}

func TestNodeKind(t *testing.T) {
	tests := []struct {
		nodeType string
		want     NodeKind
	}{
		{"VariableDeclaration", KindVariableDeclaration},
		{"VariableDeclarationStatement", KindVariableDeclaration},
		{"ArrayTypeName", KindArrayTypeName},
		{"FunctionDefinition", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		n := &Node{NodeType: tt.nodeType}
		assert.Equal(t, tt.want, n.Kind(), tt.nodeType)
	}
}
