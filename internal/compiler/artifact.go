package compiler

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrMissingSourceMap is returned when a bytecode-offset analysis format is
// requested for an artifact whose compiler output carries no source map at
// all. Unlike per-location resolution misses this is a hard failure: nothing
// in the batch can be located.
var ErrMissingSourceMap = errors.New("compiled artifact carries no source map")

// Artifact is the immutable per-contract build record the resolution
// pipeline consumes. Source maps are kept in the compiler's compressed text
// form and decoded on demand.
type Artifact struct {
	ContractName      string
	SourcePath        string
	Bytecode          string // creation bytecode, hex
	DeployedBytecode  string // runtime bytecode, hex
	SourceMap         string
	DeployedSourceMap string
	AST               *Node
	SourceList        []string
}

// DeployedBytecodeBytes decodes the runtime bytecode hex string.
func (a *Artifact) DeployedBytecodeBytes() ([]byte, error) {
	return hexBytes(a.DeployedBytecode)
}

func hexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex: %w", err)
	}
	return b, nil
}

// combined-json output shapes, as produced by
// solc --combined-json bin,bin-runtime,srcmap,srcmap-runtime,ast.
type combinedJSON struct {
	Contracts  map[string]combinedContract `json:"contracts"`
	Sources    map[string]combinedSource   `json:"sources"`
	SourceList []string                    `json:"sourceList"`
	Version    string                      `json:"version"`
}

type combinedContract struct {
	Bin           string `json:"bin"`
	BinRuntime    string `json:"bin-runtime"`
	SrcMap        string `json:"srcmap"`
	SrcMapRuntime string `json:"srcmap-runtime"`
}

type combinedSource struct {
	AST *Node `json:"AST"`
}

// LoadCombinedJSON reads a solc combined-json file and returns one artifact
// per contract, ordered by contract key for determinism.
func LoadCombinedJSON(path string) ([]*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combined json %q: %w", path, err)
	}
	return ParseCombinedJSON(data)
}

// ParseCombinedJSON parses combined-json bytes into artifacts. Contract keys
// have the form "path/to/file.sol:ContractName".
func ParseCombinedJSON(data []byte) ([]*Artifact, error) {
	var combined combinedJSON
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, fmt.Errorf("failed to parse combined json: %w", err)
	}

	keys := make([]string, 0, len(combined.Contracts))
	for key := range combined.Contracts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	artifacts := make([]*Artifact, 0, len(keys))
	for _, key := range keys {
		contract := combined.Contracts[key]
		sourcePath, name := splitContractKey(key)

		artifact := &Artifact{
			ContractName:      name,
			SourcePath:        sourcePath,
			Bytecode:          contract.Bin,
			DeployedBytecode:  contract.BinRuntime,
			SourceMap:         contract.SrcMap,
			DeployedSourceMap: contract.SrcMapRuntime,
			SourceList:        combined.SourceList,
		}
		if source, ok := combined.Sources[sourcePath]; ok {
			artifact.AST = source.AST
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// splitContractKey splits "file.sol:Name" at the last colon; a key without a
// colon is a bare contract name.
func splitContractKey(key string) (sourcePath, name string) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}
