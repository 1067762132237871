package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/issues"
)

const walletSource = "pragma solidity ^0.5.0;\n" +
	"contract Wallet {\n" +
	"    uint[] ids;\n" +
	"}\n"

const tokenSource = "pragma solidity ^0.5.0;\n" +
	"contract Token {\n" +
	"}\n"

type stubSource struct {
	batches map[string][]issues.Batch
	err     error
}

func (s *stubSource) Analyze(_ context.Context, artifact *compiler.Artifact, _ map[string]string) ([]issues.Batch, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.batches[artifact.ContractName], nil
}

func textBatch(file, swc, severity, head string, srcmap string) issues.Batch {
	return issues.Batch{
		SourceFormat: issues.FormatText,
		SourceList:   []string{file},
		Issues: []issues.RawDiagnostic{
			{
				Description: issues.Description{Head: head},
				Locations:   []issues.Location{{SourceMap: srcmap}},
				Severity:    severity,
				SwcID:       swc,
			},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	artifacts := []*compiler.Artifact{
		{ContractName: "Wallet", SourcePath: "contracts/wallet.sol", SourceList: []string{"contracts/wallet.sol"}},
		{ContractName: "Token", SourcePath: "contracts/token.sol", SourceList: []string{"contracts/token.sol"}},
	}
	sources := map[string]string{
		"contracts/wallet.sol": walletSource,
		"contracts/token.sol":  tokenSource,
	}
	source := &stubSource{batches: map[string][]issues.Batch{
		"Wallet": {
			textBatch("contracts/wallet.sol", "SWC-101", "High", "Integer overflow.", "46:11:0"),
			textBatch("contracts/wallet.sol", "SWC-103", "Low", "A floating pragma is set.", "0:23:0"),
		},
		"Token": {
			textBatch("contracts/token.sol", "SWC-103", "Low", "A floating pragma is set.", "0:23:0"),
		},
	}}

	p := New(nil, source, issues.Options{})
	report, err := p.Run(context.Background(), artifacts, sources)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, []string{"token.sol", "wallet.sol"}, report.SortedFiles())

	wallet := report.Files["wallet.sol"]
	require.NotNil(t, wallet)
	assert.Equal(t, 1, wallet.ErrorCount)
	assert.Equal(t, 1, wallet.WarningCount)
	require.Len(t, wallet.Messages, 2)
	// Sorted by position within the group.
	assert.Equal(t, "SWC-103", wallet.Messages[0].RuleID)
	assert.Equal(t, 1, wallet.Messages[0].Line)
	assert.Equal(t, "SWC-101", wallet.Messages[1].RuleID)
	assert.Equal(t, 3, wallet.Messages[1].Line)

	assert.True(t, report.HasErrors())
}

func TestPipelineRunPropagatesSourceError(t *testing.T) {
	sentinel := errors.New("analysis unavailable")
	p := New(nil, &stubSource{err: sentinel}, issues.Options{})

	_, err := p.Run(context.Background(), []*compiler.Artifact{{ContractName: "Wallet"}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel))
}

func TestPipelineRunEmptyArtifacts(t *testing.T) {
	p := New(nil, &stubSource{}, issues.Options{})

	report, err := p.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.False(t, report.HasErrors())
}
