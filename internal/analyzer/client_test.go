package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/pkg/shared/config"
)

const testJobID = "38a2f261-d21a-4b57-8c8a-f2a1d5ef0c35"

func testClient(endpoint string) *Client {
	cfg := &config.Config{}
	cfg.HttpClient.RetryWaitTime = time.Millisecond
	cfg.HttpClient.RetryMaxWaitTime = 5 * time.Millisecond
	cfg.Analyzer.Endpoint = endpoint
	cfg.Analyzer.PollInterval = 5 * time.Millisecond
	cfg.Analyzer.Timeout = 2 * time.Second
	return New(cfg, hclog.NewNullLogger(), "test-api-key")
}

func TestAnalyzeFullSequence(t *testing.T) {
	var polls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/analyses":
			assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "solscan", req["clientToolName"])
			assert.Equal(t, "Wallet", req["contractName"])
			assert.Equal(t, "quick", req["analysisMode"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"uuid": %q, "status": "Queued"}`, testJobID)

		case r.Method == http.MethodGet && r.URL.Path == "/v1/analyses/"+testJobID:
			status := StatusInProgress
			if atomic.AddInt32(&polls, 1) > 1 {
				status = StatusFinished
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"uuid": %q, "status": %q}`, testJobID, status)

		case r.Method == http.MethodGet && r.URL.Path == "/v1/analyses/"+testJobID+"/issues":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[
				{
					"sourceFormat": "text",
					"sourceList": ["contracts/wallet.sol"],
					"issues": [
						{
							"description": {"head": "Integer overflow."},
							"locations": [{"sourceMap": "46:11:0"}],
							"severity": "High",
							"swcID": "SWC-101"
						}
					]
				}
			]`)

		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	artifact := &compiler.Artifact{
		ContractName:      "Wallet",
		SourcePath:        "contracts/wallet.sol",
		DeployedBytecode:  "6080",
		DeployedSourceMap: "0:23:0",
		SourceList:        []string{"contracts/wallet.sol"},
	}

	batches, err := testClient(srv.URL).Analyze(context.Background(), artifact, map[string]string{
		"contracts/wallet.sol": "pragma solidity ^0.5.0;\n",
	})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Len(t, batches[0].Issues, 1)
	assert.Equal(t, "SWC-101", batches[0].Issues[0].SwcID)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(2))
}

func TestSubmitAnalysisRejectsInvalidJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"uuid": "not-a-uuid", "status": "Queued"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SubmitAnalysis(context.Background(), &compiler.Artifact{ContractName: "Wallet"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-uuid")
}

func TestWaitForResultJobFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"uuid": %q, "status": "Error", "error": "analysis crashed"}`, testJobID)
	}))
	defer srv.Close()

	err := testClient(srv.URL).WaitForResult(context.Background(), testJobID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis crashed")
}

func TestWaitForResultContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"uuid": %q, "status": "Queued"}`, testJobID)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testClient(srv.URL).WaitForResult(ctx, testJobID)
	require.Error(t, err)
}
