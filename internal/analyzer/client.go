package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/issues"
	"github.com/solscan-io/solscan/pkg/shared/config"
	"github.com/solscan-io/solscan/pkg/shared/httpclient"
)

// Analysis job status values reported by the service.
const (
	StatusQueued     = "Queued"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
	StatusError      = "Error"
)

const clientToolName = "solscan"

// Client talks to the remote analysis service: submit a contract, poll the
// job, fetch the raw issue batches.
type Client struct {
	httpc        *resty.Client
	logger       hclog.Logger
	mode         string
	pollInterval time.Duration
	timeout      time.Duration
}

// New builds a client from the analyzer section of the config, falling back
// to defaults for anything unset. The API key is sent as a bearer token.
func New(cfg *config.Config, logger hclog.Logger, apiKey string) *Client {
	defaults := config.DefaultAnalyzerConfig()

	httpc := httpclient.InitializeRestyClient(logger, cfg)
	httpc.SetBaseURL(config.SetThen(cfg.Analyzer.Endpoint, defaults.Endpoint))
	httpc.SetAuthToken(apiKey)

	return &Client{
		httpc:        httpc,
		logger:       logger,
		mode:         config.SetThen(cfg.Analyzer.Mode, defaults.Mode),
		pollInterval: config.SetThen(cfg.Analyzer.PollInterval, defaults.PollInterval),
		timeout:      config.SetThen(cfg.Analyzer.Timeout, defaults.Timeout),
	}
}

type sourceInput struct {
	Source string `json:"source"`
}

type submitRequest struct {
	ClientToolName    string                 `json:"clientToolName"`
	ContractName      string                 `json:"contractName"`
	Bytecode          string                 `json:"bytecode,omitempty"`
	DeployedBytecode  string                 `json:"deployedBytecode,omitempty"`
	SourceMap         string                 `json:"sourceMap,omitempty"`
	DeployedSourceMap string                 `json:"deployedSourceMap,omitempty"`
	Sources           map[string]sourceInput `json:"sources"`
	SourceList        []string               `json:"sourceList"`
	AnalysisMode      string                 `json:"analysisMode"`
}

type jobState struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SubmitAnalysis submits one contract for analysis and returns the job id
// the service assigned. The id is validated as a UUID before use.
func (c *Client) SubmitAnalysis(ctx context.Context, artifact *compiler.Artifact, sources map[string]string) (string, error) {
	req := submitRequest{
		ClientToolName:    clientToolName,
		ContractName:      artifact.ContractName,
		Bytecode:          artifact.Bytecode,
		DeployedBytecode:  artifact.DeployedBytecode,
		SourceMap:         artifact.SourceMap,
		DeployedSourceMap: artifact.DeployedSourceMap,
		Sources:           make(map[string]sourceInput, len(sources)),
		SourceList:        artifact.SourceList,
		AnalysisMode:      c.mode,
	}
	for name, text := range sources {
		req.Sources[name] = sourceInput{Source: text}
	}

	var job jobState
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&job).
		Post("/v1/analyses")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("%d on submitting analysis for %q", resp.StatusCode(), artifact.ContractName)
	}
	if _, err := uuid.Parse(job.UUID); err != nil {
		return "", fmt.Errorf("service returned invalid job id %q: %w", job.UUID, err)
	}

	c.logger.Debug("analysis submitted", "contract", artifact.ContractName, "job", job.UUID)
	return job.UUID, nil
}

// WaitForResult polls the job until the service reports Finished, the job
// fails, or the configured timeout elapses.
func (c *Client) WaitForResult(ctx context.Context, jobID string) error {
	deadline := time.NewTimer(c.timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var job jobState
		resp, err := c.httpc.R().
			SetContext(ctx).
			SetResult(&job).
			Get(fmt.Sprintf("/v1/analyses/%s", jobID))
		if err != nil {
			return err
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("%d on polling job %q", resp.StatusCode(), jobID)
		}

		switch job.Status {
		case StatusFinished:
			return nil
		case StatusError:
			return fmt.Errorf("job %q failed: %s", jobID, job.Error)
		}
		c.logger.Debug("job still running", "job", jobID, "status", job.Status)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("job %q did not finish within %s", jobID, c.timeout)
		case <-ticker.C:
		}
	}
}

// FetchIssues retrieves the raw issue batches of a finished job.
func (c *Client) FetchIssues(ctx context.Context, jobID string) ([]issues.Batch, error) {
	var batches []issues.Batch
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetResult(&batches).
		Get(fmt.Sprintf("/v1/analyses/%s/issues", jobID))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%d on fetching issues for job %q", resp.StatusCode(), jobID)
	}
	return batches, nil
}

// Analyze runs the full submit/poll/fetch sequence for one contract.
func (c *Client) Analyze(ctx context.Context, artifact *compiler.Artifact, sources map[string]string) ([]issues.Batch, error) {
	jobID, err := c.SubmitAnalysis(ctx, artifact, sources)
	if err != nil {
		return nil, err
	}
	if err := c.WaitForResult(ctx, jobID); err != nil {
		return nil, err
	}
	return c.FetchIssues(ctx, jobID)
}
