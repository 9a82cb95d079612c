package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/pkg/errors"
)

// Prompt kinds forwarded to the completion backend with every request.
const (
	KindResume      = "resume"
	KindCoverLetter = "cover-letter"
	KindKeywords    = "keywords"
	KindSuggestions = "suggestions"
	KindParse       = "parse"
)

// Completer turns a prompt into generated text with a single call.
type Completer interface {
	Complete(ctx context.Context, prompt, kind string) (text string, err error)
}

// NewCompleter builds the backend selected in cfg.
func NewCompleter(cfg config.CompletionConfig) (completer Completer, err error) {
	switch cfg.Provider {
	case config.ProviderWorker:
		completer = NewWorkerClient(cfg.WorkerURL, cfg.Timeout())
	case config.ProviderAnthropic:
		completer = NewAnthropicClient(cfg.AnthropicAPIKey, cfg.GetModel(), cfg.AnthropicURL, cfg.Timeout())
	default:
		err = errors.Errorf("unknown completion provider: %s", cfg.Provider)
	}
	return completer, err
}

// WorkerClient posts prompts to a text-completion worker that answers
// {"response": "..."}.
type WorkerClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewWorkerClient creates a worker client.
func NewWorkerClient(endpoint string, timeout time.Duration) (client *WorkerClient) {
	client = &WorkerClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return client
}

// Complete implements Completer.
func (c *WorkerClient) Complete(ctx context.Context, prompt, kind string) (responseText string, err error) {
	var reqBody []byte
	reqBody, err = json.Marshal(WorkerRequest{Prompt: prompt, Type: kind})
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("AI service returned status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	var workerResp WorkerResponse
	err = json.Unmarshal(respBody, &workerResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse worker response: %s", string(respBody))
		return responseText, err
	}

	if workerResp.Response == "" {
		err = errors.New("no response from AI")
		return responseText, err
	}

	responseText = workerResp.Response
	return responseText, err
}
