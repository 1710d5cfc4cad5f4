package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jurisai/contractvault/internal/model"
)

const maxResponseBytes = 16 << 20

// Remote sends documents to an out-of-process analysis service and returns
// its JSON response body as the analysis.
type Remote struct {
	url    string
	client *http.Client
}

var _ model.Analyzer = (*Remote)(nil)

// NewRemote creates a Remote analyzer posting to url. A nil client means http.DefaultClient.
func NewRemote(url string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{url: url, client: client}
}

// Analyze implements model.Analyzer.
func (r *Remote) Analyze(ctx context.Context, input model.AnalysisInput) (json.RawMessage, error) {
	body, contentType, err := encodeRequest(input)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("analysis service returned %s", resp.Status)
	}
	if !json.Valid(payload) {
		return nil, errors.New("analysis service returned invalid json")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return nil, fmt.Errorf("compact analysis response: %w", err)
	}
	return compact.Bytes(), nil
}

func encodeRequest(input model.AnalysisInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(input.Data); err != nil {
		return nil, "", err
	}
	fields := map[string]string{
		"fileType":  input.FileType,
		"stagedKey": input.StagedKey,
		"text":      input.Text,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
