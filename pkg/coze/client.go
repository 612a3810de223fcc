package coze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
)

// CNBaseURL 扣子国内站 OpenAPI 地址
const CNBaseURL = "https://api.coze.cn"

const (
	streamRunPath    = "/v1/workflow/stream_run"
	streamResumePath = "/v1/workflow/stream_resume"
)

// Gateway 工作流调用入口，Run 和 Resume 都返回一条新的事件流
type Gateway interface {
	Run(ctx context.Context, workflowID string, params map[string]interface{}) (*EventStream, error)
	Resume(ctx context.Context, req ResumeRequest) (*EventStream, error)
}

type ResumeRequest struct {
	WorkflowID    string `json:"workflow_id"`
	EventID       string `json:"event_id"`
	ResumeData    string `json:"resume_data"`
	InterruptType int    `json:"interrupt_type"`
}

type runRequest struct {
	WorkflowID string                 `json:"workflow_id"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// Client 扣子工作流流式接口客户端。凭据可在运行时通过 UpdateCredentials 替换。
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = CNBaseURL
	}
	if httpClient == nil {
		// 流式响应可能持续数十秒，超时由调用方的 context 控制
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) UpdateCredentials(baseURL, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	c.token = token
}

func (c *Client) Run(ctx context.Context, workflowID string, params map[string]interface{}) (*EventStream, error) {
	return c.stream(ctx, streamRunPath, runRequest{WorkflowID: workflowID, Parameters: params})
}

func (c *Client) Resume(ctx context.Context, req ResumeRequest) (*EventStream, error) {
	return c.stream(ctx, streamResumePath, req)
}

func (c *Client) stream(ctx context.Context, path string, payload interface{}) (*EventStream, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	url := c.baseURL + path
	token := c.token
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coze request %s: %w", path, err)
	}

	// 出错时接口返回普通 JSON 而不是事件流
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if resp.StatusCode != http.StatusOK || mediaType == "application/json" {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}

	return NewEventStream(resp.Body), nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode, LogID: resp.Header.Get("X-Tt-Logid")}

	var body struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && (body.Code != 0 || body.Msg != "") {
		apiErr.Code = body.Code
		apiErr.Msg = body.Msg
	} else {
		apiErr.Msg = strings.TrimSpace(string(raw))
	}
	return apiErr
}
