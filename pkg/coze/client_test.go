package coze

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sse(frames ...string) string {
	return strings.Join(frames, "\n\n") + "\n\n"
}

func TestClientRunStreamsEvents(t *testing.T) {
	var got runRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, streamRunPath, r.URL.Path)
		assert.Equal(t, "Bearer pat_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, sse(
			"id: 0\nevent: Message\ndata: {\"content\":\"{\\\"output1\\\":\",\"node_is_finish\":false}",
			"id: 1\nevent: PING\ndata: {}",
			"id: 2\nevent: Message\ndata: {\"content\":\"[]}\",\"node_is_finish\":true}",
			"id: 3\nevent: Done\ndata: {}",
		))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "pat_test", srv.Client())
	stream, err := client.Run(context.Background(), "wf_1", map[string]interface{}{"input": "python"})
	require.NoError(t, err)

	out, err := Drain(context.Background(), stream, "wf_1", client, DrainPolicy{})
	require.NoError(t, err)
	assert.Equal(t, `{"output1":[]}`, out)
	assert.Equal(t, "wf_1", got.WorkflowID)
	assert.Equal(t, "python", got.Parameters["input"])
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"code":4100,"msg":"authentication is invalid"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad", srv.Client())
	_, err := client.Run(context.Background(), "wf_1", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 4100, apiErr.Code)
	assert.Equal(t, "authentication is invalid", apiErr.Msg)
}

func TestClientUpdateCredentials(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, sse("event: Done\ndata: {}"))
	}))
	defer srv.Close()

	client := NewClient("http://127.0.0.1:1", "old", srv.Client())
	client.UpdateCredentials(srv.URL, "new")

	stream, err := client.Run(context.Background(), "wf", nil)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, "Bearer new", auth)
}

func TestDrainWorkflowError(t *testing.T) {
	stream := NewEventStream(io.NopCloser(strings.NewReader(sse(
		"event: Message\ndata: {\"content\":\"partial\"}",
		"event: Error\ndata: {\"error_code\":720702011,\"error_message\":\"workflow failed\"}",
	))))

	out, err := Drain(context.Background(), stream, "wf", nil, DrainPolicy{})
	assert.Equal(t, "partial", out)

	var wfErr *WorkflowError
	require.True(t, errors.As(err, &wfErr))
	assert.Equal(t, 720702011, wfErr.Code)
	assert.Equal(t, "workflow failed", wfErr.Message)
}

const interruptFrame = "event: Interrupt\ndata: {\"interrupt_data\":{\"event_id\":\"evt_1/1\",\"type\":2},\"node_title\":\"问答\"}"

func TestDrainInterruptWithoutAutoResume(t *testing.T) {
	stream := NewEventStream(io.NopCloser(strings.NewReader(sse(
		"event: Message\ndata: {\"content\":\"第一部分\"}",
		interruptFrame,
	))))

	_, err := Drain(context.Background(), stream, "wf", nil, DrainPolicy{})

	var interrupt *InterruptError
	require.True(t, errors.As(err, &interrupt))
	assert.Equal(t, "evt_1/1", interrupt.EventID)
	assert.Equal(t, 2, interrupt.Type)
	assert.Equal(t, "wf", interrupt.WorkflowID)
	assert.Equal(t, "第一部分", interrupt.Partial)
}

type fakeResumer struct {
	requests []ResumeRequest
	bodies   []string
}

func (f *fakeResumer) Resume(_ context.Context, req ResumeRequest) (*EventStream, error) {
	f.requests = append(f.requests, req)
	body := f.bodies[0]
	f.bodies = f.bodies[1:]
	return NewEventStream(io.NopCloser(strings.NewReader(body))), nil
}

func TestDrainAutoResume(t *testing.T) {
	stream := NewEventStream(io.NopCloser(strings.NewReader(sse(
		"event: Message\ndata: {\"content\":\"A\"}",
		interruptFrame,
	))))
	resumer := &fakeResumer{bodies: []string{sse(
		"event: Message\ndata: {\"content\":\"B\"}",
		"event: Done\ndata: {}",
	)}}

	out, err := Drain(context.Background(), stream, "wf", resumer, DrainPolicy{AutoResume: true, MaxResumeDepth: 3})
	require.NoError(t, err)
	assert.Equal(t, "AB", out)
	require.Len(t, resumer.requests, 1)
	assert.Equal(t, ResumeRequest{WorkflowID: "wf", EventID: "evt_1/1", ResumeData: DefaultResumeData, InterruptType: 2}, resumer.requests[0])
}

func TestDrainAutoResumeDepthLimit(t *testing.T) {
	stream := NewEventStream(io.NopCloser(strings.NewReader(sse(interruptFrame))))
	resumer := &fakeResumer{bodies: []string{sse(
		"event: Message\ndata: {\"content\":\"X\"}",
		interruptFrame,
	)}}

	out, err := Drain(context.Background(), stream, "wf", resumer, DrainPolicy{AutoResume: true, ResumeData: "继续", MaxResumeDepth: 1})
	assert.Equal(t, "X", out)

	var interrupt *InterruptError
	require.True(t, errors.As(err, &interrupt))
	assert.Equal(t, "X", interrupt.Partial)
	require.Len(t, resumer.requests, 1)
	assert.Equal(t, "继续", resumer.requests[0].ResumeData)
}

func TestEventStreamWithoutTrailingBlankLine(t *testing.T) {
	stream := NewEventStream(io.NopCloser(strings.NewReader("event: Message\ndata: {\"content\":\"tail\"}")))

	ev, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, EventMessage, ev.Kind)
	assert.Equal(t, "tail", ev.Message.Content)

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}
