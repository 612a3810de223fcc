package coze

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type EventKind string

const (
	EventMessage   EventKind = "Message"
	EventError     EventKind = "Error"
	EventInterrupt EventKind = "Interrupt"
	EventDone      EventKind = "Done"
	EventPing      EventKind = "PING"
)

type Message struct {
	Content      string `json:"content"`
	NodeTitle    string `json:"node_title"`
	NodeIsFinish bool   `json:"node_is_finish"`
}

type ErrorDetail struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

type InterruptData struct {
	EventID string `json:"event_id"`
	Type    int    `json:"type"`
}

type Interrupt struct {
	Data      InterruptData `json:"interrupt_data"`
	NodeTitle string        `json:"node_title"`
}

type Event struct {
	ID        string
	Kind      EventKind
	Message   *Message
	Error     *ErrorDetail
	Interrupt *Interrupt
}

// EventStream 逐个读取 SSE 事件。读到 Done 事件或流结束后 Next 返回 io.EOF。
type EventStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
}

func NewEventStream(body io.ReadCloser) *EventStream {
	return &EventStream{body: body, reader: bufio.NewReader(body)}
}

func (s *EventStream) Close() error {
	return s.body.Close()
}

// Next 返回下一个事件，心跳事件会被跳过
func (s *EventStream) Next() (*Event, error) {
	for {
		if s.done {
			return nil, io.EOF
		}

		id, kind, data, err := s.readFrame()
		if err != nil {
			return nil, err
		}
		if kind == EventPing {
			continue
		}

		ev, err := decodeEvent(id, kind, data)
		if err != nil {
			return nil, err
		}
		if ev.Kind == EventDone {
			s.done = true
		}
		return ev, nil
	}
}

// readFrame 读取一帧 "id/event/data"，以空行或流结束为界
func (s *EventStream) readFrame() (id string, kind EventKind, data string, err error) {
	var dataLines []string
	for {
		line, readErr := s.reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if kind != "" || len(dataLines) > 0 {
				return id, kind, strings.Join(dataLines, "\n"), nil
			}
		} else if !strings.HasPrefix(line, ":") {
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "id":
				id = value
			case "event":
				kind = EventKind(value)
			case "data":
				dataLines = append(dataLines, value)
			}
		}

		if readErr != nil {
			if readErr == io.EOF && (kind != "" || len(dataLines) > 0) {
				return id, kind, strings.Join(dataLines, "\n"), nil
			}
			s.done = true
			return "", "", "", readErr
		}
	}
}

func decodeEvent(id string, kind EventKind, data string) (*Event, error) {
	ev := &Event{ID: id, Kind: kind}
	switch kind {
	case EventMessage:
		ev.Message = &Message{}
		if err := json.Unmarshal([]byte(data), ev.Message); err != nil {
			return nil, fmt.Errorf("decode message event: %w", err)
		}
	case EventError:
		ev.Error = &ErrorDetail{}
		if err := json.Unmarshal([]byte(data), ev.Error); err != nil {
			ev.Error.Message = data
		}
	case EventInterrupt:
		ev.Interrupt = &Interrupt{}
		if err := json.Unmarshal([]byte(data), ev.Interrupt); err != nil {
			return nil, fmt.Errorf("decode interrupt event: %w", err)
		}
	case EventDone:
	default:
		return nil, fmt.Errorf("unknown workflow event %q", kind)
	}
	return ev, nil
}
