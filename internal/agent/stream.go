package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Event is one line of the agent's stream-json output.
type Event struct {
	Type    string   `json:"type"`    // "system", "assistant", "user", "result"
	Subtype string   `json:"subtype"` // e.g. "success" on result events
	Result  string   `json:"result"`  // final text on result events
	IsError bool     `json:"is_error"`
	Message *Message `json:"message"`
}

// Message is the assistant message payload on assistant events.
type Message struct {
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one content block of an assistant message.
type ContentBlock struct {
	Type string `json:"type"` // "text", "tool_use", ...
	Text string `json:"text"`
}

// AssistantText returns the text blocks of an assistant event, if any.
func (e Event) AssistantText() []string {
	if e.Type != "assistant" || e.Message == nil {
		return nil
	}
	var texts []string
	for _, block := range e.Message.Content {
		if block.Type == "text" && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}
	return texts
}

// DecodeStream reads newline-delimited JSON events from r, invoking onEvent
// for each (onEvent may be nil). Lines that are not valid JSON are skipped;
// agent CLIs interleave plain progress lines with events. Returns the final
// result event, or nil if the stream ended without one.
func DecodeStream(r io.Reader, onEvent func(Event)) (*Event, error) {
	scanner := bufio.NewScanner(r)
	// Assistant events can carry whole files in their content blocks.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var result *Event
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		if onEvent != nil {
			onEvent(ev)
		}
		if ev.Type == "result" {
			ev := ev
			result = &ev
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read agent stream: %w", err)
	}
	return result, nil
}
