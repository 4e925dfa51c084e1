package agent

import (
	"strings"
	"testing"
)

const sampleStream = `{"type":"system","subtype":"init"}
not json progress noise
{"type":"assistant","message":{"content":[{"type":"text","text":"Looking at the build errors."},{"type":"tool_use"}]}}
{"type":"assistant","message":{"content":[{"type":"text","text":"Fixed the missing using directive."}]}}
{"type":"result","subtype":"success","result":"Done: 2 files changed.","is_error":false}
`

func TestDecodeStream(t *testing.T) {
	t.Parallel()

	t.Run("returns final result event", func(t *testing.T) {
		t.Parallel()
		result, err := DecodeStream(strings.NewReader(sampleStream), nil)
		if err != nil {
			t.Fatalf("DecodeStream error = %v", err)
		}
		if result == nil {
			t.Fatal("DecodeStream returned nil result")
		}
		if result.Subtype != "success" {
			t.Errorf("result.Subtype = %q, want success", result.Subtype)
		}
		if result.Result != "Done: 2 files changed." {
			t.Errorf("result.Result = %q", result.Result)
		}
		if result.IsError {
			t.Error("result.IsError = true, want false")
		}
	})

	t.Run("invokes callback per event", func(t *testing.T) {
		t.Parallel()
		var types []string
		_, err := DecodeStream(strings.NewReader(sampleStream), func(ev Event) {
			types = append(types, ev.Type)
		})
		if err != nil {
			t.Fatalf("DecodeStream error = %v", err)
		}
		want := []string{"system", "assistant", "assistant", "result"}
		if len(types) != len(want) {
			t.Fatalf("got %d events %v, want %d", len(types), types, len(want))
		}
		for i := range want {
			if types[i] != want[i] {
				t.Errorf("event[%d] = %q, want %q", i, types[i], want[i])
			}
		}
	})

	t.Run("skips non-JSON lines", func(t *testing.T) {
		t.Parallel()
		result, err := DecodeStream(strings.NewReader("plain text\nmore noise\n"), nil)
		if err != nil {
			t.Fatalf("DecodeStream error = %v", err)
		}
		if result != nil {
			t.Errorf("result = %+v, want nil for stream without result event", result)
		}
	})

	t.Run("error result", func(t *testing.T) {
		t.Parallel()
		result, err := DecodeStream(strings.NewReader(`{"type":"result","subtype":"error_during_execution","result":"boom","is_error":true}`+"\n"), nil)
		if err != nil {
			t.Fatalf("DecodeStream error = %v", err)
		}
		if result == nil || !result.IsError {
			t.Errorf("result = %+v, want is_error event", result)
		}
	})
}

func TestAssistantText(t *testing.T) {
	t.Parallel()

	t.Run("extracts text blocks", func(t *testing.T) {
		t.Parallel()
		ev := Event{
			Type: "assistant",
			Message: &Message{Content: []ContentBlock{
				{Type: "text", Text: "first"},
				{Type: "tool_use"},
				{Type: "text", Text: "second"},
			}},
		}
		texts := ev.AssistantText()
		if len(texts) != 2 || texts[0] != "first" || texts[1] != "second" {
			t.Errorf("AssistantText = %v", texts)
		}
	})

	t.Run("non-assistant event", func(t *testing.T) {
		t.Parallel()
		ev := Event{Type: "result", Result: "done"}
		if texts := ev.AssistantText(); texts != nil {
			t.Errorf("AssistantText on result event = %v, want nil", texts)
		}
	})
}

func TestRenderPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		file     string
		want     string
	}{
		{"single token", "Fix the tests in {file}", "pkg/a_test.go", "Fix the tests in pkg/a_test.go"},
		{"repeated token", "{file}: review {file}", "main.go", "main.go: review main.go"},
		{"no token", "Just do it", "main.go", "Just do it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderPrompt(tt.template, tt.file); got != tt.want {
				t.Errorf("RenderPrompt = %q, want %q", got, tt.want)
			}
		})
	}
}
