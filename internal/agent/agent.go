// Package agent invokes the AI coding-agent CLI as a child process.
//
// The agent binary (claude by default) is treated as an opaque collaborator:
// dx renders a prompt, runs one non-interactive invocation, and reads the
// streamed JSON events it emits. Nothing about the agent's editing behavior
// is interpreted beyond its exit code and final result event.
package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/dxcli/dx/internal/cmd"
	"github.com/dxcli/dx/internal/config"
	"github.com/dxcli/dx/internal/log"
)

// PromptToken is the substitution token in fan-out prompt templates.
const PromptToken = "{file}"

// ErrAgentNotFound indicates the coding-agent binary is not installed or not in PATH
var ErrAgentNotFound = fmt.Errorf("coding-agent CLI not found: install it or set agent.command in the config")

// Agent runs one-shot coding-agent invocations.
type Agent struct {
	command string
	args    []string
}

// New creates an Agent from config.
func New(cfg config.AgentConfig) *Agent {
	return &Agent{command: cfg.Command, args: cfg.Args}
}

// Check verifies the agent binary is available in PATH.
func (a *Agent) Check() error {
	if _, err := exec.LookPath(a.command); err != nil {
		return fmt.Errorf("%s: %w", a.command, ErrAgentNotFound)
	}
	return nil
}

// RenderPrompt substitutes the file token in a prompt template.
func RenderPrompt(template, file string) string {
	return strings.ReplaceAll(template, PromptToken, file)
}

// Run invokes the agent with the prompt in dir, decoding its stream-json
// output. Assistant text is passed to onText as it arrives (onText may be
// nil). Returns the final result event.
func (a *Agent) Run(ctx context.Context, dir, prompt string, onText func(string)) (*Event, error) {
	args := append([]string{"-p", prompt, "--output-format", "stream-json", "--verbose"}, a.args...)

	done := log.FromContext(ctx).Command(dir, a.command, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, a.command, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("agent stdout pipe: %w", err)
	}
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", a.command, err)
	}

	result, decodeErr := DecodeStream(stdout, func(ev Event) {
		if onText == nil {
			return
		}
		for _, text := range ev.AssistantText() {
			onText(text)
		}
	})

	waitErr := c.Wait()
	done(time.Since(start))

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if waitErr != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s failed: %s", a.command, errMsg)
		}
		return nil, fmt.Errorf("%s failed: %w", a.command, waitErr)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	if result != nil && result.IsError {
		return result, fmt.Errorf("%s reported an error: %s", a.command, result.Result)
	}
	return result, nil
}

// RunQuiet invokes the agent with the prompt in dir without streaming,
// returning combined output. Used by the fan-out pool, where success is
// the exit code and output is only surfaced on failure.
func (a *Agent) RunQuiet(ctx context.Context, dir, prompt string) ([]byte, error) {
	args := append([]string{"-p", prompt}, a.args...)
	return cmd.CombinedContext(ctx, dir, a.command, args...)
}
