package llm

import (
	"fmt"
	"strings"
)

// maxDiffBytes caps the diff included in a prompt. Endpoints reject oversized
// bodies long before this, and the tail of a huge diff rarely changes the
// message anyway.
const maxDiffBytes = 64 * 1024

const commitSystemPrompt = `You write concise git commit messages in the conventional commit style.
Respond with the commit message only: a single summary line under 72 characters,
optionally followed by a blank line and a short body. No code fences.`

const prSystemPrompt = `You write pull request descriptions.
Respond with the PR title on the first line, then a blank line, then a Markdown
body with a short summary and a bullet list of notable changes. No code fences.`

// CommitMessagePrompt builds the user prompt for commit-message generation.
func CommitMessagePrompt(diff string) (system, user string) {
	return commitSystemPrompt, fmt.Sprintf("Write a commit message for the following staged diff:\n\n%s", truncate(diff, maxDiffBytes))
}

// PRDescriptionPrompt builds the user prompt for PR-description generation.
func PRDescriptionPrompt(diff string, commits []string) (system, user string) {
	var b strings.Builder
	b.WriteString("Write a pull request title and description for this branch.\n\nCommits:\n")
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "\nDiff:\n\n%s", truncate(diff, maxDiffBytes))
	return prSystemPrompt, b.String()
}

// SplitTitleBody splits a generated PR description into title and body.
// The first non-empty line is the title; the rest is the body.
func SplitTitleBody(text string) (title, body string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		title = strings.TrimSpace(line)
		body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		return title, body
	}
	return "", ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n... (diff truncated)"
}
