// Package config loads and validates the dx configuration from
// ~/.config/dx/config.toml.
//
// A missing config file is not an error: every command works with the
// defaults (agent "claude", concurrency 5). The file only needs to exist for
// the pieces that have no sensible default, like the Key Vault name or the
// LLM endpoint.
//
// Example:
//
//	repo_dir = "~/src"
//
//	[agent]
//	command = "claude"
//	args = ["--dangerously-skip-permissions"]
//	concurrency = 5
//
//	[llm]
//	base_url = "https://api.openai.com/v1"
//	model = "gpt-4o-mini"
//	token_env = "DX_LLM_TOKEN"
//
//	[vault]
//	name = "team-kv"
package config
