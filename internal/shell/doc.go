// Package shell describes the shell dialects uvsync supports. Each dialect
// carries its startup-file location, its block markers and a template that
// renders the hook (PROMPT_COMMAND for Bash, precmd for Zsh and tcsh,
// fish_prompt for Fish, a prompt wrapper for PowerShell) keeping the uv
// project environment in step with the active conda environment.
package shell
