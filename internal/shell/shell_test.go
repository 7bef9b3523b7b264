package shell_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/uvsync/internal/block"
	"github.com/hbjs97/uvsync/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, opts shell.Options) string {
	t.Helper()
	d, ok := shell.Lookup(name)
	require.True(t, ok, name)
	out, err := d.Render(opts)
	require.NoError(t, err)
	return out
}

func TestForOS(t *testing.T) {
	var posix []string
	for _, d := range shell.ForOS("linux") {
		posix = append(posix, d.Name)
	}
	assert.Equal(t, []string{"bash", "zsh", "fish", "tcsh"}, posix)

	darwin := shell.ForOS("darwin")
	assert.Len(t, darwin, 4)

	windows := shell.ForOS("windows")
	require.Len(t, windows, 1)
	assert.Equal(t, "powershell", windows[0].Name)
	assert.Equal(t, shell.FamilyWindows, windows[0].Family)
}

func TestLookup(t *testing.T) {
	d, ok := shell.Lookup(" ZSH ")
	require.True(t, ok)
	assert.Equal(t, "zsh", d.Name)

	d, ok = shell.Lookup("pwsh")
	require.True(t, ok)
	assert.Equal(t, "powershell", d.Name)

	_, ok = shell.Lookup("cmd")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	ds, err := shell.Select([]string{"fish", "bash"})
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "fish", ds[0].Name)
	assert.Equal(t, "bash", ds[1].Name)

	_, err = shell.Select([]string{"bash", "nu"})
	assert.ErrorContains(t, err, "nu")
}

func TestMarkersAreUniquePerDialect(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range shell.All() {
		require.NoError(t, d.Markers.Validate())
		assert.False(t, seen[d.Markers.Start], d.Name)
		seen[d.Markers.Start] = true
		assert.Contains(t, d.Markers.Start, "("+d.Name+")")
	}
}

func TestRender_IsValidBlockForEveryDialect(t *testing.T) {
	for _, d := range shell.All() {
		for _, exclude := range []bool{false, true} {
			opts := shell.DefaultOptions()
			opts.ExcludeBase = exclude
			out, err := d.Render(opts)
			require.NoError(t, err)

			lines, err := d.Markers.Lines(out)
			require.NoError(t, err, "%s exclude=%v", d.Name, exclude)
			assert.Greater(t, len(lines), 3)

			// rendered block survives a strip/append round trip
			stripped, removed, err := block.Strip(lines, d.Markers)
			require.NoError(t, err)
			assert.Equal(t, 1, removed)
			assert.Empty(t, stripped)

			assert.NotContains(t, out, "{%", d.Name)
			assert.NotContains(t, out, "%}", d.Name)
		}
	}
}

func TestRender_Bash(t *testing.T) {
	out := render(t, "bash", shell.DefaultOptions())
	assert.Contains(t, out, `if [ -n "${CONDA_PREFIX:-}" ]; then`)
	assert.Contains(t, out, `export UV_PROJECT_ENVIRONMENT="$CONDA_PREFIX"`)
	assert.Contains(t, out, "unset UV_PROJECT_ENVIRONMENT")
	assert.Contains(t, out, "PROMPT_COMMAND")
	assert.NotContains(t, out, "CONDA_DEFAULT_ENV")
}

func TestRender_BashExcludeBase(t *testing.T) {
	opts := shell.DefaultOptions()
	opts.ExcludeBase = true
	out := render(t, "bash", opts)
	assert.Contains(t, out, `[ "${CONDA_DEFAULT_ENV:-}" != "base" ]`)
}

func TestRender_Zsh(t *testing.T) {
	opts := shell.DefaultOptions()
	opts.ExcludeBase = true
	out := render(t, "zsh", opts)
	assert.Contains(t, out, "add-zsh-hook precmd _uvsync_hook")
	assert.Contains(t, out, `"${CONDA_DEFAULT_ENV:-}" != "base"`)
	assert.True(t, strings.HasPrefix(out, "# >>> uvsync initialize (zsh) >>>\n"))
	assert.True(t, strings.HasSuffix(out, "# <<< uvsync initialize (zsh) <<<\n"))
}

func TestRender_Fish(t *testing.T) {
	out := render(t, "fish", shell.DefaultOptions())
	assert.Contains(t, out, "--on-event fish_prompt")
	assert.Contains(t, out, "set -gx UV_PROJECT_ENVIRONMENT $CONDA_PREFIX")
	assert.Contains(t, out, "set -e UV_PROJECT_ENVIRONMENT")
}

func TestRender_Tcsh(t *testing.T) {
	opts := shell.DefaultOptions()
	opts.ExcludeBase = true
	out := render(t, "tcsh", opts)
	assert.Contains(t, out, "alias precmd _uvsync_hook")
	assert.Contains(t, out, "`printenv CONDA_PREFIX`")
	assert.Contains(t, out, `"$_uvsync_name" != "base"`)
	assert.Contains(t, out, "setenv UV_PROJECT_ENVIRONMENT")
	assert.Contains(t, out, "unsetenv UV_PROJECT_ENVIRONMENT")
}

func TestRender_TcshChainsExistingPrecmd(t *testing.T) {
	out := render(t, "tcsh", shell.DefaultOptions())
	assert.Contains(t, out, "set _uvsync_precmd = \"`alias precmd`\"")
	assert.Contains(t, out, `alias precmd "_uvsync_hook; $_uvsync_precmd"`)
	assert.Contains(t, out, "if ( ! $?_uvsync_precmd ) then")
	assert.Equal(t, 1, strings.Count(out, "alias precmd _uvsync_hook"), "plain alias only when no precmd exists")
}

func TestRender_PowerShell(t *testing.T) {
	opts := shell.DefaultOptions()
	opts.ExcludeBase = true
	out := render(t, "powershell", opts)
	assert.Contains(t, out, "$env:UV_PROJECT_ENVIRONMENT = $prefix")
	assert.Contains(t, out, "$env:CONDA_DEFAULT_ENV -ne 'base'")
	assert.Contains(t, out, "function global:prompt")
}

func TestRender_CustomVariables(t *testing.T) {
	opts := shell.Options{
		Variable:    "MY_VENV",
		PrefixVar:   "MAMBA_PREFIX",
		NameVar:     "MAMBA_ENV",
		BaseName:    "root",
		ExcludeBase: true,
	}
	for _, d := range shell.All() {
		out, err := d.Render(opts)
		require.NoError(t, err)
		assert.Contains(t, out, "MY_VENV", d.Name)
		assert.Contains(t, out, "MAMBA_PREFIX", d.Name)
		assert.Contains(t, out, "root", d.Name)
		assert.NotContains(t, out, "UV_PROJECT_ENVIRONMENT", d.Name)
	}
}

func TestRCPath(t *testing.T) {
	env := shell.Env{
		Home:       "/home/u",
		ConfigHome: "/home/u/.xdg",
		Documents:  "/home/u/Docs",
		Getenv:     func(string) string { return "" },
	}
	cases := map[string]string{
		"bash":       "/home/u/.bashrc",
		"zsh":        "/home/u/.zshrc",
		"fish":       "/home/u/.xdg/fish/config.fish",
		"tcsh":       "/home/u/.tcshrc",
		"powershell": "/home/u/Docs/PowerShell/Microsoft.PowerShell_profile.ps1",
	}
	for name, want := range cases {
		d, _ := shell.Lookup(name)
		assert.Equal(t, filepath.FromSlash(want), d.RCPath(env), name)
	}
}

func TestRCPath_Fallbacks(t *testing.T) {
	env := shell.Env{
		Home: "/home/u",
		Getenv: func(k string) string {
			if k == "ZDOTDIR" {
				return "/home/u/.zsh"
			}
			return ""
		},
	}
	zsh, _ := shell.Lookup("zsh")
	assert.Equal(t, filepath.FromSlash("/home/u/.zsh/.zshrc"), zsh.RCPath(env))

	fish, _ := shell.Lookup("fish")
	assert.Equal(t, filepath.FromSlash("/home/u/.config/fish/config.fish"), fish.RCPath(env))

	ps, _ := shell.Lookup("powershell")
	assert.Equal(t, filepath.FromSlash("/home/u/Documents/PowerShell/Microsoft.PowerShell_profile.ps1"), ps.RCPath(env))
}

func TestDetect(t *testing.T) {
	cases := map[string]string{
		"/bin/zsh":            "zsh",
		"/usr/bin/bash":       "bash",
		"/usr/local/bin/fish": "fish",
		"/bin/csh":            "tcsh",
		"/usr/bin/nu":         "",
	}
	for sh, want := range cases {
		env := shell.Env{Getenv: func(k string) string {
			if k == "SHELL" {
				return sh
			}
			return ""
		}}
		assert.Equal(t, want, shell.Detect(env), sh)
	}

	env := shell.Env{Getenv: func(k string) string {
		if k == "PSModulePath" {
			return `C:\Program Files\PowerShell\Modules`
		}
		return ""
	}}
	assert.Equal(t, "powershell", shell.Detect(env))
}
