package setup

import (
	"testing"

	"github.com/hbjs97/uvsync/internal/block"
	"github.com/hbjs97/uvsync/internal/shell"
	"github.com/hbjs97/uvsync/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialect(t *testing.T, name string) shell.Dialect {
	t.Helper()
	d, ok := shell.Lookup(name)
	require.True(t, ok)
	return d
}

func TestInstallShellHook_Zsh(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.zshrc"

	action, err := InstallShellHook(fsys, dialect(t, "zsh"), rcPath, shell.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, ActionInstalled, action)

	content := testutil.ReadFile(t, fsys, rcPath)
	assert.Contains(t, content, "# >>> uvsync initialize (zsh) >>>")
	assert.Contains(t, content, "add-zsh-hook precmd _uvsync_hook")
}

func TestInstallShellHook_AlreadyInstalled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.bashrc"
	d := dialect(t, "bash")

	_, err := InstallShellHook(fsys, d, rcPath, shell.DefaultOptions())
	require.NoError(t, err)
	before := testutil.ReadFile(t, fsys, rcPath)

	action, err := InstallShellHook(fsys, d, rcPath, shell.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, action)
	// Should NOT have duplicate installations
	assert.Equal(t, before, testutil.ReadFile(t, fsys, rcPath))
}

func TestInstallShellHook_UpdatesOnOptionChange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.bashrc"
	d := dialect(t, "bash")

	_, err := InstallShellHook(fsys, d, rcPath, shell.DefaultOptions())
	require.NoError(t, err)

	opts := shell.DefaultOptions()
	opts.ExcludeBase = true
	action, err := InstallShellHook(fsys, d, rcPath, opts)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, action)
	assert.Contains(t, testutil.ReadFile(t, fsys, rcPath), `!= "base"`)
}

func TestInstallShellHook_AppendsToExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.zshrc"
	testutil.WriteFile(t, fsys, rcPath, "# existing content\n")

	_, err := InstallShellHook(fsys, dialect(t, "zsh"), rcPath, shell.DefaultOptions())
	require.NoError(t, err)

	content := testutil.ReadFile(t, fsys, rcPath)
	assert.Contains(t, content, "# existing content\n\n# >>> uvsync initialize (zsh) >>>")
}

func TestInstallShellHook_Malformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.zshrc"
	original := "A\n# >>> uvsync initialize (zsh) >>>\nhalf\n"
	testutil.WriteFile(t, fsys, rcPath, original)

	action, err := InstallShellHook(fsys, dialect(t, "zsh"), rcPath, shell.DefaultOptions())
	assert.ErrorIs(t, err, block.ErrMalformedBlock)
	assert.Equal(t, ActionFailed, action)
	assert.Equal(t, original, testutil.ReadFile(t, fsys, rcPath))
}

func TestInstallShellHook_OtherDialectBlockUntouched(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.profile"

	_, err := InstallShellHook(fsys, dialect(t, "bash"), rcPath, shell.DefaultOptions())
	require.NoError(t, err)
	_, err = InstallShellHook(fsys, dialect(t, "zsh"), rcPath, shell.DefaultOptions())
	require.NoError(t, err)

	content := testutil.ReadFile(t, fsys, rcPath)
	assert.Contains(t, content, "(bash) >>>")
	assert.Contains(t, content, "(zsh) >>>")
}

func TestUninstallShellHook(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rcPath := "/home/u/.config/fish/config.fish"
	d := dialect(t, "fish")
	testutil.WriteFile(t, fsys, rcPath, "set -gx EDITOR vim\n")

	_, err := InstallShellHook(fsys, d, rcPath, shell.DefaultOptions())
	require.NoError(t, err)

	action, err := UninstallShellHook(fsys, d, rcPath)
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, action)
	assert.Equal(t, "set -gx EDITOR vim\n", testutil.ReadFile(t, fsys, rcPath))

	action, err = UninstallShellHook(fsys, d, rcPath)
	require.NoError(t, err)
	assert.Equal(t, ActionAbsent, action)
}

func TestUninstallShellHook_MissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	action, err := UninstallShellHook(fsys, dialect(t, "tcsh"), "/home/u/.tcshrc")
	require.NoError(t, err)
	assert.Equal(t, ActionAbsent, action)

	exists, err := afero.Exists(fsys, "/home/u/.tcshrc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheckShellHook(t *testing.T) {
	d := dialect(t, "bash")
	opts := shell.DefaultOptions()
	current, err := d.Render(opts)
	require.NoError(t, err)
	stale := "# >>> uvsync initialize (bash) >>>\nold\n# <<< uvsync initialize (bash) <<<\n"

	tests := []struct {
		name    string
		content *string
		want    State
		count   int
	}{
		{"missing file", nil, StateMissingFile, 0},
		{"absent", ptr("export A=1\n"), StateAbsent, 0},
		{"current", ptr("export A=1\n\n" + current), StateCurrent, 1},
		{"stale", ptr(stale), StateStale, 1},
		{"duplicated", ptr(current + current), StateStale, 2},
		{"malformed", ptr("# >>> uvsync initialize (bash) >>>\n"), StateMalformed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			rcPath := "/home/u/.bashrc"
			if tt.content != nil {
				testutil.WriteFile(t, fsys, rcPath, *tt.content)
			}

			r := CheckShellHook(fsys, d, rcPath, opts)
			assert.Equal(t, tt.want, r.State)
			assert.Equal(t, tt.count, r.Count)
			assert.Equal(t, "bash", r.Dialect)
			assert.Equal(t, rcPath, r.Path)
			if tt.want == StateMalformed {
				assert.ErrorIs(t, r.Err, block.ErrMalformedBlock)
			} else {
				assert.NoError(t, r.Err)
			}
		})
	}
}

func ptr(s string) *string { return &s }
