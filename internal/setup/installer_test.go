package setup

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hbjs97/uvsync/internal/block"
	"github.com/hbjs97/uvsync/internal/shell"
	"github.com/hbjs97/uvsync/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() shell.Env {
	return shell.Env{
		Home:       "/home/u",
		ConfigHome: "/home/u/.config",
		Documents:  "/home/u/Documents",
		Getenv:     func(string) string { return "" },
	}
}

func newInstaller(fsys afero.Fs, goos string) *Installer {
	return &Installer{
		Fs:       fsys,
		Dialects: shell.ForOS(goos),
		Options:  shell.DefaultOptions(),
		Env:      testEnv(),
		Logger:   zerolog.Nop(),
	}
}

func TestInstaller_InstallAllPOSIX(t *testing.T) {
	fsys := afero.NewMemMapFs()
	inst := newInstaller(fsys, "linux")

	results := inst.Install()
	require.Len(t, results, 4)
	require.NoError(t, Failed(results))

	for _, r := range results {
		assert.Equal(t, ActionInstalled, r.Action, r.Dialect)
		content := testutil.ReadFile(t, fsys, r.Path)
		assert.Contains(t, content, "uvsync initialize ("+r.Dialect+")")
	}
	assert.Equal(t, filepath.FromSlash("/home/u/.config/fish/config.fish"), results[2].Path)

	// 두 번째 실행은 변경 없음
	for _, r := range inst.Install() {
		assert.Equal(t, ActionUnchanged, r.Action, r.Dialect)
	}
}

func TestInstaller_InstallWindows(t *testing.T) {
	fsys := afero.NewMemMapFs()
	inst := newInstaller(fsys, "windows")

	results := inst.Install()
	require.Len(t, results, 1)
	assert.Equal(t, "powershell", results[0].Dialect)
	assert.Equal(t, ActionInstalled, results[0].Action)
	assert.Equal(t,
		filepath.FromSlash("/home/u/Documents/PowerShell/Microsoft.PowerShell_profile.ps1"),
		results[0].Path)
}

func TestInstaller_PathOverride(t *testing.T) {
	fsys := afero.NewMemMapFs()
	inst := newInstaller(fsys, "linux")
	inst.Paths = map[string]string{"bash": "/home/u/.bash_profile"}

	results := inst.Install()
	require.NoError(t, Failed(results))
	assert.Equal(t, "/home/u/.bash_profile", results[0].Path)

	exists, err := afero.Exists(fsys, "/home/u/.bashrc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInstaller_ContinuesAfterFailure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/home/u/.zshrc", "# >>> uvsync initialize (zsh) >>>\n")
	inst := newInstaller(fsys, "linux")

	results := inst.Install()
	require.Len(t, results, 4)

	assert.Equal(t, ActionInstalled, results[0].Action)
	assert.Equal(t, ActionFailed, results[1].Action)
	assert.ErrorIs(t, results[1].Err, block.ErrMalformedBlock)
	assert.Equal(t, ActionInstalled, results[2].Action)
	assert.Equal(t, ActionInstalled, results[3].Action)

	err := Failed(results)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, block.ErrMalformedBlock)
	assert.Contains(t, err.Error(), "zsh")
	assert.Contains(t, err.Error(), "1/4")
}

func TestInstaller_AtomicFailureLeavesFiles(t *testing.T) {
	base := afero.NewMemMapFs()
	testutil.WriteFile(t, base, "/home/u/.bashrc", "export A=1\n")
	inst := newInstaller(testutil.NewFailingFs(base, testutil.FailRename), "linux")

	results := inst.Install()
	for _, r := range results {
		assert.Equal(t, ActionFailed, r.Action, r.Dialect)
		assert.True(t, errors.Is(r.Err, testutil.ErrInjected), r.Dialect)
	}
	assert.Equal(t, "export A=1\n", testutil.ReadFile(t, base, "/home/u/.bashrc"))
	assert.Empty(t, testutil.TempFiles(base, "/home/u"))
}

func TestInstaller_Uninstall(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/home/u/.bashrc", "export A=1\n")
	inst := newInstaller(fsys, "linux")
	require.NoError(t, Failed(inst.Install()))

	results := inst.Uninstall()
	require.NoError(t, Failed(results))
	for _, r := range results {
		assert.Equal(t, ActionRemoved, r.Action, r.Dialect)
	}
	assert.Equal(t, "export A=1\n", testutil.ReadFile(t, fsys, "/home/u/.bashrc"))

	for _, r := range inst.Uninstall() {
		assert.Equal(t, ActionAbsent, r.Action, r.Dialect)
	}
}

func TestInstaller_Status(t *testing.T) {
	fsys := afero.NewMemMapFs()
	inst := newInstaller(fsys, "linux")
	inst.Dialects = []shell.Dialect{dialect(t, "bash"), dialect(t, "zsh")}

	for _, r := range inst.Status() {
		assert.Equal(t, StateMissingFile, r.State, r.Dialect)
	}

	require.NoError(t, Failed(inst.Install()))
	for _, r := range inst.Status() {
		assert.Equal(t, StateCurrent, r.State, r.Dialect)
		assert.Equal(t, 1, r.Line, r.Dialect)
	}

	inst.Options.ExcludeBase = true
	for _, r := range inst.Status() {
		assert.Equal(t, StateStale, r.State, r.Dialect)
	}
}

func TestFailed_NoFailures(t *testing.T) {
	assert.NoError(t, Failed(nil))
	assert.NoError(t, Failed([]Result{{Dialect: "bash", Action: ActionInstalled}}))
}
