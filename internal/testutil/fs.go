package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInjected는 FailingFs가 주입하는 실패다.
var ErrInjected = errors.New("testutil: injected failure")

// FailOp는 FailingFs가 실패시킬 작업이다.
type FailOp string

const (
	// FailNone은 실패를 주입하지 않는다.
	FailNone FailOp = ""
	// FailTempCreate는 임시 파일 생성을 실패시킨다.
	FailTempCreate FailOp = "temp-create"
	// FailTempWrite는 임시 파일 쓰기를 실패시킨다.
	FailTempWrite FailOp = "temp-write"
	// FailRename은 최종 rename을 실패시킨다.
	FailRename FailOp = "rename"
)

// FailingFs wraps an afero.Fs and fails one step of the temp-file-then-rename
// sequence. Temp files are recognised by their ".uvsync-" name prefix.
type FailingFs struct {
	afero.Fs
	Op FailOp
}

// NewFailingFs creates a FailingFs on top of base.
func NewFailingFs(base afero.Fs, op FailOp) *FailingFs {
	return &FailingFs{Fs: base, Op: op}
}

func isTemp(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".uvsync-")
}

// OpenFile fails temp-file creation or returns a file whose writes fail.
func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if isTemp(name) && f.Op == FailTempCreate {
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrInjected}
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if isTemp(name) && f.Op == FailTempWrite {
		return &failingFile{File: file}, nil
	}
	return file, nil
}

// Rename fails when Op is FailRename.
func (f *FailingFs) Rename(oldname, newname string) error {
	if f.Op == FailRename {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: ErrInjected}
	}
	return f.Fs.Rename(oldname, newname)
}

type failingFile struct {
	afero.File
}

func (f *failingFile) Write(p []byte) (int, error) {
	// half the bytes land before the failure
	n, _ := f.File.Write(p[:len(p)/2])
	return n, &os.PathError{Op: "write", Path: f.Name(), Err: ErrInjected}
}

func (f *failingFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// TempFiles returns the leftover temp files in dir.
func TempFiles(fsys afero.Fs, dir string) []string {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if isTemp(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names
}
