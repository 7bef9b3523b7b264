package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Env는 시작 파일 경로 계산에 쓰이는 사용자 환경이다.
type Env struct {
	Home       string
	ConfigHome string
	Documents  string
	Getenv     func(string) string
}

// DefaultEnv는 현재 프로세스의 홈 디렉토리와 XDG 경로로 Env를 만든다.
func DefaultEnv() Env {
	home, _ := os.UserHomeDir() // 조회 실패 시 빈 문자열
	return Env{
		Home:       home,
		ConfigHome: xdg.ConfigHome,
		Documents:  xdg.UserDirs.Documents,
		Getenv:     os.Getenv,
	}
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e Env) configHome() string {
	if e.ConfigHome != "" {
		return e.ConfigHome
	}
	return filepath.Join(e.Home, ".config")
}

func bashRC(e Env) string {
	return filepath.Join(e.Home, ".bashrc")
}

func zshRC(e Env) string {
	if dir := e.getenv("ZDOTDIR"); dir != "" {
		return filepath.Join(dir, ".zshrc")
	}
	return filepath.Join(e.Home, ".zshrc")
}

func fishRC(e Env) string {
	return filepath.Join(e.configHome(), "fish", "config.fish")
}

func tcshRC(e Env) string {
	return filepath.Join(e.Home, ".tcshrc")
}

func powershellRC(e Env) string {
	docs := e.Documents
	if docs == "" {
		docs = filepath.Join(e.Home, "Documents")
	}
	return filepath.Join(docs, "PowerShell", "Microsoft.PowerShell_profile.ps1")
}

// Detect는 현재 사용자의 셸 dialect 이름을 추정한다. 알 수 없으면 빈 문자열이다.
func Detect(env Env) string {
	if sh := env.getenv("SHELL"); sh != "" {
		name := strings.TrimSuffix(filepath.Base(sh), ".exe")
		if name == "csh" {
			name = "tcsh"
		}
		if d, ok := Lookup(name); ok {
			return d.Name
		}
	}
	if env.getenv("PSModulePath") != "" {
		return "powershell"
	}
	return ""
}
