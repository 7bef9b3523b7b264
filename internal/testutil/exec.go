package testutil

import (
	"context"
	"os/exec"
	"strings"
)

// Response는 FakePath에 등록된 실행 파일의 출력과 에러다.
type Response struct {
	Output []byte
	Err    error
}

// FakePath는 PATH에 설치된 실행 파일을 흉내 내는 cmdexec.Commander다.
// 등록되지 않은 이름은 실제 os/exec처럼 exec.ErrNotFound로 실패한다.
type FakePath struct {
	bins map[string]Response

	// Calls는 실행된 명령줄을 순서대로 기록한다 ("uv --version").
	Calls []string
}

// NewFakePath는 아무 실행 파일도 없는 PATH를 만든다.
func NewFakePath() *FakePath {
	return &FakePath{bins: make(map[string]Response)}
}

// Install은 name을 PATH에 추가한다. 어떤 인자로 실행하든 output을 출력한다.
func (p *FakePath) Install(name, output string) *FakePath {
	p.bins[name] = Response{Output: []byte(output)}
	return p
}

// Broken은 name이 PATH에 있지만 실행하면 err로 실패하게 한다.
func (p *FakePath) Broken(name, output string, err error) *FakePath {
	p.bins[name] = Response{Output: []byte(output), Err: err}
	return p
}

// Run은 등록된 응답을 반환한다.
func (p *FakePath) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	p.Calls = append(p.Calls, strings.Join(append([]string{name}, args...), " "))

	resp, ok := p.bins[name]
	if !ok {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return resp.Output, resp.Err
}

// Called는 name과 args로 정확히 실행된 적이 있는지 반환한다.
func (p *FakePath) Called(name string, args ...string) bool {
	want := strings.Join(append([]string{name}, args...), " ")
	for _, call := range p.Calls {
		if call == want {
			return true
		}
	}
	return false
}
