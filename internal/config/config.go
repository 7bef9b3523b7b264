package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	kotoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/hbjs97/uvsync/internal/shell"
)

// EnvPrefix는 설정을 덮어쓰는 환경변수 접두사다.
const EnvPrefix = "UVSYNC_"

// ErrConfig는 설정 파일을 읽거나 검증하는 데 실패했을 때 반환된다.
var ErrConfig = errors.New("설정 오류")

var (
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	envRe   = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// Config는 uvsync 설정 파일의 최상위 구조체다.
type Config struct {
	Variable    string            `koanf:"variable" toml:"variable"`
	PrefixVar   string            `koanf:"prefix_var" toml:"prefix_var"`
	NameVar     string            `koanf:"name_var" toml:"name_var"`
	BaseName    string            `koanf:"base_name" toml:"base_name"`
	ExcludeBase bool              `koanf:"exclude_base" toml:"exclude_base"`
	Dialects    []string          `koanf:"dialects" toml:"dialects,omitempty"`
	Paths       map[string]string `koanf:"paths" toml:"paths,omitempty"`
}

// Default는 설정 파일이 없을 때 쓰이는 기본값이다.
func Default() *Config {
	opts := shell.DefaultOptions()
	return &Config{
		Variable:  opts.Variable,
		PrefixVar: opts.PrefixVar,
		NameVar:   opts.NameVar,
		BaseName:  opts.BaseName,
	}
}

// DefaultPath는 $XDG_CONFIG_HOME/uvsync/config.toml이다.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "uvsync", "config.toml")
}

// Load는 기본값, fsys에 있는 path의 TOML 파일, UVSYNC_* 환경변수 순서로 설정을 병합한다.
// path가 비어 있으면 DefaultPath를 쓰고, 파일이 없으면 건너뛴다.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	k := koanf.New(".")

	def := Default()
	defaults := map[string]interface{}{
		"variable":     def.Variable,
		"prefix_var":   def.PrefixVar,
		"name_var":     def.NameVar,
		"base_name":    def.BaseName,
		"exclude_base": def.ExcludeBase,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}

	info, err := fsys.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("config.Load: %w: %s는 디렉토리임", ErrConfig, path)
	case err == nil:
		if err := loadFile(k, fsys, path); err != nil {
			return nil, fmt.Errorf("config.Load: %w: %s: %w", ErrConfig, path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}

	// UVSYNC_EXCLUDE_BASE -> exclude_base, UVSYNC_PATHS__ZSH -> paths.zsh
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFile은 TOML 파일을 파싱해 k 위에 병합한다.
func loadFile(k *koanf.Koanf, fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	values, err := kotoml.Parser().Unmarshal(data)
	if err != nil {
		return err
	}
	return k.Load(confmap.Provider(values, ""), nil)
}

// Save는 cfg를 TOML로 fsys의 path에 쓴다. 상위 디렉토리는 0700, 파일은 0600으로 만든다.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// Options는 hook 템플릿에 넘길 값을 만든다.
func (c *Config) Options() shell.Options {
	return shell.Options{
		Variable:    c.Variable,
		PrefixVar:   c.PrefixVar,
		NameVar:     c.NameVar,
		BaseName:    c.BaseName,
		ExcludeBase: c.ExcludeBase,
	}
}

// SelectDialects는 dialects 설정이 있으면 그 목록을, 없으면 goos의 기본 목록을 반환한다.
func (c *Config) SelectDialects(goos string) ([]shell.Dialect, error) {
	if len(c.Dialects) == 0 {
		return shell.ForOS(goos), nil
	}
	ds, err := shell.Select(c.Dialects)
	if err != nil {
		return nil, fmt.Errorf("config.SelectDialects: %w: %w", ErrConfig, err)
	}
	return ds, nil
}

// normalize는 dialect 이름을 정규화하고 경로의 ~를 홈 디렉토리로 확장한다.
func (c *Config) normalize() error {
	for i, name := range c.Dialects {
		if d, ok := shell.Lookup(name); ok {
			c.Dialects[i] = d.Name
		}
	}
	if len(c.Paths) == 0 {
		return nil
	}
	paths := make(map[string]string, len(c.Paths))
	for name, p := range c.Paths {
		if d, ok := shell.Lookup(name); ok {
			name = d.Name
		}
		expanded, err := expandHome(p)
		if err != nil {
			return fmt.Errorf("config.Load: %w: paths.%s: %w", ErrConfig, name, err)
		}
		paths[name] = expanded
	}
	c.Paths = paths
	return nil
}

func (c *Config) validate() error {
	vars := []struct {
		key, value string
	}{
		{"variable", c.Variable},
		{"prefix_var", c.PrefixVar},
		{"name_var", c.NameVar},
	}
	for _, v := range vars {
		if !identRe.MatchString(v.value) {
			return fmt.Errorf("config.Load: %w: %s %q는 환경변수 이름이 아님", ErrConfig, v.key, v.value)
		}
	}
	if c.Variable == c.PrefixVar {
		return fmt.Errorf("config.Load: %w: variable과 prefix_var가 같음 (%s)", ErrConfig, c.Variable)
	}
	if !envRe.MatchString(c.BaseName) {
		return fmt.Errorf("config.Load: %w: base_name %q 허용되지 않는 문자", ErrConfig, c.BaseName)
	}
	for _, name := range c.Dialects {
		if _, ok := shell.Lookup(name); !ok {
			return fmt.Errorf("config.Load: %w: dialects의 %q 지원하지 않음 (지원: %s)",
				ErrConfig, name, strings.Join(shell.Names(), ", "))
		}
	}
	names := make([]string, 0, len(c.Paths))
	for name := range c.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := shell.Lookup(name); !ok {
			return fmt.Errorf("config.Load: %w: paths.%s 지원하지 않는 셸", ErrConfig, name)
		}
		if !filepath.IsAbs(c.Paths[name]) {
			return fmt.Errorf("config.Load: %w: paths.%s는 절대 경로여야 함", ErrConfig, name)
		}
	}
	return nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
