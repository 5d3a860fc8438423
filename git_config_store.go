package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// ConfigStore is a typed key-value view of the host configuration.
// Each getter reports whether the key was present; a present value that
// cannot be parsed is an error, never a fallback to "absent".
type ConfigStore interface {
	Bool(key string) (bool, bool, error)
	String(key string) (string, bool, error)
	Int64(key string) (int64, bool, error)
}

var errInvalidConfigKey = errors.New("config key must be <section>.<name>")

var loadScopedGitConfig = gitconfig.LoadConfig

// gitConfigStore looks keys up in repository, global and system git
// configuration, in that order.
type gitConfigStore struct {
	layers []*format.Config
}

func newGitConfigStore(repo *git.Repository) (*gitConfigStore, error) {
	local, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read repository config: %w", err)
	}
	layers := []*format.Config{local.Raw}
	for _, scope := range []gitconfig.Scope{gitconfig.GlobalScope, gitconfig.SystemScope} {
		cfg, err := loadScopedGitConfig(scope)
		if err != nil {
			return nil, fmt.Errorf("read %s config: %w", scopeName(scope), err)
		}
		layers = append(layers, cfg.Raw)
	}
	return newLayeredConfigStore(layers...), nil
}

func newLayeredConfigStore(layers ...*format.Config) *gitConfigStore {
	kept := make([]*format.Config, 0, len(layers))
	for _, layer := range layers {
		if layer != nil {
			kept = append(kept, layer)
		}
	}
	return &gitConfigStore{layers: kept}
}

func scopeName(scope gitconfig.Scope) string {
	switch scope {
	case gitconfig.GlobalScope:
		return "global"
	case gitconfig.SystemScope:
		return "system"
	default:
		return "local"
	}
}

func (s *gitConfigStore) lookup(key string) (string, bool, error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return "", false, fmt.Errorf("%q: %w", key, errInvalidConfigKey)
	}
	for _, layer := range s.layers {
		if !layer.HasSection(section) {
			continue
		}
		sec := layer.Section(section)
		if !sec.HasOption(name) {
			continue
		}
		values := sec.OptionAll(name)
		if len(values) == 0 {
			return "", true, nil
		}
		return values[len(values)-1], true, nil
	}
	return "", false, nil
}

func (s *gitConfigStore) String(key string) (string, bool, error) {
	return s.lookup(key)
}

func (s *gitConfigStore) Bool(key string) (bool, bool, error) {
	raw, found, err := s.lookup(key)
	if err != nil || !found {
		return false, found, err
	}
	v, err := parseGitBool(raw)
	if err != nil {
		return false, true, err
	}
	return v, true, nil
}

func (s *gitConfigStore) Int64(key string) (int64, bool, error) {
	raw, found, err := s.lookup(key)
	if err != nil || !found {
		return 0, found, err
	}
	v, err := parseGitInt(raw)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

func parseGitBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseGitInt(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	multiplier := int64(1)
	switch value[len(value)-1] {
	case 'k', 'K':
		multiplier = 1 << 10
	case 'm', 'M':
		multiplier = 1 << 20
	case 'g', 'G':
		multiplier = 1 << 30
	}
	if multiplier != 1 {
		value = value[:len(value)-1]
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	if n > math.MaxInt64/multiplier || n < math.MinInt64/multiplier {
		return 0, fmt.Errorf("integer %q out of range", raw)
	}
	return n * multiplier, nil
}
