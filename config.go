package main

import (
	"fmt"
	"strings"

	"github.com/mrbonezy/git-select-branch/ui"
)

const (
	configKeyFuzzy              = "select-branch.fuzzy"
	configKeyShowRemoteBranches = "select-branch.show-remote-branches"
	configKeyTheme              = "select-branch.theme"
	configKeyLimit              = "select-branch.limit"

	limitUnlimited      = "none"
	defaultBranchLimit  = 20
	defaultFuzzy        = true
	defaultShowRemote   = false
	defaultPresentation = ui.ThemeColorful
)

// Config is the resolved select-branch.* configuration for one session.
type Config struct {
	Fuzzy              bool
	ShowRemoteBranches bool
	Theme              ui.Theme

	limit     int
	unlimited bool
}

func defaultConfig() Config {
	return Config{
		Fuzzy:              defaultFuzzy,
		ShowRemoteBranches: defaultShowRemote,
		Theme:              defaultPresentation,
		limit:              defaultBranchLimit,
	}
}

// Limit returns the result ceiling, or false when results are unlimited.
// Only an explicit "none" is unlimited; the zero Config has a ceiling of 0.
func (c Config) Limit() (int, bool) {
	if c.unlimited {
		return 0, false
	}
	return c.limit, true
}

func (c Config) withLimit(n int) Config {
	c.limit = n
	c.unlimited = false
	return c
}

func (c Config) withoutLimit() Config {
	c.limit = 0
	c.unlimited = true
	return c
}

func resolveConfig(store ConfigStore) (Config, error) {
	cfg := defaultConfig()

	fuzzy, found, err := store.Bool(configKeyFuzzy)
	if err != nil {
		return Config{}, boolConfigError(store, configKeyFuzzy, err)
	}
	if found {
		cfg.Fuzzy = fuzzy
	}

	showRemote, found, err := store.Bool(configKeyShowRemoteBranches)
	if err != nil {
		return Config{}, boolConfigError(store, configKeyShowRemoteBranches, err)
	}
	if found {
		cfg.ShowRemoteBranches = showRemote
	}

	themeName, found, err := store.String(configKeyTheme)
	if err != nil {
		return Config{}, err
	}
	if found {
		theme, ok := ui.ParseTheme(themeName)
		if !ok {
			return Config{}, &ConfigError{
				Key:   configKeyTheme,
				Value: themeName,
				Hint:  `The value must be one of "colorful", "simple".`,
			}
		}
		cfg.Theme = theme
	}

	cfg, err = resolveLimit(store, cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveLimit(store ConfigStore, cfg Config) (Config, error) {
	raw, found, err := store.String(configKeyLimit)
	if err != nil {
		return Config{}, err
	}
	if !found {
		return cfg, nil
	}
	if strings.EqualFold(strings.TrimSpace(raw), limitUnlimited) {
		return cfg.withoutLimit(), nil
	}
	n, _, err := store.Int64(configKeyLimit)
	if err != nil {
		return Config{}, limitConfigError(raw, err)
	}
	if n <= 0 {
		return Config{}, limitConfigError(raw, nil)
	}
	maxInt := int64(^uint(0) >> 1)
	if n > maxInt {
		return Config{}, limitConfigError(raw, fmt.Errorf("%d overflows int", n))
	}
	return cfg.withLimit(int(n)), nil
}

func limitConfigError(raw string, err error) error {
	return &ConfigError{
		Key:   configKeyLimit,
		Value: raw,
		Err:   err,
		Hint: "The value must be either a positive integer, or \"none\". e.g.:\n" +
			"> git config --global select-branch.limit none\n" +
			"or\n" +
			"> git config --global select-branch.limit 20",
	}
}

func boolConfigError(store ConfigStore, key string, err error) error {
	raw, _, _ := store.String(key)
	return &ConfigError{
		Key:   key,
		Value: raw,
		Err:   err,
		Hint:  `The value must be a boolean, e.g. "true" or "false".`,
	}
}
