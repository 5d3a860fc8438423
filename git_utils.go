package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errNotInGitRepository = errors.New("not in a git repository")

// DiscoveryError reports that no usable repository was found for dir.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover repository at %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ConfigError is a present but malformed select-branch.* value.
type ConfigError struct {
	Key   string
	Value string
	Hint  string
	Err   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q is not a valid %q value", e.Value, e.Key)
	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	if e.Hint != "" {
		b.WriteString(".\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CheckoutError wraps the failing step of a branch checkout.
type CheckoutError struct {
	Ref  string
	Step string
	Err  error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout %s: %s: %v", e.Ref, e.Step, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

func workingDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	return filepath.Abs(dir)
}
