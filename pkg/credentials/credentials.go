// Package credentials abstracts where the API key comes from. The fetch
// layer only needs to know whether a key exists right now, not how it is
// stored.
package credentials

import (
	"context"
	"errors"
	"os"
	"strings"
)

// ErrUnavailable signals that the credential store exists but cannot be
// read at this moment (e.g. a locked secret store). Callers should treat
// this as transient and try again soon, unlike a genuinely absent key.
var ErrUnavailable = errors.New("credential store temporarily unavailable")

// Provider supplies the API credential.
//
// Read returns the key, or an empty string when no credential is configured.
// An absent credential is not an error; ErrUnavailable is reserved for
// stores that are temporarily inaccessible.
type Provider interface {
	Read(ctx context.Context) (string, error)
}

// Static is a fixed in-process credential, mainly for tests and examples.
type Static string

// Read implements Provider.
func (s Static) Read(ctx context.Context) (string, error) {
	return string(s), nil
}

// Env reads the credential from an environment variable.
type Env struct {
	// Var is the environment variable name holding the API key.
	Var string
}

// Read implements Provider.
func (e Env) Read(ctx context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(e.Var)), nil
}

// File reads the credential from a file, one key per file. A missing file
// means no credential is configured; a permission failure maps to
// ErrUnavailable so the caller retries once the store is accessible again.
type File struct {
	Path string
}

// Read implements Provider.
func (f File) Read(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", ErrUnavailable
	}
	return strings.TrimSpace(string(data)), nil
}
