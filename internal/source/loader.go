package source

import (
	"context"
	"slices"

	"github.com/five82/pick/internal/window"
)

// Loader produces the full item set for one list.
type Loader interface {
	Load(ctx context.Context) ([]window.Item[string], error)
}

// File loads a newline separated file on every call.
type File struct {
	Path string
	Max  int
	Tail bool
}

// Load implements Loader.
func (f File) Load(ctx context.Context) ([]window.Item[string], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(f.Path, f.Max, f.Tail)
}

// Static serves a fixed item set, such as lines read from stdin.
type Static []window.Item[string]

// Load implements Loader.
func (s Static) Load(ctx context.Context) ([]window.Item[string], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}
