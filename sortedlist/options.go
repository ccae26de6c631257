package sortedlist

import (
	"github.com/amp-labs/amp-sortedlist/tree"
)

type config struct {
	kind     tree.Kind
	treeOpts []tree.Option
}

// Option configures a list created by New or NewFunc.
type Option func(*config)

// WithTree selects the tree backend. The default is tree.RedBlack.
func WithTree(kind tree.Kind) Option {
	return func(c *config) {
		c.kind = kind
	}
}

// WithDegree sets the branching degree of B-tree backends.
func WithDegree(degree int) Option {
	return func(c *config) {
		c.treeOpts = append(c.treeOpts, tree.WithDegree(degree))
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{kind: tree.RedBlack}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
