package main

import (
	"github.com/amp-labs/amp-sortedlist/internal/repl"
	"github.com/amp-labs/amp-sortedlist/tree"
	"github.com/spf13/pflag"
)

type treeKindFlag tree.Kind

var _ pflag.Value = (*treeKindFlag)(nil)

func (f *treeKindFlag) Type() string  { return "kind" }
func (f treeKindFlag) String() string { return string(f) }
func (f treeKindFlag) Get() any       { return tree.Kind(f) }

func (f *treeKindFlag) Set(s string) error {
	kind, err := tree.ParseKind(s)
	if err != nil {
		return err
	}

	*f = treeKindFlag(kind)

	return nil
}

type elementTypeFlag repl.ElementType

var _ pflag.Value = (*elementTypeFlag)(nil)

func (f *elementTypeFlag) Type() string  { return "type" }
func (f elementTypeFlag) String() string { return string(f) }
func (f elementTypeFlag) Get() any       { return repl.ElementType(f) }

func (f *elementTypeFlag) Set(s string) error {
	typ, err := repl.ParseElementType(s)
	if err != nil {
		return err
	}

	*f = elementTypeFlag(typ)

	return nil
}
