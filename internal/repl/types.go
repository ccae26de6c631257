package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/sortable"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
	"github.com/amp-labs/amp-sortedlist/tree"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownType is returned when an element type name is not recognized.
var ErrUnknownType = errors.New("unknown element type")

// ElementType names the kind of values a list built by Build holds.
type ElementType string

const (
	IntType     ElementType = "int"
	FloatType   ElementType = "float"
	StringType  ElementType = "string"
	NaturalType ElementType = "natural"
	// CollatedType holds NFC-normalized strings in Unicode collation order.
	CollatedType ElementType = "collated"
)

// ElementTypes returns every supported element type, default first.
func ElementTypes() []ElementType {
	return []ElementType{IntType, FloatType, StringType, NaturalType, CollatedType}
}

// ParseElementType converts a name into an ElementType. An empty name means int.
func ParseElementType(name string) (ElementType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return IntType, nil
	}

	for _, typ := range ElementTypes() {
		if string(typ) == name {
			return typ, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Config describes the list a Runner operates on.
type Config struct {
	// Name labels the list in metrics and logs.
	Name   string
	Type   ElementType
	Tree   tree.Kind
	Degree int
}

// Build creates an instrumented list as described by cfg and an Interpreter
// over it writing to out.
func Build(ctx context.Context, cfg Config, out io.Writer, opts ...Option) (Runner, error) {
	switch cfg.Type {
	case IntType, "":
		return build[sortable.Int](ctx, cfg, sortable.CompareFunc[sortable.Int](), ParseInt, out, opts)
	case FloatType:
		return build[sortable.Float](ctx, cfg, sortable.CompareFunc[sortable.Float](), ParseFloat, out, opts)
	case StringType:
		return build[sortable.String](ctx, cfg, sortable.CompareFunc[sortable.String](), ParseString, out, opts)
	case NaturalType:
		return build[sortable.Natural](ctx, cfg, sortable.CompareFunc[sortable.Natural](), ParseNatural, out, opts)
	case CollatedType:
		return build[string](ctx, cfg, CollatedOrder(), ParseCollated, out, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(cfg.Type))
	}
}

func build[T any](
	ctx context.Context,
	cfg Config,
	order compare.Func[T],
	parse Parser[T],
	out io.Writer,
	opts []Option,
) (Runner, error) {
	listOpts := []sortedlist.Option{sortedlist.WithTree(cfg.Tree)}
	if cfg.Degree > 0 {
		listOpts = append(listOpts, sortedlist.WithDegree(cfg.Degree))
	}

	list, err := sortedlist.NewFunc(order, listOpts...)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "repl"
	}

	logger.Get(ctx).Debug("list created",
		"name", name, "type", string(cfg.Type), "tree", cfg.Tree.String())

	return New(sortedlist.NewInstrumented(list, name, logger.Get(ctx)), parse, out, opts...), nil
}

// ParseInt parses a base-10 integer.
func ParseInt(s string) (sortable.Int, error) {
	v, err := strconv.Atoi(s)

	return sortable.Int(v), err
}

// ParseFloat parses a 64-bit float.
func ParseFloat(s string) (sortable.Float, error) {
	v, err := strconv.ParseFloat(s, 64)

	return sortable.Float(v), err
}

// ParseString accepts any argument as is.
func ParseString(s string) (sortable.String, error) {
	return sortable.String(s), nil
}

// ParseNatural accepts any argument; values order naturally ("a2" < "a10").
func ParseNatural(s string) (sortable.Natural, error) {
	return sortable.Natural(s), nil
}

// CollatedOrder returns the root-locale Unicode collation order. Each call
// creates its own collator since collators are not safe for concurrent use.
func CollatedOrder() compare.Func[string] {
	return collate.New(language.Und).CompareString
}

// ParseCollated returns the argument in Unicode normal form C, so precomposed
// and decomposed spellings are the same entry.
func ParseCollated(s string) (string, error) {
	return norm.NFC.String(s), nil
}
