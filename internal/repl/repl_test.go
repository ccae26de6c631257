package repl_test

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/OneOfOne/xxhash"
	"github.com/amp-labs/amp-sortedlist/internal/repl"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
	"github.com/amp-labs/amp-sortedlist/tests"
	"github.com/amp-labs/amp-sortedlist/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newIntInterpreter(t *testing.T, out *bytes.Buffer, opts ...repl.Option) *repl.Interpreter[int] {
	t.Helper()

	list, err := sortedlist.NewFunc(cmp.Compare[int])
	require.NoError(t, err)

	return repl.New(list, strconv.Atoi, out, opts...)
}

const transcriptScript = `# scores
add 5 3 8
list
position 5
position 4
get 3
remove 3
size
remove 3
list

remove-at 9
get x
bogus
empty
clear
empty
`

const transcriptOutput = `ok
[3 5 8]
2
-2
8
true
2
false
[5 8]
error: position out of range: position 9, size 2
error: bad argument: position "x": strconv.Atoi: parsing "x": invalid syntax
error: unknown command: "bogus"
false
ok
true
`

func TestRunScript(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	interp := newIntInterpreter(t, &out)

	err := interp.RunScript(tests.Context(t), strings.NewReader(transcriptScript))
	require.Error(t, err)
	require.ErrorIs(t, err, sortedlist.ErrOutOfRange)
	require.ErrorIs(t, err, repl.ErrBadArgument)
	require.ErrorIs(t, err, repl.ErrUnknownCommand)

	assert.Equal(t, transcriptOutput, out.String())
	assert.Contains(t, err.Error(), "line 12: position out of range")
	assert.Contains(t, err.Error(), "line 13: bad argument")
	assert.Contains(t, err.Error(), "line 14: unknown command")
}

func TestRunScriptStops(t *testing.T) {
	t.Parallel()

	t.Run("exit ends the script", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		interp := newIntInterpreter(t, &out)

		err := interp.RunScript(tests.Context(t), strings.NewReader("add 1\nexit\nadd 2\nlist\n"))
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out.String())
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		interp := newIntInterpreter(t, &out)

		ctx, cancel := context.WithCancel(tests.Context(t))
		cancel()

		err := interp.RunScript(ctx, strings.NewReader("add 1\n"))
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, out.String())
	})
}

func TestExec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		wantErr error
		output  string
	}{
		{name: "blank", line: "   ", output: ""},
		{name: "comment", line: "# add 1", output: ""},
		{name: "add without values", line: "add", wantErr: repl.ErrBadArgument},
		{name: "add bad value", line: "add 1 two", wantErr: repl.ErrBadArgument},
		{name: "remove needs one value", line: "remove 1 2", wantErr: repl.ErrBadArgument},
		{name: "get needs one position", line: "get", wantErr: repl.ErrBadArgument},
		{name: "size takes nothing", line: "size 1", wantErr: repl.ErrBadArgument},
		{name: "get at zero", line: "get 0", wantErr: sortedlist.ErrOutOfRange},
		{name: "upper case command", line: "SIZE", output: "0\n"},
		{name: "quit", line: "quit", wantErr: repl.ErrQuit},
		{name: "help", line: "help", output: "commands:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			interp := newIntInterpreter(t, &out)

			err := interp.Exec(t.Context(), tt.line)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, out.String())

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out.String(), tt.output), out.String())
		})
	}
}

func TestAddIsAllOrNothing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	interp := newIntInterpreter(t, &out)

	require.ErrorIs(t, interp.Exec(t.Context(), "add 1 2 x"), repl.ErrBadArgument)
	require.NoError(t, interp.Exec(t.Context(), "size"))
	assert.Equal(t, "0\n", out.String())
}

func TestDigest(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	interp := newIntInterpreter(t, &out)

	require.NoError(t, interp.Exec(t.Context(), "add 3 1 2"))
	out.Reset()

	require.NoError(t, interp.Exec(t.Context(), "digest"))
	assert.Equal(t, fmt.Sprintf("%016x\n", xxh3.HashString("[1 2 3]")), out.String())

	out.Reset()

	require.NoError(t, interp.Exec(t.Context(), "digest XXH64"))
	assert.Equal(t, fmt.Sprintf("%016x\n", xxhash.ChecksumString64("[1 2 3]")), out.String())

	require.ErrorIs(t, interp.Exec(t.Context(), "digest md5"), repl.ErrBadArgument)
	require.ErrorIs(t, interp.Exec(t.Context(), "digest xxh3 xxh64"), repl.ErrBadArgument)

	out.Reset()

	require.NoError(t, interp.Exec(t.Context(), "remove-at 2"))
	assert.Equal(t, "2\n", out.String())
}

func TestSpans(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	var out bytes.Buffer

	interp := newIntInterpreter(t, &out, repl.WithTracerProvider(provider))

	_ = interp.RunScript(t.Context(), strings.NewReader("# setup\nadd 1 2\nget 7\n\nsize\n"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)

	assert.Equal(t, "repl.add", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)

	assert.Equal(t, "repl.get", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.NotEmpty(t, spans[1].Events)

	assert.Equal(t, "repl.size", spans[2].Name)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ    repl.ElementType
		script string
		want   string
	}{
		{typ: repl.IntType, script: "add 10 9 -1\nlist\n", want: "ok\n[-1 9 10]\n"},
		{typ: repl.FloatType, script: "add 2.5 NaN -1\nlist\n", want: "ok\n[NaN -1 2.5]\n"},
		{typ: repl.StringType, script: "add b10 b9 a\nlist\n", want: "ok\n[a b10 b9]\n"},
		{typ: repl.NaturalType, script: "add b10 b9 a\nlist\n", want: "ok\n[a b9 b10]\n"},
		{typ: repl.CollatedType, script: "add é B b a\nlist\n", want: "ok\n[a b B é]\n"},
		{typ: repl.CollatedType, script: "add e\u0301\ncontains é\nlist\n", want: "ok\ntrue\n[é]\n"},
	}

	for _, tt := range tests {
		for _, kind := range tree.Kinds() {
			t.Run(string(tt.typ)+"/"+kind.String(), func(t *testing.T) {
				t.Parallel()

				var out bytes.Buffer

				runner, err := repl.Build(t.Context(), repl.Config{
					Name:   "build-" + string(tt.typ),
					Type:   tt.typ,
					Tree:   kind,
					Degree: 4,
				}, &out)
				require.NoError(t, err)

				require.NoError(t, runner.RunScript(t.Context(), strings.NewReader(tt.script)))
				assert.Equal(t, tt.want, out.String())
			})
		}
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	_, err := repl.Build(t.Context(), repl.Config{Type: "complex"}, &bytes.Buffer{})
	require.ErrorIs(t, err, repl.ErrUnknownType)

	_, err = repl.Build(t.Context(), repl.Config{Type: repl.IntType, Tree: "skiplist"}, &bytes.Buffer{})
	require.ErrorIs(t, err, tree.ErrUnknownKind)
}

func TestParseElementType(t *testing.T) {
	t.Parallel()

	typ, err := repl.ParseElementType(" Natural ")
	require.NoError(t, err)
	assert.Equal(t, repl.NaturalType, typ)

	typ, err = repl.ParseElementType("")
	require.NoError(t, err)
	assert.Equal(t, repl.IntType, typ)

	_, err = repl.ParseElementType("bytes")
	require.ErrorIs(t, err, repl.ErrUnknownType)
}
