package digest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/digest"
	"go.trai.ch/plate/internal/core/domain"
)

type keyInput struct {
	source       []byte
	options      []string
	rendererPath string
	rendererArgs []string
}

func (in keyInput) key(b *digest.Builder) domain.CacheKey {
	return b.ComputeKey(in.source, in.options, in.rendererPath, in.rendererArgs)
}

func baseInput() keyInput {
	return keyInput{
		source:       []byte("+--+\n|a |\n+--+"),
		options:      nil,
		rendererPath: "ditaa",
		rendererArgs: nil,
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	b := digest.NewBuilder()

	first := baseInput().key(b)
	second := baseInput().key(b)

	assert.Equal(t, first, second)
	assert.False(t, first.IsZero())
}

func TestBuilder_HexForm(t *testing.T) {
	key := baseInput().key(digest.NewBuilder())

	s := key.String()
	require.Len(t, s, 2*domain.KeySize)
	assert.Regexp(t, "^[0-9a-f]+$", s)
}

func TestBuilder_SensitiveToEveryField(t *testing.T) {
	b := digest.NewBuilder()
	base := baseInput().key(b)

	tests := []struct {
		name   string
		mutate func(*keyInput)
	}{
		{"source byte", func(in *keyInput) { in.source = []byte("+--+\n|b |\n+--+") }},
		{"source trailing newline", func(in *keyInput) { in.source = append(in.source, '\n') }},
		{"option added", func(in *keyInput) { in.options = []string{"--transparent"} }},
		{"renderer path", func(in *keyInput) { in.rendererPath = "/usr/bin/ditaa" }},
		{"renderer arg added", func(in *keyInput) { in.rendererArgs = []string{"-S"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			assert.NotEqual(t, base, in.key(b))
		})
	}
}

func TestBuilder_FieldBoundariesAreUnambiguous(t *testing.T) {
	b := digest.NewBuilder()

	tests := []struct {
		name string
		a, z keyInput
	}{
		{
			name: "source suffix moved into renderer path",
			a:    keyInput{source: []byte("ab"), rendererPath: "c"},
			z:    keyInput{source: []byte("a"), rendererPath: "bc"},
		},
		{
			name: "option moved into renderer args",
			a:    keyInput{source: []byte("x"), options: []string{"-S"}, rendererPath: "ditaa"},
			z:    keyInput{source: []byte("x"), rendererPath: "ditaa", rendererArgs: []string{"-S"}},
		},
		{
			name: "two args joined into one",
			a:    keyInput{source: []byte("x"), rendererPath: "ditaa", rendererArgs: []string{"-S", "-E"}},
			z:    keyInput{source: []byte("x"), rendererPath: "ditaa", rendererArgs: []string{"-S-E"}},
		},
		{
			name: "option order",
			a:    keyInput{source: []byte("x"), options: []string{"-S", "-E"}, rendererPath: "ditaa"},
			z:    keyInput{source: []byte("x"), options: []string{"-E", "-S"}, rendererPath: "ditaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a.key(b), tt.z.key(b))
		})
	}
}

func TestBuilder_NoCollisionsAcrossCorpus(t *testing.T) {
	b := digest.NewBuilder()
	seen := make(map[domain.CacheKey]string)

	sources := []string{"", " ", "+-+", "+--+\n|a |\n+--+", "+--+\n|a |\n+--+\n", "日本"}
	optionSets := [][]string{nil, {"--transparent"}, {"-S"}, {"-S", "--transparent"}}
	renderers := []string{"ditaa", "/opt/ditaa/bin/ditaa"}
	argSets := [][]string{nil, {"-E"}, {"--scale", "2"}}

	for _, src := range sources {
		for _, opts := range optionSets {
			for _, r := range renderers {
				for _, args := range argSets {
					key := b.ComputeKey([]byte(src), opts, r, args)
					label := src + "|" + r
					if prev, ok := seen[key]; ok {
						t.Fatalf("collision between %q and %q", prev, label)
					}
					seen[key] = label
				}
			}
		}
	}
}

func TestBuilder_NilAndEmptyListsAgree(t *testing.T) {
	b := digest.NewBuilder()

	nilKey := b.ComputeKey([]byte("x"), nil, "ditaa", nil)
	emptyKey := b.ComputeKey([]byte("x"), []string{}, "ditaa", []string{})

	assert.Equal(t, nilKey, emptyKey)
}
