package portals

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
)

var linkPattern = regexp.MustCompile(`^[a-z0-9]{12}$`)

func TestGenerateLinkShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		link, err := DefaultLinkGenerator()
		require.NoError(t, err)
		assert.Regexp(t, linkPattern, link)
	}
}

func TestGenerateLinkSkipsBiasedBytes(t *testing.T) {
	// 252 and above would favour the first characters of the alphabet.
	src := append(bytes.Repeat([]byte{255}, 12), bytes.Repeat([]byte{0, 35}, 6)...)
	link, err := GenerateLink(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "a9a9a9a9a9a9", link)
}

func TestGenerateLinkReaderFailure(t *testing.T) {
	_, err := GenerateLink(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func sequence(links ...string) LinkGenerator {
	i := 0
	return func() (string, error) {
		l := links[i%len(links)]
		i++
		return l, nil
	}
}

func TestNewUniqueLinkRetriesOnCollision(t *testing.T) {
	taken := map[string]bool{"aaaaaaaaaaaa": true}
	exists := func(_ context.Context, l string) (bool, error) { return taken[l], nil }

	link, err := NewUniqueLink(context.Background(), exists, sequence("aaaaaaaaaaaa", "bbbbbbbbbbbb"))
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbbbbbb", link)
}

func TestNewUniqueLinkGivesUpAfterFiveAttempts(t *testing.T) {
	calls := 0
	exists := func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := NewUniqueLink(context.Background(), exists, sequence("aaaaaaaaaaaa"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, maxLinkAttempts, calls)
}
