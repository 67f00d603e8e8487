package portals

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
)

const (
	LinkLength      = 12
	linkAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxLinkAttempts = 5
)

// LinkGenerator produces one candidate portal link.
type LinkGenerator func() (string, error)

// DefaultLinkGenerator draws from crypto/rand.
func DefaultLinkGenerator() (string, error) {
	return GenerateLink(rand.Reader)
}

// GenerateLink returns LinkLength characters drawn uniformly from [a-z0-9].
func GenerateLink(r io.Reader) (string, error) {
	return randomString(r, LinkLength)
}

// randomString rejects bytes above the largest multiple of the alphabet size
// so every character is equally likely.
func randomString(r io.Reader, n int) (string, error) {
	const limit = 256 - 256%len(linkAlphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, linkAlphabet[int(b)%len(linkAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// NewUniqueLink generates candidates until exists reports one unused. After
// maxLinkAttempts collisions it gives up with a CONFLICT error.
func NewUniqueLink(ctx context.Context, exists func(ctx context.Context, link string) (bool, error), gen LinkGenerator) (string, error) {
	if gen == nil {
		gen = DefaultLinkGenerator
	}
	for attempt := 0; attempt < maxLinkAttempts; attempt++ {
		link, err := gen()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate portal link")
		}
		taken, err := exists(ctx, link)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check portal link")
		}
		if !taken {
			return link, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique portal link").
		WithDetails(map[string]any{"attempts": maxLinkAttempts})
}
