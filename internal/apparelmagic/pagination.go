package apparelmagic

import (
	"context"
	"encoding/json"
	"fmt"
)

// PageOptions bounds a cursor walk. MaxPages is a hard ceiling; hitting it is
// logged so truncated collections are visible.
type PageOptions struct {
	PageSize int
	MaxPages int
	Filters  map[string]string
}

// Pager is the page source FetchAll walks. *Client satisfies it.
type Pager interface {
	ListPage(ctx context.Context, resource string, req PageRequest) (*Page, error)
}

// FetchRaw follows the last_id cursor until the API stops returning one, a
// page comes back empty, or MaxPages pages have been read. Records are left
// undecoded so one malformed record can be rejected on its own.
func FetchRaw(ctx context.Context, p Pager, resource string, opts PageOptions) ([]json.RawMessage, error) {
	var (
		all    []json.RawMessage
		lastID string
	)
	for page := 0; opts.MaxPages <= 0 || page < opts.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := p.ListPage(ctx, resource, PageRequest{PageSize: opts.PageSize, LastID: lastID, Filters: opts.Filters})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Records...)
		if len(res.Records) == 0 || res.LastID == "" {
			return all, nil
		}
		lastID = res.LastID
	}

	if c, ok := p.(*Client); ok && c.logg != nil {
		ctx = c.logg.WithFields(ctx, map[string]any{"resource": resource, "max_pages": opts.MaxPages, "records": len(all)})
		c.logg.Warn(ctx, "apparelmagic page ceiling reached; collection truncated")
	}
	return all, nil
}

// FetchAll is FetchRaw with every record decoded into T. Any record that does
// not decode fails the whole call.
func FetchAll[T any](ctx context.Context, p Pager, resource string, opts PageOptions) ([]T, error) {
	raws, err := FetchRaw(ctx, p, resource, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding %s record %d: %w", resource, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
