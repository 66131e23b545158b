package links

import (
	"context"

	"github.com/myth3x/mythex-snapshare/internal/models"
)

// Locator turns a storage key into a public URL. Implemented by the R2
// storage client; tests stub it.
type Locator interface {
	PublicURL(storageKey string) string
}

// Resolution is a successful resolve: where the bytes live, plus the
// record as of the view that was just counted.
type Resolution struct {
	Location string
	Record   *models.Screenshot
}

// Resolver translates a short code into an authorized location. It is
// stateless; any number of instances can resolve concurrently.
type Resolver struct {
	reg     *Registry
	locator Locator
}

func NewResolver(reg *Registry, locator Locator) *Resolver {
	return &Resolver{reg: reg, locator: locator}
}

// Resolve looks up the code, applies the visibility policy and counts
// the view. ErrForbidden and ErrNotFound are distinct here for logging
// and tests; callers rendering HTTP must present them identically.
func (r *Resolver) Resolve(ctx context.Context, code string, req Requester) (*Resolution, error) {
	rec, err := r.reg.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if !Permits(rec, req) {
		return nil, ErrForbidden
	}

	count, err := r.reg.countView(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.ViewCount = count

	return &Resolution{
		Location: r.locator.PublicURL(rec.StorageKey),
		Record:   rec,
	}, nil
}
