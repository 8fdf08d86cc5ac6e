package services

import (
	"context"
	"log"
	"time"

	"tienda/internal/storage"
)

// CommitOutcome says what happened to one staged image during a product
// save.
type CommitOutcome int

const (
	// Migrated means the object now lives under the product folder.
	Migrated CommitOutcome = iota
	// KeptTemporary means a storage step failed and the temporary URL
	// was kept so the product save could proceed.
	KeptTemporary
	// PassedThrough means the ref was already final.
	PassedThrough
)

type CommitResult struct {
	URL     string
	Outcome CommitOutcome
	Reason  error // set when KeptTemporary
}

// ImageService relocates staged objects into permanent per-product
// folders and sweeps abandoned staging folders.
type ImageService struct {
	Store storage.Store
}

// Commit resolves every ref to its final URL. Temporary refs are copied
// to {productID}/{assetID}.{ext} and the staged object is removed. A
// failed download or upload keeps the temporary URL instead of failing
// the save; the product must not be blocked by a storage hiccup.
func (s *ImageService) Commit(ctx context.Context, productID string, refs []storage.ImageRef) []CommitResult {
	out := make([]CommitResult, 0, len(refs))
	for _, ref := range refs {
		if !ref.Temporary() {
			out = append(out, CommitResult{URL: ref.URL, Outcome: PassedThrough})
			continue
		}
		out = append(out, s.migrate(ctx, productID, ref))
	}
	return out
}

func (s *ImageService) migrate(ctx context.Context, productID string, ref storage.ImageRef) CommitResult {
	tempKey := ref.Key()

	obj, err := s.Store.Get(ctx, tempKey)
	if err != nil {
		return CommitResult{URL: ref.URL, Outcome: KeptTemporary, Reason: err}
	}
	defer obj.Close()

	// The asset id minted at staging time is reused in the final key.
	finalKey := storage.ObjectKey(productID, ref.AssetID, ref.Ext)
	if err := s.Store.Put(ctx, finalKey, obj, -1, ""); err != nil {
		return CommitResult{URL: ref.URL, Outcome: KeptTemporary, Reason: err}
	}
	if err := s.Store.Remove(ctx, tempKey); err != nil {
		// The copy succeeded; the leftover staged object is sweeper food.
		log.Printf("[images] remove temp %s: %v", tempKey, err)
	}
	return CommitResult{URL: s.Store.URL(finalKey), Outcome: Migrated}
}

// DeleteProductObjects best-effort removes everything under a product's
// folder after the product row is gone.
func (s *ImageService) DeleteProductObjects(ctx context.Context, productID string) {
	objs, err := s.Store.List(ctx, productID+"/")
	if err != nil {
		log.Printf("[images] list %s: %v", productID, err)
		return
	}
	for _, o := range objs {
		if err := s.Store.Remove(ctx, o.Key); err != nil {
			log.Printf("[images] remove %s: %v", o.Key, err)
		}
	}
}

// SweepTemp deletes staged objects older than maxAge. Uploads abandoned
// before a form submit are the only thing that lives under temp-.
func (s *ImageService) SweepTemp(ctx context.Context, maxAge time.Duration) (int, error) {
	objs, err := s.Store.List(ctx, "temp-")
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, o := range objs {
		if o.LastModified.After(cutoff) {
			continue
		}
		if err := s.Store.Remove(ctx, o.Key); err != nil {
			log.Printf("[sweep] remove %s: %v", o.Key, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// RunSweeper ticks until ctx is canceled. interval <= 0 disables it.
func (s *ImageService) RunSweeper(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, err := s.SweepTemp(ctx, maxAge); err != nil {
				log.Printf("[sweep] %v", err)
			} else if n > 0 {
				log.Printf("[sweep] removed %d staged objects", n)
			}
		}
	}
}
