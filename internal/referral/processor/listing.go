package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referral-server/internal/cache"
	"referral-server/internal/observability"
	"referral-server/internal/store"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects one page of referrals whose given name contains Search.
type PageRequest struct {
	Search   string
	Page     int
	PageSize int
}

// PageResponse is one page of referrals plus pagination metadata.
type PageResponse struct {
	Referrals  []store.Referral `json:"referrals"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	HasMore    bool             `json:"has_more"`
}

// normalizePage clamps page to at least 1 and pageSize to [1, MaxPageSize],
// substituting DefaultPageSize when it is unset.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// TotalPages returns the number of pages needed for count rows, never less than one.
func TotalPages(count, pageSize int) int {
	_, pageSize = normalizePage(1, pageSize)
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// List returns rows [(page-1)*pageSize, page*pageSize) of the referrals whose
// given name contains search, newest first.
func (p *ReferralProcessor) List(ctx context.Context, search string, page, pageSize int) ([]store.Referral, error) {
	search = strings.TrimSpace(search)
	page, pageSize = normalizePage(page, pageSize)
	key := cache.PageKey{Search: search, Page: page, PageSize: pageSize}

	generation, cacheOK := p.generation(ctx)
	if cacheOK {
		referrals, hit, err := p.cache.GetPage(ctx, generation, key)
		if err != nil {
			p.logger.WarnWithError(ctx, "failed to read listing cache", err)
		} else if hit {
			return referrals, nil
		}
	}

	referrals, err := p.store.ListReferrals(ctx, store.ListReferralsParams{
		Search: search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	if referrals == nil {
		referrals = []store.Referral{}
	}

	if cacheOK {
		if err := p.cache.SetPage(ctx, generation, key, referrals); err != nil {
			p.logger.WarnWithError(ctx, "failed to write listing cache", err)
		}
	}
	return referrals, nil
}

// Count returns how many referrals match search using the same predicate as List.
func (p *ReferralProcessor) Count(ctx context.Context, search string) (int, error) {
	search = strings.TrimSpace(search)

	generation, cacheOK := p.generation(ctx)
	if cacheOK {
		count, hit, err := p.cache.GetCount(ctx, generation, search)
		if err != nil {
			p.logger.WarnWithError(ctx, "failed to read listing cache", err)
		} else if hit {
			return count, nil
		}
	}

	count, err := p.store.CountReferrals(ctx, search)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	if cacheOK {
		if err := p.cache.SetCount(ctx, generation, search, count); err != nil {
			p.logger.WarnWithError(ctx, "failed to write listing cache", err)
		}
	}
	return count, nil
}

// Page combines List and Count into a single paginated response.
func (p *ReferralProcessor) Page(ctx context.Context, req PageRequest) (PageResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	referrals, err := p.List(ctx, req.Search, page, pageSize)
	if err != nil {
		return PageResponse{}, err
	}

	count, err := p.Count(ctx, req.Search)
	if err != nil {
		return PageResponse{}, err
	}

	totalPages := TotalPages(count, pageSize)
	return PageResponse{
		Referrals:  referrals,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: count,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}, nil
}

// Get returns a single referral.
func (p *ReferralProcessor) Get(ctx context.Context, id uuid.UUID) (store.Referral, error) {
	referral, err := p.store.GetReferralByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Referral{}, ErrReferralNotFound
		}
		return store.Referral{}, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return referral, nil
}

// Delete removes a referral and, on a best effort basis, its avatar blob.
func (p *ReferralProcessor) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: id.String()})

	referral, err := p.store.GetReferralByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrReferralNotFound
	case err != nil:
		p.logger.WarnWithError(ctx, "failed to read avatar reference, deleting row anyway", err)
	case referral.AvatarURL != nil && *referral.AvatarURL != "":
		p.removeBlob(ctx, *referral.AvatarURL)
	}

	if err := p.store.DeleteReferral(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReferralNotFound
		}
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	p.invalidate(ctx)
	if err := p.events.PublishReferralDeleted(ctx, id); err != nil {
		p.logger.WarnWithError(ctx, "failed to publish referral deleted event", err)
	}
	p.logger.Info(ctx, "referral deleted")
	return nil
}

// generation reads the current cache generation. ok is false when the cache
// is unavailable and the caller should bypass it.
func (p *ReferralProcessor) generation(ctx context.Context) (uint64, bool) {
	generation, err := p.cache.Generation(ctx)
	if err != nil {
		p.logger.WarnWithError(ctx, "listing cache unavailable, reading through", err)
		return 0, false
	}
	return generation, true
}
