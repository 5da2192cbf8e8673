package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"

	"referral-server/internal/observability"
	"referral-server/internal/store"
)

var (
	ErrReferralNotFound    = errors.New("referral not found")
	ErrPersistenceFailed   = errors.New("persistence failed")
	ErrReferralRejected    = errors.New("referral rejected")
	ErrStorageUploadFailed = errors.New("storage upload failed")
	ErrInvalidAvatar       = errors.New("invalid avatar")
)

type ReferralProcessor struct {
	store   ReferralStore
	storage AvatarStorage
	cache   ListingCache
	events  EventPublisher
	logger  *observability.Logger
}

func New(store ReferralStore, storage AvatarStorage, cache ListingCache, events EventPublisher, logger *observability.Logger) ReferralProcessor {
	return ReferralProcessor{
		store:   store,
		storage: storage,
		cache:   cache,
		events:  events,
		logger:  logger,
	}
}

// persistenceError classifies a failed store write.
func persistenceError(err error) error {
	if errors.Is(err, store.ErrConstraintViolation) {
		return fmt.Errorf("%w: %w", ErrReferralRejected, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
}

// invalidate drops every cached page and count. A failure is logged only; the
// committed change stands either way.
func (p *ReferralProcessor) invalidate(ctx context.Context) {
	if err := p.cache.Invalidate(ctx); err != nil {
		p.logger.Error(ctx, "failed to invalidate listing cache", err)
	}
}

// removeBlob deletes the blob behind publicURL if it is one of ours.
func (p *ReferralProcessor) removeBlob(ctx context.Context, publicURL string) {
	path, ok := p.storage.PathFromURL(publicURL)
	if !ok {
		p.logger.Warn(ctx, "avatar url does not point into the avatar bucket, skipping removal")
		return
	}
	if err := p.storage.Remove(ctx, []string{path}); err != nil {
		p.logger.WarnWithError(ctx, "failed to remove avatar blob", err)
	}
}
