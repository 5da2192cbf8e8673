package processor

import (
	"context"

	"referral-server/internal/cache"
	"referral-server/internal/store"

	"github.com/google/uuid"
)

// ReferralStore defines the database operations required by ReferralProcessor
type ReferralStore interface {
	CreateReferral(ctx context.Context, fields store.ReferralFields) (store.Referral, error)
	UpdateReferral(ctx context.Context, id uuid.UUID, fields store.ReferralFields) (store.Referral, error)
	GetReferralByID(ctx context.Context, id uuid.UUID) (store.Referral, error)
	ListReferrals(ctx context.Context, params store.ListReferralsParams) ([]store.Referral, error)
	CountReferrals(ctx context.Context, search string) (int, error)
	DeleteReferral(ctx context.Context, id uuid.UUID) error
}

// AvatarStorage defines the blob operations required by ReferralProcessor
type AvatarStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
	PathFromURL(publicURL string) (string, bool)
}

// ListingCache holds List and Count results between mutations
type ListingCache interface {
	Generation(ctx context.Context) (uint64, error)
	GetPage(ctx context.Context, generation uint64, key cache.PageKey) ([]store.Referral, bool, error)
	SetPage(ctx context.Context, generation uint64, key cache.PageKey, referrals []store.Referral) error
	GetCount(ctx context.Context, generation uint64, search string) (int, bool, error)
	SetCount(ctx context.Context, generation uint64, search string, count int) error
	Invalidate(ctx context.Context) error
}

// EventPublisher announces committed referral changes
type EventPublisher interface {
	PublishReferralCreated(ctx context.Context, referral store.Referral) error
	PublishReferralUpdated(ctx context.Context, referral store.Referral) error
	PublishReferralDeleted(ctx context.Context, referralID uuid.UUID) error
}
