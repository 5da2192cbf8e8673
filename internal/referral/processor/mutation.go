package processor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"referral-server/internal/observability"
	"referral-server/internal/referral/validation"
	"referral-server/internal/store"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const avatarPathPrefix = "avatars/"

// Submit validates candidate and creates a referral, or overwrites every
// mutable field of existingID when it is set. Validation failures return a
// *validation.ValidationError before any I/O.
func (p *ReferralProcessor) Submit(ctx context.Context, candidate validation.Candidate, existingID *uuid.UUID) (store.Referral, error) {
	fields, err := validation.Validate(candidate)
	if err != nil {
		return store.Referral{}, err
	}

	if existingID == nil {
		referral, err := p.store.CreateReferral(ctx, toReferralFields(fields))
		if err != nil {
			return store.Referral{}, persistenceError(err)
		}

		ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: referral.ID.String()})
		p.invalidate(ctx)
		if err := p.events.PublishReferralCreated(ctx, referral); err != nil {
			p.logger.WarnWithError(ctx, "failed to publish referral created event", err)
		}
		p.logger.Info(ctx, "referral created")
		return referral, nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: existingID.String()})

	referral, err := p.store.UpdateReferral(ctx, *existingID, toReferralFields(fields))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Referral{}, ErrReferralNotFound
		}
		return store.Referral{}, persistenceError(err)
	}

	p.invalidate(ctx)
	if err := p.events.PublishReferralUpdated(ctx, referral); err != nil {
		p.logger.WarnWithError(ctx, "failed to publish referral updated event", err)
	}
	p.logger.Info(ctx, "referral updated")
	return referral, nil
}

// UploadAvatarRequest carries an avatar image and the URL it replaces, if any.
type UploadAvatarRequest struct {
	ExistingAvatarURL string
	Data              []byte
	Extension         string
}

// UploadAvatar stores a new avatar blob under a random name and returns its
// public URL. No referral row is touched: the caller writes the URL into
// avatar_url with its next Submit. The replaced blob is removed on a best
// effort basis once the new one is stored; a failed upload leaves it in place,
// so the record's current avatar_url keeps resolving.
func (p *ReferralProcessor) UploadAvatar(ctx context.Context, req UploadAvatarRequest) (string, error) {
	if len(req.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidAvatar)
	}

	mtype := mimetype.Detect(req.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidAvatar, mtype.String())
	}

	ext := sanitizeExtension(req.Extension)
	if ext == "" {
		ext = sanitizeExtension(mtype.Extension())
	}
	if ext == "" {
		ext = "img"
	}

	path := fmt.Sprintf("%s%s.%s", avatarPathPrefix, uuid.New().String(), ext)
	ctx = observability.WithFields(ctx, observability.Field{Key: "blob_path", Value: path})

	if err := p.storage.Upload(ctx, path, req.Data, mtype.String()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageUploadFailed, err)
	}

	if req.ExistingAvatarURL != "" {
		p.removeBlob(ctx, req.ExistingAvatarURL)
	}

	p.logger.Info(ctx, "avatar uploaded")
	return p.storage.PublicURL(path), nil
}

var extensionChars = regexp.MustCompile(`[^a-z0-9]`)

// sanitizeExtension keeps lower-case alphanumerics and caps the length at 10.
func sanitizeExtension(ext string) string {
	ext = extensionChars.ReplaceAllString(strings.ToLower(strings.TrimPrefix(ext, ".")), "")
	if len(ext) > 10 {
		ext = ext[:10]
	}
	return ext
}

func toReferralFields(f validation.Fields) store.ReferralFields {
	return store.ReferralFields{
		GivenName: f.GivenName,
		Surname:   f.Surname,
		Email:     f.Email,
		Phone:     f.Phone,
		HomeNo:    f.HomeNo,
		Street:    f.Street,
		Suburb:    f.Suburb,
		State:     f.State,
		Postcode:  f.Postcode,
		Country:   f.Country,
		AvatarURL: f.AvatarURL,
	}
}
