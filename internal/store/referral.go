package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const referralColumns = `id, seq, created_at, given_name, surname, email, phone, home_no, street, suburb, state, postcode, country, avatar_url`

const sqlCreateReferral = `
INSERT INTO referrals (given_name, surname, email, phone, home_no, street, suburb, state, postcode, country, avatar_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + referralColumns

// CreateReferral inserts a referral and returns the stored row
func (s *Store) CreateReferral(ctx context.Context, fields ReferralFields) (Referral, error) {
	var referral Referral
	err := s.db.GetContext(ctx, &referral, sqlCreateReferral, fieldArgs(fields)...)
	if err != nil {
		if constraintErr, ok := asConstraintError(err); ok {
			s.logger.WarnWithError(ctx, "referral rejected by database constraint", err)
			return Referral{}, fmt.Errorf("failed to create referral: %w", constraintErr)
		}
		s.logger.Error(ctx, "failed to create referral", err)
		return Referral{}, fmt.Errorf("failed to create referral: %w", err)
	}
	return referral, nil
}

const sqlUpdateReferral = `
UPDATE referrals
SET given_name = $1, surname = $2, email = $3, phone = $4, home_no = $5, street = $6,
    suburb = $7, state = $8, postcode = $9, country = $10, avatar_url = $11
WHERE id = $12
RETURNING ` + referralColumns

// UpdateReferral overwrites every mutable column of an existing referral.
// Returns ErrNotFound when no row has the given id.
func (s *Store) UpdateReferral(ctx context.Context, id uuid.UUID, fields ReferralFields) (Referral, error) {
	var referral Referral
	args := append(fieldArgs(fields), id)
	err := s.db.GetContext(ctx, &referral, sqlUpdateReferral, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Referral{}, ErrNotFound
		}
		if constraintErr, ok := asConstraintError(err); ok {
			s.logger.WarnWithError(ctx, "referral rejected by database constraint", err)
			return Referral{}, fmt.Errorf("failed to update referral: %w", constraintErr)
		}
		s.logger.Error(ctx, "failed to update referral", err)
		return Referral{}, fmt.Errorf("failed to update referral: %w", err)
	}
	return referral, nil
}

const sqlGetReferralByID = `
SELECT ` + referralColumns + `
FROM referrals
WHERE id = $1
`

// GetReferralByID retrieves a referral by ID
func (s *Store) GetReferralByID(ctx context.Context, id uuid.UUID) (Referral, error) {
	var referral Referral
	err := s.db.GetContext(ctx, &referral, sqlGetReferralByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Referral{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral by id", err)
		return Referral{}, fmt.Errorf("failed to get referral by id: %w", err)
	}
	return referral, nil
}

// An empty pattern matches every row.
const sqlSearchPredicate = `($1::text = '' OR given_name ILIKE '%' || $1::text || '%' ESCAPE '\')`

const sqlListReferrals = `
SELECT ` + referralColumns + `
FROM referrals
WHERE ` + sqlSearchPredicate + `
ORDER BY created_at DESC, seq DESC
LIMIT $2 OFFSET $3
`

// ListReferrals returns one page of referrals, newest first, whose given name
// contains params.Search case-insensitively.
func (s *Store) ListReferrals(ctx context.Context, params ListReferralsParams) ([]Referral, error) {
	referrals := []Referral{}
	err := s.db.SelectContext(ctx, &referrals, sqlListReferrals,
		escapeLike(params.Search),
		params.Limit,
		params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list referrals", err)
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	return referrals, nil
}

const sqlCountReferrals = `
SELECT COUNT(*)
FROM referrals
WHERE ` + sqlSearchPredicate

// CountReferrals returns the number of referrals matching search
func (s *Store) CountReferrals(ctx context.Context, search string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountReferrals, escapeLike(search))
	if err != nil {
		s.logger.Error(ctx, "failed to count referrals", err)
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}
	return count, nil
}

const sqlDeleteReferral = `
DELETE FROM referrals
WHERE id = $1
`

// DeleteReferral removes a referral. Returns ErrNotFound when no row was deleted.
func (s *Store) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, sqlDeleteReferral, id)
	if err != nil {
		s.logger.Error(ctx, "failed to delete referral", err)
		return fmt.Errorf("failed to delete referral: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func fieldArgs(f ReferralFields) []interface{} {
	return []interface{}{
		f.GivenName,
		f.Surname,
		f.Email,
		f.Phone,
		f.HomeNo,
		f.Street,
		f.Suburb,
		f.State,
		f.Postcode,
		f.Country,
		f.AvatarURL,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in a user supplied term match literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
