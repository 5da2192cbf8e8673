package store

import (
	"time"

	"github.com/google/uuid"
)

// Referral is one referral contact record. ID, CreatedAt and Seq are assigned by
// the database; Seq only breaks created_at ties for newest-first ordering.
type Referral struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Seq       int64     `db:"seq" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	GivenName string    `db:"given_name" json:"given_name"`
	Surname   string    `db:"surname" json:"surname"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	HomeNo    *string   `db:"home_no" json:"home_no"`
	Street    *string   `db:"street" json:"street"`
	Suburb    *string   `db:"suburb" json:"suburb"`
	State     *string   `db:"state" json:"state"`
	Postcode  *string   `db:"postcode" json:"postcode"`
	Country   string    `db:"country" json:"country"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
}

// ReferralFields holds the mutable columns written by create and update.
type ReferralFields struct {
	GivenName string
	Surname   string
	Email     string
	Phone     string
	HomeNo    *string
	Street    *string
	Suburb    *string
	State     *string
	Postcode  *string
	Country   string
	AvatarURL *string
}

// ListReferralsParams filters and pages ListReferrals.
type ListReferralsParams struct {
	Search string
	Limit  int
	Offset int
}
