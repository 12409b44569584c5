package user

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Record is the persistence shape of a user.
type Record struct {
	ID         string     `json:"id" db:"id"`
	FullName   string     `json:"full_name" db:"full_name"`
	Locale     string     `json:"locale" db:"locale"`
	Status     string     `json:"status" db:"status"`
	ExternalID *string    `json:"external_id" db:"external_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at" db:"deleted_at"`
}

func ToDomain(r Record) (*User, error) {
	id, err := NewID("id", r.ID)
	if err != nil {
		return nil, err
	}
	fullName, err := NewFullName(r.FullName)
	if err != nil {
		return nil, err
	}
	locale, err := NewLocale(r.Locale)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	var externalID *ExternalID
	if r.ExternalID != nil {
		e, err := NewExternalID(*r.ExternalID)
		if err != nil {
			return nil, err
		}
		externalID = &e
	}
	return Reconstitute(Props{
		ID:         id,
		FullName:   fullName,
		Locale:     locale,
		Status:     status,
		ExternalID: externalID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		DeletedAt:  shared.ClonePtr(r.DeletedAt),
	})
}

func ToPersistence(u *User) Record {
	p := u.props
	return Record{
		ID:         p.ID.Value(),
		FullName:   p.FullName.Value(),
		Locale:     p.Locale.Value(),
		Status:     string(p.Status),
		ExternalID: externalValue(p.ExternalID),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		DeletedAt:  shared.ClonePtr(p.DeletedAt),
	}
}
