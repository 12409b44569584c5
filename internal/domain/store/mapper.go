package store

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Record is the persistence shape of a store.
type Record struct {
	ID           string     `json:"id" db:"id"`
	OwnerID      string     `json:"owner_id" db:"owner_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description" db:"description"`
	DefaultStyle *string    `json:"default_style" db:"default_style"`
	LogoAssetID  *string    `json:"logo_asset_id" db:"logo_asset_id"`
	Status       string     `json:"status" db:"status"`
	Settings     Settings   `json:"settings" db:"settings"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" db:"deleted_at"`
}

func ToDomain(r Record) (*Store, error) {
	id, err := NewID("id", r.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := NewID("ownerId", r.OwnerID)
	if err != nil {
		return nil, err
	}
	name, err := NewName(r.Name)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	props := Props{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Status:    status,
		Settings:  r.Settings,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: shared.ClonePtr(r.DeletedAt),
	}
	if r.Description != nil {
		d, err := NewDescription(*r.Description)
		if err != nil {
			return nil, err
		}
		props.Description = &d
	}
	if r.DefaultStyle != nil {
		st, err := NewDefaultStyle(*r.DefaultStyle)
		if err != nil {
			return nil, err
		}
		props.DefaultStyle = &st
	}
	if r.LogoAssetID != nil {
		logo, err := NewID("logoAssetId", *r.LogoAssetID)
		if err != nil {
			return nil, err
		}
		props.LogoAssetID = &logo
	}
	return Reconstitute(props)
}

func ToPersistence(s *Store) Record {
	p := s.props
	return Record{
		ID:           p.ID.Value(),
		OwnerID:      p.OwnerID.Value(),
		Name:         p.Name.Value(),
		Description:  descriptionValue(p.Description),
		DefaultStyle: styleValue(p.DefaultStyle),
		LogoAssetID:  idValue(p.LogoAssetID),
		Status:       string(p.Status),
		Settings:     p.Settings,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DeletedAt:    shared.ClonePtr(p.DeletedAt),
	}
}
