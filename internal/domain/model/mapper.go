package model

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type LightingRecord struct {
	Preset         string          `json:"preset"`
	CustomSettings *CustomLighting `json:"customSettings,omitempty"`
}

type CameraRecord struct {
	Preset         string        `json:"preset"`
	CustomSettings *CustomCamera `json:"customSettings,omitempty"`
}

// Record is the persistence shape of a model. List columns are NOT NULL, so
// a nil list reads as empty and is written back as an empty slice.
type Record struct {
	ID                    string         `json:"id" db:"id"`
	StoreID               string         `json:"store_id" db:"store_id"`
	Name                  string         `json:"name" db:"name"`
	Description           *string        `json:"description" db:"description"`
	Status                string         `json:"status" db:"status"`
	Gender                string         `json:"gender" db:"gender"`
	AgeRange              string         `json:"age_range" db:"age_range"`
	Ethnicity             string         `json:"ethnicity" db:"ethnicity"`
	BodyType              string         `json:"body_type" db:"body_type"`
	Prompt                *string        `json:"prompt" db:"prompt"`
	ReferenceImageIDs     []string       `json:"reference_image_ids" db:"reference_image_ids"`
	CalibrationImageIDs   []string       `json:"calibration_image_ids" db:"calibration_image_ids"`
	LockedIdentityURL     *string        `json:"locked_identity_url" db:"locked_identity_url"`
	FailureReason         *string        `json:"failure_reason" db:"failure_reason"`
	LightingConfig        LightingRecord `json:"lighting_config" db:"lighting_config"`
	CameraConfig          CameraRecord   `json:"camera_config" db:"camera_config"`
	TexturePreferences    []string       `json:"texture_preferences" db:"texture_preferences"`
	ProductCategories     []string       `json:"product_categories" db:"product_categories"`
	SupportOutfitSwapping bool           `json:"support_outfit_swapping" db:"support_outfit_swapping"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt             *time.Time     `json:"deleted_at" db:"deleted_at"`
}

// ToDomain rebuilds a model from r. Unlike New it does not enforce the
// prompt/reference requirement, so legacy rows still load.
func ToDomain(r Record) (*Model, error) {
	id, err := NewID("id", r.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := NewID("storeId", r.StoreID)
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
	gender, err := ParseGender(r.Gender)
	if err != nil {
		return nil, err
	}
	ageRange, err := ParseAgeRange(r.AgeRange)
	if err != nil {
		return nil, err
	}
	ethnicity, err := ParseEthnicity(r.Ethnicity)
	if err != nil {
		return nil, err
	}
	bodyType, err := ParseBodyType(r.BodyType)
	if err != nil {
		return nil, err
	}
	refs, err := newIDList("referenceImageIds", r.ReferenceImageIDs)
	if err != nil {
		return nil, err
	}
	calibration, err := newIDList("calibrationImageIds", r.CalibrationImageIDs)
	if err != nil {
		return nil, err
	}
	lighting, err := NewLightingConfig(r.LightingConfig.Preset, r.LightingConfig.CustomSettings)
	if err != nil {
		return nil, err
	}
	camera, err := NewCameraConfig(r.CameraConfig.Preset, r.CameraConfig.CustomSettings)
	if err != nil {
		return nil, err
	}
	textures, err := ParseTextures(r.TexturePreferences)
	if err != nil {
		return nil, err
	}
	categories, err := ParseProductCategories(r.ProductCategories)
	if err != nil {
		return nil, err
	}
	props := Props{
		ID:                    id,
		StoreID:               storeID,
		Name:                  name,
		Status:                status,
		Gender:                gender,
		AgeRange:              ageRange,
		Ethnicity:             ethnicity,
		BodyType:              bodyType,
		ReferenceImageIDs:     refs,
		CalibrationImageIDs:   calibration,
		LockedIdentityURL:     shared.ClonePtr(r.LockedIdentityURL),
		FailureReason:         shared.ClonePtr(r.FailureReason),
		Lighting:              lighting,
		Camera:                camera,
		TexturePreferences:    textures,
		ProductCategories:     categories,
		SupportOutfitSwapping: r.SupportOutfitSwapping,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		DeletedAt:             shared.ClonePtr(r.DeletedAt),
	}
	if r.Description != nil {
		d, err := NewDescription(*r.Description)
		if err != nil {
			return nil, err
		}
		props.Description = &d
	}
	if r.Prompt != nil {
		p, err := NewPrompt(*r.Prompt)
		if err != nil {
			return nil, err
		}
		props.Prompt = &p
	}
	return Reconstitute(props)
}

// ToPersistence flattens m. List fields are never nil.
func ToPersistence(m *Model) Record {
	p := m.props
	return Record{
		ID:                    p.ID.Value(),
		StoreID:               p.StoreID.Value(),
		Name:                  p.Name.Value(),
		Description:           descriptionValue(p.Description),
		Status:                string(p.Status),
		Gender:                string(p.Gender),
		AgeRange:              string(p.AgeRange),
		Ethnicity:             string(p.Ethnicity),
		BodyType:              string(p.BodyType),
		Prompt:                promptValue(p.Prompt),
		ReferenceImageIDs:     idStrings(p.ReferenceImageIDs),
		CalibrationImageIDs:   idStrings(p.CalibrationImageIDs),
		LockedIdentityURL:     shared.ClonePtr(p.LockedIdentityURL),
		FailureReason:         shared.ClonePtr(p.FailureReason),
		LightingConfig:        lightingRecord(p.Lighting),
		CameraConfig:          cameraRecord(p.Camera),
		TexturePreferences:    enumStrings(p.TexturePreferences),
		ProductCategories:     enumStrings(p.ProductCategories),
		SupportOutfitSwapping: p.SupportOutfitSwapping,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
		DeletedAt:             shared.ClonePtr(p.DeletedAt),
	}
}

func lightingRecord(l LightingConfig) LightingRecord {
	return LightingRecord{Preset: string(l.preset), CustomSettings: l.Custom()}
}

func cameraRecord(c CameraConfig) CameraRecord {
	return CameraRecord{Preset: string(c.preset), CustomSettings: c.Custom()}
}
