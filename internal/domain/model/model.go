// Package model models AI influencers: synthetic fashion models a store
// defines from a prompt or reference images, calibrates, then uses for
// generations.
package model

import (
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type Props struct {
	ID                    shared.ID
	StoreID               shared.ID
	Name                  Name
	Description           *Description
	Status                Status
	Gender                Gender
	AgeRange              AgeRange
	Ethnicity             Ethnicity
	BodyType              BodyType
	Prompt                *Prompt
	ReferenceImageIDs     []shared.ID
	CalibrationImageIDs   []shared.ID
	LockedIdentityURL     *string
	FailureReason         *string
	Lighting              LightingConfig
	Camera                CameraConfig
	TexturePreferences    []Texture
	ProductCategories     []ProductCategory
	SupportOutfitSwapping bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

type Model struct {
	props  Props
	events shared.EventRecorder
}

func Reconstitute(props Props) (*Model, error) {
	if props.ID.IsZero() {
		return nil, NewValidationError("id", "", []string{"is required"})
	}
	if !IsValidStatus(string(props.Status)) {
		return nil, NewValidationError("status", string(props.Status), []string{"is not a known status"})
	}
	if props.Lighting.preset == "" {
		props.Lighting = DefaultLightingConfig()
	}
	if props.Camera.preset == "" {
		props.Camera = DefaultCameraConfig()
	}
	m := &Model{props: props}
	return m.copy(), nil
}

// NewInput is the creation payload. At least one of Prompt or
// ReferenceImageIDs must be present. Empty presets fall back to the defaults,
// as does CUSTOM without settings. SupportOutfitSwapping defaults to true.
type NewInput struct {
	StoreID               string
	Name                  string
	Description           string
	Gender                string
	AgeRange              string
	Ethnicity             string
	BodyType              string
	Prompt                string
	ReferenceImageIDs     []string
	LightingPreset        string
	CustomLighting        *CustomLighting
	CameraPreset          string
	CustomCamera          *CustomCamera
	TexturePreferences    []string
	ProductCategories     []string
	SupportOutfitSwapping *bool
}

// New creates a DRAFT model and records ModelCreated. The prompt/reference
// requirement is checked before any other field.
func New(in NewInput) (*Model, error) {
	if strings.TrimSpace(in.Prompt) == "" && len(in.ReferenceImageIDs) == 0 {
		return nil, NewRequiresInputError()
	}

	storeID, err := NewID("storeId", in.StoreID)
	if err != nil {
		return nil, err
	}
	name, err := NewName(in.Name)
	if err != nil {
		return nil, err
	}
	description, err := optionalDescription(in.Description)
	if err != nil {
		return nil, err
	}
	gender, err := ParseGender(in.Gender)
	if err != nil {
		return nil, err
	}
	ageRange, err := ParseAgeRange(in.AgeRange)
	if err != nil {
		return nil, err
	}
	ethnicity, err := ParseEthnicity(in.Ethnicity)
	if err != nil {
		return nil, err
	}
	bodyType, err := ParseBodyType(in.BodyType)
	if err != nil {
		return nil, err
	}
	prompt, err := optionalPrompt(in.Prompt)
	if err != nil {
		return nil, err
	}
	refs, err := newIDList("referenceImageIds", in.ReferenceImageIDs)
	if err != nil {
		return nil, err
	}
	lighting, err := resolveLighting(in.LightingPreset, in.CustomLighting)
	if err != nil {
		return nil, err
	}
	camera, err := resolveCamera(in.CameraPreset, in.CustomCamera)
	if err != nil {
		return nil, err
	}
	textures, err := ParseTextures(in.TexturePreferences)
	if err != nil {
		return nil, err
	}
	categories, err := ParseProductCategories(in.ProductCategories)
	if err != nil {
		return nil, err
	}
	swapping := true
	if in.SupportOutfitSwapping != nil {
		swapping = *in.SupportOutfitSwapping
	}

	now := shared.Now()
	m := &Model{props: Props{
		ID:                    shared.GenerateID(),
		StoreID:               storeID,
		Name:                  name,
		Description:           description,
		Status:                StatusDraft,
		Gender:                gender,
		AgeRange:              ageRange,
		Ethnicity:             ethnicity,
		BodyType:              bodyType,
		Prompt:                prompt,
		ReferenceImageIDs:     refs,
		CalibrationImageIDs:   []shared.ID{},
		Lighting:              lighting,
		Camera:                camera,
		TexturePreferences:    textures,
		ProductCategories:     categories,
		SupportOutfitSwapping: swapping,
		CreatedAt:             now,
		UpdatedAt:             now,
	}}
	m.events = m.events.Record(NewCreatedEvent(m.props.ID.Value(), CreatedData{
		StoreID:           storeID.Value(),
		Name:              name.Value(),
		Prompt:            promptValue(prompt),
		ReferenceImageIDs: idStrings(refs),
	}))
	return m, nil
}

func optionalDescription(raw string) (*Description, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := NewDescription(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalPrompt(raw string) (*Prompt, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	p, err := NewPrompt(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Model) copy() *Model {
	c := &Model{props: m.props, events: m.events}
	c.props.ReferenceImageIDs = slices.Clone(m.props.ReferenceImageIDs)
	c.props.CalibrationImageIDs = slices.Clone(m.props.CalibrationImageIDs)
	c.props.TexturePreferences = slices.Clone(m.props.TexturePreferences)
	c.props.ProductCategories = slices.Clone(m.props.ProductCategories)
	return c
}

func (m *Model) transition(to Status) (*Model, error) {
	if !IsValidTransition(m.props.Status, to) {
		return nil, NewInvalidTransitionError(m.props.Status, to)
	}
	c := m.copy()
	c.props.Status = to
	c.props.UpdatedAt = shared.Now()
	return c, nil
}

// UpdateInput changes only the non-nil fields. Empty Description or Prompt
// clears it. Setting a preset replaces the whole config and is validated
// strictly.
type UpdateInput struct {
	Name                  *string
	Description           *string
	Gender                *string
	AgeRange              *string
	Ethnicity             *string
	BodyType              *string
	Prompt                *string
	ReferenceImageIDs     *[]string
	LightingPreset        *string
	CustomLighting        *CustomLighting
	CameraPreset          *string
	CustomCamera          *CustomCamera
	TexturePreferences    *[]string
	ProductCategories     *[]string
	SupportOutfitSwapping *bool
}

// Update edits the model's details and records ModelUpdated with the fields
// that actually changed. Archived models cannot be edited; reference images
// can only change before calibration or after a failed one.
func (m *Model) Update(in UpdateInput) (*Model, error) {
	if m.props.Status == StatusArchived {
		return nil, NewInvalidStatusError(m.props.Status, "update")
	}
	c := m.copy()
	ch := shared.Changes{}

	if in.Name != nil {
		name, err := NewName(*in.Name)
		if err != nil {
			return nil, err
		}
		shared.Track(ch, "name", m.props.Name.Value(), name.Value())
		c.props.Name = name
	}
	if in.Description != nil {
		d, err := optionalDescription(*in.Description)
		if err != nil {
			return nil, err
		}
		shared.TrackOptional(ch, "description", descriptionValue(m.props.Description), descriptionValue(d))
		c.props.Description = d
	}
	if in.Gender != nil {
		g, err := ParseGender(*in.Gender)
		if err != nil {
			return nil, err
		}
		shared.Track(ch, "gender", m.props.Gender, g)
		c.props.Gender = g
	}
	if in.AgeRange != nil {
		a, err := ParseAgeRange(*in.AgeRange)
		if err != nil {
			return nil, err
		}
		shared.Track(ch, "ageRange", m.props.AgeRange, a)
		c.props.AgeRange = a
	}
	if in.Ethnicity != nil {
		e, err := ParseEthnicity(*in.Ethnicity)
		if err != nil {
			return nil, err
		}
		shared.Track(ch, "ethnicity", m.props.Ethnicity, e)
		c.props.Ethnicity = e
	}
	if in.BodyType != nil {
		b, err := ParseBodyType(*in.BodyType)
		if err != nil {
			return nil, err
		}
		shared.Track(ch, "bodyType", m.props.BodyType, b)
		c.props.BodyType = b
	}
	if in.Prompt != nil {
		p, err := optionalPrompt(*in.Prompt)
		if err != nil {
			return nil, err
		}
		shared.TrackOptional(ch, "prompt", promptValue(m.props.Prompt), promptValue(p))
		c.props.Prompt = p
	}
	if in.ReferenceImageIDs != nil {
		refs, err := newIDList("referenceImageIds", *in.ReferenceImageIDs)
		if err != nil {
			return nil, err
		}
		trackList(ch, "referenceImageIds", idStrings(m.props.ReferenceImageIDs), idStrings(refs))
		if _, changed := ch["referenceImageIds"]; changed &&
			m.props.Status != StatusDraft && m.props.Status != StatusFailed {
			return nil, NewInvalidStatusError(m.props.Status, "change reference images")
		}
		c.props.ReferenceImageIDs = refs
	}
	if c.props.Prompt == nil && len(c.props.ReferenceImageIDs) == 0 {
		return nil, NewRequiresInputError()
	}
	if in.LightingPreset != nil {
		l, err := NewLightingConfig(*in.LightingPreset, in.CustomLighting)
		if err != nil {
			return nil, err
		}
		if !l.Equals(m.props.Lighting) {
			ch["lightingConfig"] = shared.Change{From: lightingRecord(m.props.Lighting), To: lightingRecord(l)}
		}
		c.props.Lighting = l
	}
	if in.CameraPreset != nil {
		cam, err := NewCameraConfig(*in.CameraPreset, in.CustomCamera)
		if err != nil {
			return nil, err
		}
		if !cam.Equals(m.props.Camera) {
			ch["cameraConfig"] = shared.Change{From: cameraRecord(m.props.Camera), To: cameraRecord(cam)}
		}
		c.props.Camera = cam
	}
	if in.TexturePreferences != nil {
		t, err := ParseTextures(*in.TexturePreferences)
		if err != nil {
			return nil, err
		}
		trackList(ch, "texturePreferences", enumStrings(m.props.TexturePreferences), enumStrings(t))
		c.props.TexturePreferences = t
	}
	if in.ProductCategories != nil {
		pc, err := ParseProductCategories(*in.ProductCategories)
		if err != nil {
			return nil, err
		}
		trackList(ch, "productCategories", enumStrings(m.props.ProductCategories), enumStrings(pc))
		c.props.ProductCategories = pc
	}
	if in.SupportOutfitSwapping != nil {
		shared.Track(ch, "supportOutfitSwapping", m.props.SupportOutfitSwapping, *in.SupportOutfitSwapping)
		c.props.SupportOutfitSwapping = *in.SupportOutfitSwapping
	}

	if ch.Empty() {
		return c, nil
	}
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewUpdatedEvent(m.props.ID.Value(), UpdatedData{Changes: ch}))
	return c, nil
}

// StartCalibration moves a draft into CALIBRATING.
func (m *Model) StartCalibration() (*Model, error) {
	c, err := m.transition(StatusCalibrating)
	if err != nil {
		return nil, err
	}
	c.events = c.events.Record(NewCalibrationStartedEvent(m.props.ID.Value(), CalibrationStartedData{
		StoreID:           m.props.StoreID.Value(),
		ReferenceImageIDs: idStrings(m.props.ReferenceImageIDs),
	}))
	return c, nil
}

// AddCalibrationImage appends a candidate image while calibrating.
func (m *Model) AddCalibrationImage(assetID string) (*Model, error) {
	if m.props.Status != StatusCalibrating {
		return nil, NewInvalidStatusError(m.props.Status, "add calibration image")
	}
	id, err := NewID("assetId", assetID)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(m.props.CalibrationImageIDs, id.Equals) {
		return nil, NewBusinessRuleViolationError("calibration image " + id.Value() + " is already attached")
	}
	c := m.copy()
	c.props.CalibrationImageIDs = append(c.props.CalibrationImageIDs, id)
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewCalibrationImageAddedEvent(m.props.ID.Value(), CalibrationImageAddedData{
		StoreID:    m.props.StoreID.Value(),
		AssetID:    id.Value(),
		ImageCount: len(c.props.CalibrationImageIDs),
	}))
	return c, nil
}

// ApproveCalibration activates the model with its locked identity image.
func (m *Model) ApproveCalibration(lockedIdentityURL string) (*Model, error) {
	u, err := validateURL("lockedIdentityUrl", lockedIdentityURL)
	if err != nil {
		return nil, err
	}
	c, err := m.transition(StatusActive)
	if err != nil {
		return nil, err
	}
	c.props.LockedIdentityURL = &u
	c.props.FailureReason = nil
	c.events = c.events.Record(NewCalibrationApprovedEvent(m.props.ID.Value(), CalibrationApprovedData{
		StoreID:           m.props.StoreID.Value(),
		LockedIdentityURL: u,
	}))
	return c, nil
}

func (m *Model) RejectCalibration(reason string) (*Model, error) {
	r, err := validateReason(reason)
	if err != nil {
		return nil, err
	}
	c, err := m.transition(StatusFailed)
	if err != nil {
		return nil, err
	}
	c.props.FailureReason = &r
	c.events = c.events.Record(NewCalibrationRejectedEvent(m.props.ID.Value(), CalibrationRejectedData{
		StoreID: m.props.StoreID.Value(),
		Reason:  r,
	}))
	return c, nil
}

// RetryCalibration returns a failed model to DRAFT, dropping the previous
// calibration images and failure reason.
func (m *Model) RetryCalibration() (*Model, error) {
	c, err := m.transition(StatusDraft)
	if err != nil {
		return nil, err
	}
	var previous string
	if m.props.FailureReason != nil {
		previous = *m.props.FailureReason
	}
	c.props.CalibrationImageIDs = []shared.ID{}
	c.props.FailureReason = nil
	c.events = c.events.Record(NewCalibrationRetriedEvent(m.props.ID.Value(), CalibrationRetriedData{
		StoreID:       m.props.StoreID.Value(),
		PreviousError: previous,
	}))
	return c, nil
}

func (m *Model) Archive() (*Model, error) {
	c, err := m.transition(StatusArchived)
	if err != nil {
		return nil, err
	}
	c.events = c.events.Record(NewArchivedEvent(m.props.ID.Value(), ArchivedData{StoreID: m.props.StoreID.Value()}))
	return c, nil
}

// Delete soft-deletes the model. Deleting again re-stamps deletedAt.
func (m *Model) Delete() *Model {
	now := shared.Now()
	c := m.copy()
	c.props.DeletedAt = &now
	c.props.UpdatedAt = now
	c.events = c.events.Record(NewDeletedEvent(m.props.ID.Value(), DeletedData{
		StoreID:   m.props.StoreID.Value(),
		DeletedAt: now,
	}))
	return c
}

func (m *Model) Restore() *Model {
	c := m.copy()
	if m.props.DeletedAt == nil {
		return c
	}
	c.props.DeletedAt = nil
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewRestoredEvent(m.props.ID.Value(), RestoredData{StoreID: m.props.StoreID.Value()}))
	return c
}

func (m *Model) ID() shared.ID                  { return m.props.ID }
func (m *Model) StoreID() shared.ID             { return m.props.StoreID }
func (m *Model) Name() Name                     { return m.props.Name }
func (m *Model) Status() Status                 { return m.props.Status }
func (m *Model) Gender() Gender                 { return m.props.Gender }
func (m *Model) AgeRange() AgeRange             { return m.props.AgeRange }
func (m *Model) Ethnicity() Ethnicity           { return m.props.Ethnicity }
func (m *Model) BodyType() BodyType             { return m.props.BodyType }
func (m *Model) Lighting() LightingConfig       { return m.props.Lighting }
func (m *Model) Camera() CameraConfig           { return m.props.Camera }
func (m *Model) SupportsOutfitSwapping() bool   { return m.props.SupportOutfitSwapping }
func (m *Model) CreatedAt() time.Time           { return m.props.CreatedAt }
func (m *Model) UpdatedAt() time.Time           { return m.props.UpdatedAt }
func (m *Model) IsDeleted() bool                { return m.props.DeletedAt != nil }
func (m *Model) IsActive() bool                 { return m.props.Status == StatusActive }
func (m *Model) Description() *Description      { return shared.ClonePtr(m.props.Description) }
func (m *Model) Prompt() *Prompt                { return shared.ClonePtr(m.props.Prompt) }
func (m *Model) LockedIdentityURL() *string     { return shared.ClonePtr(m.props.LockedIdentityURL) }
func (m *Model) FailureReason() *string         { return shared.ClonePtr(m.props.FailureReason) }
func (m *Model) DeletedAt() *time.Time          { return shared.ClonePtr(m.props.DeletedAt) }
func (m *Model) ReferenceImageIDs() []shared.ID { return slices.Clone(m.props.ReferenceImageIDs) }

func (m *Model) CalibrationImageIDs() []shared.ID {
	return slices.Clone(m.props.CalibrationImageIDs)
}

func (m *Model) TexturePreferences() []Texture {
	return slices.Clone(m.props.TexturePreferences)
}

func (m *Model) ProductCategories() []ProductCategory {
	return slices.Clone(m.props.ProductCategories)
}

func (m *Model) DomainEvents() []shared.Event { return m.events.Events() }

func (m *Model) ClearDomainEvents() *Model {
	c := m.copy()
	c.events = shared.EventRecorder{}
	return c
}

func (m *Model) Equals(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.props.ID.Equals(other.props.ID)
}

func descriptionValue(d *Description) *string {
	if d == nil {
		return nil
	}
	return shared.Ptr(d.Value())
}

func promptValue(p *Prompt) *string {
	if p == nil {
		return nil
	}
	return shared.Ptr(p.Value())
}

func idStrings(ids []shared.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Value()
	}
	return out
}

func enumStrings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func trackList(c shared.Changes, field string, from, to []string) {
	if !slices.Equal(from, to) {
		c[field] = shared.Change{From: from, To: to}
	}
}
