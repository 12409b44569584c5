package model

import (
	"slices"
	"strconv"
	"strings"

	"github.com/oksasatya/fashion-studio/pkg/validation"
)

type Gender string

const (
	GenderFemale    Gender = "FEMALE"
	GenderMale      Gender = "MALE"
	GenderNonBinary Gender = "NON_BINARY"
)

var genders = []Gender{GenderFemale, GenderMale, GenderNonBinary}

type AgeRange string

const (
	Age18To24  AgeRange = "AGE_18_24"
	Age25To34  AgeRange = "AGE_25_34"
	Age35To44  AgeRange = "AGE_35_44"
	Age45To54  AgeRange = "AGE_45_54"
	Age55AndUp AgeRange = "AGE_55_PLUS"
)

var ageRanges = []AgeRange{Age18To24, Age25To34, Age35To44, Age45To54, Age55AndUp}

type Ethnicity string

const (
	EthnicityAsian         Ethnicity = "ASIAN"
	EthnicityBlack         Ethnicity = "BLACK"
	EthnicityCaucasian     Ethnicity = "CAUCASIAN"
	EthnicityHispanic      Ethnicity = "HISPANIC"
	EthnicityMiddleEastern Ethnicity = "MIDDLE_EASTERN"
	EthnicitySouthAsian    Ethnicity = "SOUTH_ASIAN"
	EthnicityMixed         Ethnicity = "MIXED"
)

var ethnicities = []Ethnicity{
	EthnicityAsian, EthnicityBlack, EthnicityCaucasian, EthnicityHispanic,
	EthnicityMiddleEastern, EthnicitySouthAsian, EthnicityMixed,
}

type BodyType string

const (
	BodySlim     BodyType = "SLIM"
	BodyAthletic BodyType = "ATHLETIC"
	BodyAverage  BodyType = "AVERAGE"
	BodyCurvy    BodyType = "CURVY"
	BodyPlusSize BodyType = "PLUS_SIZE"
	BodyPetite   BodyType = "PETITE"
)

var bodyTypes = []BodyType{BodySlim, BodyAthletic, BodyAverage, BodyCurvy, BodyPlusSize, BodyPetite}

// Texture is a fabric rendering the model should handle well.
type Texture string

const (
	TextureCotton  Texture = "COTTON"
	TextureDenim   Texture = "DENIM"
	TextureKnit    Texture = "KNIT"
	TextureLace    Texture = "LACE"
	TextureLeather Texture = "LEATHER"
	TextureLinen   Texture = "LINEN"
	TextureSatin   Texture = "SATIN"
	TextureSequin  Texture = "SEQUIN"
	TextureSilk    Texture = "SILK"
	TextureWool    Texture = "WOOL"
)

var textures = []Texture{
	TextureCotton, TextureDenim, TextureKnit, TextureLace, TextureLeather,
	TextureLinen, TextureSatin, TextureSequin, TextureSilk, TextureWool,
}

// ProductCategory is a garment family the model is used to present.
type ProductCategory string

const (
	ProductTops        ProductCategory = "TOPS"
	ProductBottoms     ProductCategory = "BOTTOMS"
	ProductDresses     ProductCategory = "DRESSES"
	ProductOuterwear   ProductCategory = "OUTERWEAR"
	ProductActivewear  ProductCategory = "ACTIVEWEAR"
	ProductSwimwear    ProductCategory = "SWIMWEAR"
	ProductLingerie    ProductCategory = "LINGERIE"
	ProductShoes       ProductCategory = "SHOES"
	ProductAccessories ProductCategory = "ACCESSORIES"
)

var productCategories = []ProductCategory{
	ProductTops, ProductBottoms, ProductDresses, ProductOuterwear, ProductActivewear,
	ProductSwimwear, ProductLingerie, ProductShoes, ProductAccessories,
}

func ParseGender(raw string) (Gender, error)       { return parseEnum("gender", raw, genders) }
func ParseAgeRange(raw string) (AgeRange, error)   { return parseEnum("ageRange", raw, ageRanges) }
func ParseEthnicity(raw string) (Ethnicity, error) { return parseEnum("ethnicity", raw, ethnicities) }
func ParseBodyType(raw string) (BodyType, error)   { return parseEnum("bodyType", raw, bodyTypes) }

func AllGenders() []Gender                    { return slices.Clone(genders) }
func AllAgeRanges() []AgeRange                { return slices.Clone(ageRanges) }
func AllEthnicities() []Ethnicity             { return slices.Clone(ethnicities) }
func AllBodyTypes() []BodyType                { return slices.Clone(bodyTypes) }
func AllTextures() []Texture                  { return slices.Clone(textures) }
func AllProductCategories() []ProductCategory { return slices.Clone(productCategories) }

func parseEnum[T ~string](field, raw string, all []T) (T, error) {
	v := T(strings.TrimSpace(raw))
	if slices.Contains(all, v) {
		return v, nil
	}
	return "", NewValidationError(field, raw, []string{"must be one of: " + joinEnum(all)})
}

func joinEnum[T ~string](all []T) string {
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

const (
	maxTextures          = 5
	maxProductCategories = len(productCategories)
)

// ParseTextures validates and de-duplicates raw, keeping first-seen order.
func ParseTextures(raw []string) ([]Texture, error) {
	return parseEnumList("texturePreferences", raw, textures, maxTextures)
}

// ParseProductCategories validates and de-duplicates raw, keeping first-seen order.
func ParseProductCategories(raw []string) ([]ProductCategory, error) {
	return parseEnumList("productCategories", raw, productCategories, maxProductCategories)
}

func parseEnumList[T ~string](field string, raw []string, all []T, limit int) ([]T, error) {
	out := make([]T, 0, len(raw))
	var violations []string
	for _, r := range raw {
		v := T(strings.TrimSpace(r))
		switch {
		case !slices.Contains(all, v):
			violations = append(violations, r+" must be one of: "+joinEnum(all))
		case !slices.Contains(out, v):
			out = append(out, v)
		}
	}
	if len(out) > limit {
		violations = append(violations, validation.Violations(out, "max="+strconv.Itoa(limit))...)
	}
	if len(violations) > 0 {
		return nil, NewValidationError(field, raw, violations)
	}
	return out, nil
}

// LightingPreset names a lighting setup. CUSTOM requires CustomLighting.
type LightingPreset string

const (
	LightingStudioSoft      LightingPreset = "STUDIO_SOFT"
	LightingStudioDramatic  LightingPreset = "STUDIO_DRAMATIC"
	LightingNaturalDaylight LightingPreset = "NATURAL_DAYLIGHT"
	LightingGoldenHour      LightingPreset = "GOLDEN_HOUR"
	LightingNeon            LightingPreset = "NEON"
	LightingCustom          LightingPreset = "CUSTOM"
)

var lightingPresets = []LightingPreset{
	LightingStudioSoft, LightingStudioDramatic, LightingNaturalDaylight,
	LightingGoldenHour, LightingNeon, LightingCustom,
}

// DefaultLightingPreset is used when a model states no lighting.
const DefaultLightingPreset = LightingStudioSoft

type CustomLighting struct {
	Intensity         int    `json:"intensity" validate:"min=0,max=100"`
	ColorTemperatureK int    `json:"colorTemperatureK" validate:"min=2000,max=10000"`
	KeyLightDirection string `json:"keyLightDirection" validate:"oneof=FRONT LEFT RIGHT BACK TOP"`
}

// LightingConfig is a named preset or CUSTOM with its settings.
type LightingConfig struct {
	preset LightingPreset
	custom *CustomLighting
}

// NewLightingConfig validates the preset/settings pairing: CUSTOM requires
// settings and named presets reject them.
func NewLightingConfig(preset string, custom *CustomLighting) (LightingConfig, error) {
	p, err := parseEnum("lightingConfig.preset", preset, lightingPresets)
	if err != nil {
		return LightingConfig{}, err
	}
	switch {
	case p == LightingCustom && custom == nil:
		return LightingConfig{}, NewValidationError("lightingConfig.customSettings", nil,
			[]string{"is required when preset is CUSTOM"})
	case p != LightingCustom && custom != nil:
		return LightingConfig{}, NewValidationError("lightingConfig.customSettings", custom,
			[]string{"is only allowed when preset is CUSTOM"})
	case custom != nil:
		if violations := validation.StructViolations(custom); len(violations) > 0 {
			return LightingConfig{}, NewValidationError("lightingConfig.customSettings", custom, violations)
		}
		c := *custom
		return LightingConfig{preset: p, custom: &c}, nil
	}
	return LightingConfig{preset: p}, nil
}

func DefaultLightingConfig() LightingConfig { return LightingConfig{preset: DefaultLightingPreset} }

// resolveLighting builds from a named preset, from CUSTOM plus settings, or
// falls back to the default.
func resolveLighting(preset string, custom *CustomLighting) (LightingConfig, error) {
	p := strings.TrimSpace(preset)
	switch {
	case p == "":
		return DefaultLightingConfig(), nil
	case LightingPreset(p) == LightingCustom && custom == nil:
		return DefaultLightingConfig(), nil
	case LightingPreset(p) == LightingCustom:
		return NewLightingConfig(p, custom)
	}
	return NewLightingConfig(p, nil)
}

func (l LightingConfig) Preset() LightingPreset { return l.preset }
func (l LightingConfig) IsCustom() bool         { return l.preset == LightingCustom }

func (l LightingConfig) Custom() *CustomLighting {
	if l.custom == nil {
		return nil
	}
	c := *l.custom
	return &c
}

func (l LightingConfig) Equals(other LightingConfig) bool {
	if l.preset != other.preset {
		return false
	}
	if l.custom == nil || other.custom == nil {
		return l.custom == other.custom
	}
	return *l.custom == *other.custom
}

// CameraPreset names a lens and framing setup. CUSTOM requires CustomCamera.
type CameraPreset string

const (
	CameraFullBody50mm CameraPreset = "FULL_BODY_50MM"
	CameraPortrait85mm CameraPreset = "PORTRAIT_85MM"
	CameraWide35mm     CameraPreset = "WIDE_35MM"
	CameraCloseUp100mm CameraPreset = "CLOSE_UP_100MM"
	CameraCustom       CameraPreset = "CUSTOM"
)

var cameraPresets = []CameraPreset{CameraFullBody50mm, CameraPortrait85mm, CameraWide35mm, CameraCloseUp100mm, CameraCustom}

const DefaultCameraPreset = CameraFullBody50mm

type CustomCamera struct {
	FocalLengthMM int     `json:"focalLengthMm" validate:"min=14,max=200"`
	Aperture      float64 `json:"aperture" validate:"gte=1,lte=22"`
	Angle         string  `json:"angle" validate:"oneof=EYE_LEVEL LOW HIGH OVERHEAD"`
	Framing       string  `json:"framing" validate:"oneof=FULL_BODY THREE_QUARTER HALF_BODY CLOSE_UP"`
}

type CameraConfig struct {
	preset CameraPreset
	custom *CustomCamera
}

func NewCameraConfig(preset string, custom *CustomCamera) (CameraConfig, error) {
	p, err := parseEnum("cameraConfig.preset", preset, cameraPresets)
	if err != nil {
		return CameraConfig{}, err
	}
	switch {
	case p == CameraCustom && custom == nil:
		return CameraConfig{}, NewValidationError("cameraConfig.customSettings", nil,
			[]string{"is required when preset is CUSTOM"})
	case p != CameraCustom && custom != nil:
		return CameraConfig{}, NewValidationError("cameraConfig.customSettings", custom,
			[]string{"is only allowed when preset is CUSTOM"})
	case custom != nil:
		if violations := validation.StructViolations(custom); len(violations) > 0 {
			return CameraConfig{}, NewValidationError("cameraConfig.customSettings", custom, violations)
		}
		c := *custom
		return CameraConfig{preset: p, custom: &c}, nil
	}
	return CameraConfig{preset: p}, nil
}

func DefaultCameraConfig() CameraConfig { return CameraConfig{preset: DefaultCameraPreset} }

func resolveCamera(preset string, custom *CustomCamera) (CameraConfig, error) {
	p := strings.TrimSpace(preset)
	switch {
	case p == "":
		return DefaultCameraConfig(), nil
	case CameraPreset(p) == CameraCustom && custom == nil:
		return DefaultCameraConfig(), nil
	case CameraPreset(p) == CameraCustom:
		return NewCameraConfig(p, custom)
	}
	return NewCameraConfig(p, nil)
}

func (c CameraConfig) Preset() CameraPreset { return c.preset }
func (c CameraConfig) IsCustom() bool       { return c.preset == CameraCustom }

func (c CameraConfig) Custom() *CustomCamera {
	if c.custom == nil {
		return nil
	}
	v := *c.custom
	return &v
}

func (c CameraConfig) Equals(other CameraConfig) bool {
	if c.preset != other.preset {
		return false
	}
	if c.custom == nil || other.custom == nil {
		return c.custom == other.custom
	}
	return *c.custom == *other.custom
}
