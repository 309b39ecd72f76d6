package models

const (
	PictureableItem    = "item"
	PictureableDetail  = "detail"
	PictureablePartner = "partner"
)

// Picture is an image attached to an item, a detail or a partner.
type Picture struct {
	UUIDModel
	InternalName          string               `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string              `gorm:"size:255" json:"backward_compatibility"`
	PictureableType       string               `gorm:"size:32;not null;index:idx_pictureable" json:"pictureable_type" example:"item"`
	PictureableID         string               `gorm:"size:36;not null;index:idx_pictureable" json:"pictureable_id"`
	Path                  string               `gorm:"not null" json:"path"`
	OriginalName          string               `json:"original_name"`
	MimeType              string               `gorm:"size:127" json:"mime_type"`
	Size                  int64                `json:"size"`
	CopyrightText         *string              `json:"copyright_text"`
	CopyrightURL          *string              `json:"copyright_url"`
	Translations          []PictureTranslation `gorm:"foreignKey:PictureID" json:"translations,omitempty"`
	Timestamps
}

func (Picture) TableName() string {
	return "pictures"
}

// AvailableImage is a processed upload waiting to be attached as a Picture.
type AvailableImage struct {
	UUIDModel
	Path     string  `gorm:"not null" json:"path"`
	MimeType string  `gorm:"size:127" json:"mime_type"`
	Size     int64   `json:"size"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Comment  *string `json:"comment"`
	Timestamps
}

func (AvailableImage) TableName() string {
	return "available_images"
}

// ImageUpload lives until the processing worker turns it into an AvailableImage
// carrying the same ID.
type ImageUpload struct {
	UUIDModel
	Path      string `gorm:"not null" json:"path"`
	Name      string `json:"name"`
	Extension string `gorm:"size:16" json:"extension"`
	MimeType  string `gorm:"size:127" json:"mime_type"`
	Size      int64  `json:"size"`
	Timestamps
}

func (ImageUpload) TableName() string {
	return "image_uploads"
}
