package models

// Translations carrying a context are unique per (parent, language, context);
// the others per (parent, language).

type ItemTranslation struct {
	UUIDModel
	ItemID                string  `gorm:"size:36;not null;uniqueIndex:idx_item_translation" json:"item_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_item_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_item_translation" json:"context_id"`
	Name                  string  `gorm:"not null" json:"name"`
	AlternateName         *string `json:"alternate_name"`
	Description           string  `gorm:"type:text;not null" json:"description"`
	Type                  *string `json:"type"`
	Holder                *string `gorm:"type:text" json:"holder"`
	Owner                 *string `gorm:"type:text" json:"owner"`
	InitialOwner          *string `gorm:"type:text" json:"initial_owner"`
	Dates                 *string `gorm:"type:text" json:"dates"`
	Location              *string `gorm:"type:text" json:"location"`
	Dimensions            *string `gorm:"type:text" json:"dimensions"`
	PlaceOfProduction     *string `gorm:"type:text" json:"place_of_production"`
	Bibliography          *string `gorm:"type:text" json:"bibliography"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (ItemTranslation) TableName() string {
	return "item_translations"
}

type DetailTranslation struct {
	UUIDModel
	DetailID              string  `gorm:"size:36;not null;uniqueIndex:idx_detail_translation" json:"detail_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_detail_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_detail_translation" json:"context_id"`
	Name                  string  `gorm:"not null" json:"name"`
	AlternateName         *string `json:"alternate_name"`
	Description           string  `gorm:"type:text;not null" json:"description"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (DetailTranslation) TableName() string {
	return "detail_translations"
}

type CollectionTranslation struct {
	UUIDModel
	CollectionID          string  `gorm:"size:36;not null;uniqueIndex:idx_collection_translation" json:"collection_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_collection_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_collection_translation" json:"context_id"`
	Title                 string  `gorm:"not null" json:"title"`
	Description           string  `gorm:"type:text;not null" json:"description"`
	URL                   *string `json:"url"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (CollectionTranslation) TableName() string {
	return "collection_translations"
}

type ExhibitionTranslation struct {
	UUIDModel
	ExhibitionID          string  `gorm:"size:36;not null;uniqueIndex:idx_exhibition_translation" json:"exhibition_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_exhibition_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_exhibition_translation" json:"context_id"`
	Title                 string  `gorm:"not null" json:"title"`
	Description           *string `gorm:"type:text" json:"description"`
	URL                   *string `json:"url"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (ExhibitionTranslation) TableName() string {
	return "exhibition_translations"
}

type ThemeTranslation struct {
	UUIDModel
	ThemeID               string  `gorm:"size:36;not null;uniqueIndex:idx_theme_translation" json:"theme_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_theme_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_theme_translation" json:"context_id"`
	Title                 string  `gorm:"not null" json:"title"`
	Description           *string `gorm:"type:text" json:"description"`
	Introduction          *string `gorm:"type:text" json:"introduction"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (ThemeTranslation) TableName() string {
	return "theme_translations"
}

type PictureTranslation struct {
	UUIDModel
	PictureID             string  `gorm:"size:36;not null;uniqueIndex:idx_picture_translation" json:"picture_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_picture_translation" json:"language_id"`
	ContextID             string  `gorm:"size:36;not null;uniqueIndex:idx_picture_translation" json:"context_id"`
	Description           string  `gorm:"type:text;not null" json:"description"`
	Caption               string  `gorm:"type:text;not null" json:"caption"`
	CopyrightText         *string `json:"copyright_text"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (PictureTranslation) TableName() string {
	return "picture_translations"
}

type ContactTranslation struct {
	UUIDModel
	ContactID             string  `gorm:"size:36;not null;uniqueIndex:idx_contact_translation" json:"contact_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_contact_translation" json:"language_id"`
	Label                 string  `gorm:"not null" json:"label"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (ContactTranslation) TableName() string {
	return "contact_translations"
}

type ProvinceTranslation struct {
	UUIDModel
	ProvinceID            string  `gorm:"size:36;not null;uniqueIndex:idx_province_translation" json:"province_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_province_translation" json:"language_id"`
	Name                  string  `gorm:"not null" json:"name"`
	Description           *string `gorm:"type:text" json:"description"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (ProvinceTranslation) TableName() string {
	return "province_translations"
}

type LocationTranslation struct {
	UUIDModel
	LocationID            string  `gorm:"size:36;not null;uniqueIndex:idx_location_translation" json:"location_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_location_translation" json:"language_id"`
	Name                  string  `gorm:"not null" json:"name"`
	Description           *string `gorm:"type:text" json:"description"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (LocationTranslation) TableName() string {
	return "location_translations"
}

type AddressTranslation struct {
	UUIDModel
	AddressID             string  `gorm:"size:36;not null;uniqueIndex:idx_address_translation" json:"address_id"`
	LanguageID            string  `gorm:"size:3;not null;uniqueIndex:idx_address_translation" json:"language_id"`
	Address               string  `gorm:"type:text;not null" json:"address"`
	Description           *string `gorm:"type:text" json:"description"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Timestamps
}

func (AddressTranslation) TableName() string {
	return "address_translations"
}
