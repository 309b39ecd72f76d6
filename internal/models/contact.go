package models

type Contact struct {
	UUIDModel
	InternalName          string               `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	PhoneNumber           *string              `gorm:"size:64" json:"phone_number"`
	FaxNumber             *string              `gorm:"size:64" json:"fax_number"`
	Email                 *string              `gorm:"size:255" json:"email"`
	BackwardCompatibility *string              `gorm:"size:255" json:"backward_compatibility"`
	Translations          []ContactTranslation `gorm:"foreignKey:ContactID" json:"translations,omitempty"`
	Timestamps
}

func (Contact) TableName() string {
	return "contacts"
}

// Province names are unique per country.
type Province struct {
	UUIDModel
	InternalName          string                `gorm:"not null;size:255;uniqueIndex:idx_province_country_name" json:"internal_name"`
	CountryID             string                `gorm:"size:3;not null;uniqueIndex:idx_province_country_name" json:"country_id"`
	Country               *Country              `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	BackwardCompatibility *string               `gorm:"size:255" json:"backward_compatibility"`
	Translations          []ProvinceTranslation `gorm:"foreignKey:ProvinceID" json:"translations,omitempty"`
	Timestamps
}

func (Province) TableName() string {
	return "provinces"
}

type Location struct {
	UUIDModel
	InternalName          string                `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	CountryID             string                `gorm:"size:3;not null;index" json:"country_id"`
	Country               *Country              `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	ProvinceID            *string               `gorm:"size:36;index" json:"province_id"`
	Province              *Province             `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	Latitude              *float64              `json:"latitude"`
	Longitude             *float64              `json:"longitude"`
	BackwardCompatibility *string               `gorm:"size:255" json:"backward_compatibility"`
	Translations          []LocationTranslation `gorm:"foreignKey:LocationID" json:"translations,omitempty"`
	Timestamps
}

func (Location) TableName() string {
	return "locations"
}

type Address struct {
	UUIDModel
	InternalName          string               `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	CountryID             string               `gorm:"size:3;not null;index" json:"country_id"`
	Country               *Country             `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	LocationID            *string              `gorm:"size:36;index" json:"location_id"`
	BackwardCompatibility *string              `gorm:"size:255" json:"backward_compatibility"`
	Translations          []AddressTranslation `gorm:"foreignKey:AddressID" json:"translations,omitempty"`
	Timestamps
}

func (Address) TableName() string {
	return "addresses"
}
