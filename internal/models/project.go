package models

import "time"

type Project struct {
	UUIDModel
	InternalName          string     `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string    `gorm:"size:255" json:"backward_compatibility"`
	LaunchDate            *time.Time `json:"launch_date"`
	IsLaunched            bool       `gorm:"not null;default:false" json:"is_launched"`
	IsEnabled             bool       `gorm:"not null;default:false" json:"is_enabled"`
	ContextID             *string    `gorm:"size:36;index" json:"context_id"`
	Context               *Context   `gorm:"foreignKey:ContextID" json:"context,omitempty"`
	LanguageID            *string    `gorm:"size:3;index" json:"language_id"`
	Language              *Language  `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	Timestamps
}

func (Project) TableName() string {
	return "projects"
}

type Partner struct {
	UUIDModel
	InternalName          string    `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	Type                  string    `gorm:"not null;size:32;index" json:"type" example:"museum"`
	CountryID             *string   `gorm:"size:3;index" json:"country_id"`
	Country               *Country  `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	BackwardCompatibility *string   `gorm:"size:255" json:"backward_compatibility"`
	Items                 []Item    `gorm:"foreignKey:PartnerID" json:"items,omitempty"`
	Pictures              []Picture `gorm:"polymorphic:Pictureable;polymorphicValue:partner" json:"pictures,omitempty"`
	Timestamps
}

func (Partner) TableName() string {
	return "partners"
}
