package models

// Language is keyed by its ISO 639-3 code (e.g. 'eng', 'ita').
type Language struct {
	ID                    string  `gorm:"primaryKey;size:3" json:"id" example:"eng"`
	InternalName          string  `gorm:"not null;size:255" json:"internal_name" example:"English"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	IsDefault             bool    `gorm:"not null;default:false;index" json:"is_default"`
	Timestamps
}

func (Language) TableName() string {
	return "languages"
}

func (l Language) GetID() string {
	return l.ID
}

// Country is keyed by its ISO 3166-1 alpha-3 code.
type Country struct {
	ID                    string    `gorm:"primaryKey;size:3" json:"id" example:"ita"`
	InternalName          string    `gorm:"not null;size:255" json:"internal_name" example:"Italy"`
	BackwardCompatibility *string   `gorm:"size:255" json:"backward_compatibility"`
	Items                 []Item    `gorm:"foreignKey:CountryID" json:"items,omitempty"`
	Partners              []Partner `gorm:"foreignKey:CountryID" json:"partners,omitempty"`
	Timestamps
}

func (Country) TableName() string {
	return "countries"
}

func (c Country) GetID() string {
	return c.ID
}

type Context struct {
	UUIDModel
	InternalName          string  `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	IsDefault             bool    `gorm:"not null;default:false;index" json:"is_default"`
	Timestamps
}

func (Context) TableName() string {
	return "contexts"
}
