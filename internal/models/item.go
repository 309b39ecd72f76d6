package models

type Item struct {
	UUIDModel
	InternalName          string            `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	Type                  string            `gorm:"not null;size:32;index" json:"type" example:"object"`
	CountryID             *string           `gorm:"size:3;index" json:"country_id"`
	Country               *Country          `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	PartnerID             *string           `gorm:"size:36;index" json:"partner_id"`
	Partner               *Partner          `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	ProjectID             *string           `gorm:"size:36;index" json:"project_id"`
	Project               *Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	BackwardCompatibility *string           `gorm:"size:255" json:"backward_compatibility"`
	Translations          []ItemTranslation `gorm:"foreignKey:ItemID" json:"translations,omitempty"`
	Tags                  []Tag             `gorm:"many2many:item_tag;" json:"tags,omitempty"`
	Pictures              []Picture         `gorm:"polymorphic:Pictureable;polymorphicValue:item" json:"pictures,omitempty"`
	Details               []Detail          `gorm:"foreignKey:ItemID" json:"details,omitempty"`
	Timestamps
}

func (Item) TableName() string {
	return "items"
}

type Tag struct {
	UUIDModel
	InternalName          string  `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	Description           string  `gorm:"type:text;not null" json:"description"`
	BackwardCompatibility *string `gorm:"size:255" json:"backward_compatibility"`
	Items                 []Item  `gorm:"many2many:item_tag;" json:"items,omitempty"`
	Timestamps
}

func (Tag) TableName() string {
	return "tags"
}

// Detail describes a notable part of an item.
type Detail struct {
	UUIDModel
	ItemID                string              `gorm:"size:36;not null;index" json:"item_id"`
	Item                  *Item               `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	InternalName          string              `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string             `gorm:"size:255" json:"backward_compatibility"`
	Translations          []DetailTranslation `gorm:"foreignKey:DetailID" json:"translations,omitempty"`
	Pictures              []Picture           `gorm:"polymorphic:Pictureable;polymorphicValue:detail" json:"pictures,omitempty"`
	Timestamps
}

func (Detail) TableName() string {
	return "details"
}
