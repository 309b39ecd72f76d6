package models

type Collection struct {
	UUIDModel
	InternalName          string                  `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string                 `gorm:"size:255" json:"backward_compatibility"`
	ContextID             *string                 `gorm:"size:36;index" json:"context_id"`
	Context               *Context                `gorm:"foreignKey:ContextID" json:"context,omitempty"`
	LanguageID            *string                 `gorm:"size:3;index" json:"language_id"`
	Language              *Language               `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	Items                 []Item                  `gorm:"many2many:collection_item;" json:"items,omitempty"`
	Translations          []CollectionTranslation `gorm:"foreignKey:CollectionID" json:"translations,omitempty"`
	Timestamps
}

func (Collection) TableName() string {
	return "collections"
}

type Gallery struct {
	UUIDModel
	InternalName          string    `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string   `gorm:"size:255" json:"backward_compatibility"`
	Pictures              []Picture `gorm:"many2many:gallery_picture;" json:"pictures,omitempty"`
	Timestamps
}

func (Gallery) TableName() string {
	return "galleries"
}

type Exhibition struct {
	UUIDModel
	InternalName          string                  `gorm:"uniqueIndex;not null;size:255" json:"internal_name"`
	BackwardCompatibility *string                 `gorm:"size:255" json:"backward_compatibility"`
	Translations          []ExhibitionTranslation `gorm:"foreignKey:ExhibitionID" json:"translations,omitempty"`
	Themes                []Theme                 `gorm:"foreignKey:ExhibitionID" json:"themes,omitempty"`
	Timestamps
}

func (Exhibition) TableName() string {
	return "exhibitions"
}

// Theme belongs to an exhibition and may be nested under a parent theme.
// Its internal name is unique within the exhibition only.
type Theme struct {
	UUIDModel
	ExhibitionID          string             `gorm:"size:36;not null;uniqueIndex:idx_theme_exhibition_name" json:"exhibition_id"`
	Exhibition            *Exhibition        `gorm:"foreignKey:ExhibitionID" json:"exhibition,omitempty"`
	ParentID              *string            `gorm:"size:36;index" json:"parent_id"`
	InternalName          string             `gorm:"not null;size:255;uniqueIndex:idx_theme_exhibition_name" json:"internal_name"`
	BackwardCompatibility *string            `gorm:"size:255" json:"backward_compatibility"`
	Translations          []ThemeTranslation `gorm:"foreignKey:ThemeID" json:"translations,omitempty"`
	Subthemes             []Theme            `gorm:"foreignKey:ParentID" json:"subthemes,omitempty"`
	Timestamps
}

func (Theme) TableName() string {
	return "themes"
}
