package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Language{},
		&Country{},
		&Context{},
		&Project{},
		&Partner{},
		&Item{},
		&Tag{},
		&Detail{},
		&Collection{},
		&Gallery{},
		&Exhibition{},
		&Theme{},
		&Contact{},
		&Province{},
		&Location{},
		&Address{},
		&Picture{},
		&AvailableImage{},
		&ImageUpload{},
		&ItemTranslation{},
		&DetailTranslation{},
		&CollectionTranslation{},
		&ExhibitionTranslation{},
		&ThemeTranslation{},
		&PictureTranslation{},
		&ContactTranslation{},
		&ProvinceTranslation{},
		&LocationTranslation{},
		&AddressTranslation{},
		&User{},
		&PersonalAccessToken{},
	}
}
