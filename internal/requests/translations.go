package requests

import (
	"museum-backend/internal/config"
	v "museum-backend/internal/validation"
)

// translation builds the schemas of a translation sub-resource. A row is
// unique per parent and language, and per context when contextual.
func translation(table, parent, parentTable string, contextual bool, fields ...*v.Field) definition {
	scope := []string{"language_id"}
	if contextual {
		scope = append(scope, "context_id")
	}

	store := v.NewSchema(
		v.Prohibited("id"),
		v.String(parent).Required().UUID().Exists(parentTable, "id").Unique(table, parent, scope...),
		v.String("language_id").Required().Size(3).Exists("languages", "id"),
	)
	filters := []*v.Field{uuidFilter(parent), codeFilter("language_id")}
	if contextual {
		store = store.With(v.String("context_id").Required().UUID().Exists("contexts", "id"))
		filters = append(filters, uuidFilter("context_id"))
	}
	store = store.With(fields...).With(backwardCompatibility())

	return definition{filters: filters, store: store}
}

func ItemTranslation(p config.PaginationConfig) Resource {
	return translation("item_translations", "item_id", "items", true,
		v.String("name").Required().Max(255),
		v.String("alternate_name").Nullable().Max(255),
		v.String("description").Required(),
		v.String("type").Nullable().Max(255),
		text("holder"),
		text("owner"),
		text("initial_owner"),
		text("dates"),
		text("location"),
		text("dimensions"),
		text("place_of_production"),
		text("bibliography"),
	).build(p)
}

func DetailTranslation(p config.PaginationConfig) Resource {
	return translation("detail_translations", "detail_id", "details", true,
		v.String("name").Required().Max(255),
		v.String("alternate_name").Nullable().Max(255),
		v.String("description").Required(),
	).build(p)
}

func CollectionTranslation(p config.PaginationConfig) Resource {
	return translation("collection_translations", "collection_id", "collections", true,
		v.String("title").Required().Max(255),
		v.String("description").Required(),
		v.String("url").Nullable().Max(255).URL(),
	).build(p)
}

func ExhibitionTranslation(p config.PaginationConfig) Resource {
	return translation("exhibition_translations", "exhibition_id", "exhibitions", true,
		v.String("title").Required().Max(255),
		text("description"),
		v.String("url").Nullable().Max(255).URL(),
	).build(p)
}

func ThemeTranslation(p config.PaginationConfig) Resource {
	return translation("theme_translations", "theme_id", "themes", true,
		v.String("title").Required().Max(255),
		text("description"),
		text("introduction"),
	).build(p)
}

func PictureTranslation(p config.PaginationConfig) Resource {
	return translation("picture_translations", "picture_id", "pictures", true,
		v.String("description").Required(),
		v.String("caption").Required(),
		text("copyright_text"),
	).build(p)
}

func ContactTranslation(p config.PaginationConfig) Resource {
	return translation("contact_translations", "contact_id", "contacts", false,
		v.String("label").Required().Max(255),
	).build(p)
}

func ProvinceTranslation(p config.PaginationConfig) Resource {
	return translation("province_translations", "province_id", "provinces", false,
		v.String("name").Required().Max(255),
		text("description"),
	).build(p)
}

func LocationTranslation(p config.PaginationConfig) Resource {
	return translation("location_translations", "location_id", "locations", false,
		v.String("name").Required().Max(255),
		text("description"),
	).build(p)
}

func AddressTranslation(p config.PaginationConfig) Resource {
	return translation("address_translations", "address_id", "addresses", false,
		v.String("address").Required(),
		text("description"),
	).build(p)
}
