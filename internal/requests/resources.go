package requests

import (
	"museum-backend/internal/config"
	"museum-backend/internal/models"
	v "museum-backend/internal/validation"
)

var (
	PartnerTypes     = []string{"museum", "institution", "individual"}
	ItemTypes        = []string{"object", "monument"}
	PictureableTypes = []string{models.PictureableItem, models.PictureableDetail, models.PictureablePartner}
)

// codeKeyed builds the schemas of Language and Country, whose id is a
// client-chosen 3-letter code fixed at creation.
func codeKeyed(table string, includes []string, extra ...*v.Field) definition {
	store := v.NewSchema(
		v.String("id").Required().Size(3).Unique(table, "id"),
		internalName(table),
		backwardCompatibility(),
	).With(extra...)
	return definition{includes: includes, store: store}
}

func Language(p config.PaginationConfig) Resource {
	return codeKeyed("languages", nil, v.Prohibited("is_default")).build(p)
}

func Country(p config.PaginationConfig) Resource {
	return codeKeyed("countries", []string{"items", "partners"}).build(p)
}

func Context(p config.PaginationConfig) Resource {
	return definition{
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("contexts"),
			backwardCompatibility(),
			v.Prohibited("is_default"),
		),
	}.build(p)
}

func Project(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"context", "language"},
		filters: []*v.Field{
			v.Boolean("is_enabled"),
			v.Boolean("is_launched"),
		},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("projects"),
			backwardCompatibility(),
			v.Date("launch_date").Nullable(),
			v.Boolean("is_launched"),
			v.Boolean("is_enabled"),
			reference("context_id", "contexts"),
			code("language_id", "languages"),
		),
	}.build(p)
}

func Partner(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"country", "items", "pictures"},
		filters: []*v.Field{
			v.String("type").In(PartnerTypes...),
			codeFilter("country_id"),
		},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("partners"),
			v.String("type").Required().In(PartnerTypes...),
			code("country_id", "countries"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Item(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"partner", "country", "project", "translations", "tags", "pictures", "details"},
		filters: []*v.Field{
			v.String("type").In(ItemTypes...),
			codeFilter("country_id"),
			uuidFilter("partner_id"),
			uuidFilter("project_id"),
		},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("items"),
			v.String("type").Required().In(ItemTypes...),
			code("country_id", "countries"),
			reference("partner_id", "partners"),
			reference("project_id", "projects"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Tag(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"items"},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("tags"),
			v.String("description").Required(),
			backwardCompatibility(),
		),
	}.build(p)
}

func Collection(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"items", "translations", "context", "language"},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("collections"),
			reference("context_id", "contexts"),
			code("language_id", "languages"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Gallery(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"pictures"},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("galleries"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Exhibition(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"translations", "themes"},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("exhibitions"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Theme(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"translations", "subthemes", "exhibition"},
		filters: []*v.Field{
			uuidFilter("exhibition_id"),
			uuidFilter("parent_id"),
		},
		store: v.NewSchema(
			v.Prohibited("id"),
			v.String("exhibition_id").Required().UUID().Exists("exhibitions", "id"),
			reference("parent_id", "themes"),
			internalName("themes", "exhibition_id"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Detail(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"item", "pictures", "translations"},
		filters:  []*v.Field{uuidFilter("item_id")},
		store: v.NewSchema(
			v.Prohibited("id"),
			v.String("item_id").Required().UUID().Exists("items", "id"),
			internalName("details"),
			backwardCompatibility(),
		),
	}.build(p)
}

func Contact(p config.PaginationConfig) Resource {
	translation := v.NewSchema(
		v.String("language_id").Required().Size(3).Exists("languages", "id"),
		v.String("label").Required().Max(255),
		backwardCompatibility(),
	)
	return definition{
		includes: []string{"translations"},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("contacts"),
			v.String("phone_number").Nullable().Max(64),
			v.String("fax_number").Nullable().Max(64),
			v.String("email").Nullable().Max(255).Email(),
			backwardCompatibility(),
			v.Array("translations", translation).Distinct("language_id"),
		),
	}.build(p)
}

func Province(p config.PaginationConfig) Resource {
	translation := v.NewSchema(
		v.String("language_id").Required().Size(3).Exists("languages", "id"),
		v.String("name").Required().Max(255),
		text("description"),
		backwardCompatibility(),
	)
	return definition{
		includes: []string{"translations", "country"},
		filters:  []*v.Field{codeFilter("country_id")},
		store: v.NewSchema(
			v.Prohibited("id"),
			v.String("country_id").Required().Size(3).Exists("countries", "id"),
			internalName("provinces", "country_id"),
			backwardCompatibility(),
			v.Array("translations", translation).Distinct("language_id"),
		),
	}.build(p)
}

func Location(p config.PaginationConfig) Resource {
	translation := v.NewSchema(
		v.String("language_id").Required().Size(3).Exists("languages", "id"),
		v.String("name").Required().Max(255),
		text("description"),
		backwardCompatibility(),
	)
	return definition{
		includes: []string{"translations", "country", "province"},
		filters: []*v.Field{
			codeFilter("country_id"),
			uuidFilter("province_id"),
		},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("locations"),
			v.String("country_id").Required().Size(3).Exists("countries", "id"),
			reference("province_id", "provinces"),
			v.Number("latitude").Nullable().Min(-90).Max(90),
			v.Number("longitude").Nullable().Min(-180).Max(180),
			backwardCompatibility(),
			v.Array("translations", translation).Required().MinItems(1).Distinct("language_id"),
		),
	}.build(p)
}

func Address(p config.PaginationConfig) Resource {
	translation := v.NewSchema(
		v.String("language_id").Required().Size(3).Exists("languages", "id"),
		v.String("address").Required(),
		text("description"),
		backwardCompatibility(),
	)
	return definition{
		includes: []string{"translations", "country"},
		filters:  []*v.Field{codeFilter("country_id")},
		store: v.NewSchema(
			v.Prohibited("id"),
			internalName("addresses"),
			v.String("country_id").Required().Size(3).Exists("countries", "id"),
			reference("location_id", "locations"),
			backwardCompatibility(),
			v.Array("translations", translation).Distinct("language_id"),
		),
	}.build(p)
}

// Picture records are created by attaching an available image.
func Picture(p config.PaginationConfig) Resource {
	return definition{
		includes: []string{"translations"},
		filters: []*v.Field{
			v.String("pictureable_type").In(PictureableTypes...),
			uuidFilter("pictureable_id"),
		},
		update: v.NewSchema(
			v.Prohibited("id"),
			v.String("internal_name").Filled().Max(255).Unique("pictures", "internal_name"),
			backwardCompatibility(),
			text("copyright_text"),
			v.String("copyright_url").Nullable().Max(255).URL(),
		),
	}.build(p)
}

func AvailableImage(p config.PaginationConfig) Resource {
	return definition{
		update: v.NewSchema(
			v.Prohibited("id"),
			text("comment"),
		),
	}.build(p)
}

// ImageUpload is stored from a multipart form, never updated.
func ImageUpload(p config.PaginationConfig, maxSize int64) Resource {
	r := definition{}.build(p)
	r.Store = v.NewSchema(
		v.File("file").Required().Image().Max(float64(maxSize) / 1024),
	)
	return r
}
