package requests

import (
	"museum-backend/internal/services"
	v "museum-backend/internal/validation"
)

// Flag sets or clears one boolean column.
func Flag(name string) *v.Schema {
	return v.NewSchema(v.Boolean(name).Required())
}

// Link names the related record of an attach or detach call.
func Link(field, table string) *v.Schema {
	return v.NewSchema(v.String(field).Required().UUID().Exists(table, "id"))
}

func AttachPicture() *v.Schema {
	return v.NewSchema(
		v.String("available_image_id").Required().UUID().Exists("available_images", "id"),
		internalName("pictures"),
		backwardCompatibility(),
		text("copyright_text"),
		v.String("copyright_url").Nullable().Max(255).URL(),
	)
}

func Markdown() *v.Schema {
	return v.NewSchema(v.String("content").Required().Raw().Max(services.MaxMarkdownLength))
}

func AcquireToken() *v.Schema {
	return v.NewSchema(
		v.String("email").Required().Max(255).Email(),
		v.String("password").Required(),
		v.String("device_name").Required().Max(255),
	)
}
