package site

import "strings"

// curatedImageKeys maps the image contexts that own a dedicated override key.
// Every other context gets a generic key.
var curatedImageKeys = map[string]string{
	"hero":        "_hero_image_override",
	"about":       "_about_image_override",
	"team office": "_about_image_override",
}

// ImageOverrideKey returns the content key that holds the override image for
// an image context such as "hero" or "gallery item 2".
func ImageOverrideKey(target string) string {
	target = strings.TrimSpace(target)
	if key, ok := curatedImageKeys[target]; ok {
		return key
	}
	return "_image_override_" + target
}
