package handler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxSlugBytes = 200

// reservedSlugs are first path segments owned by other routes
var reservedSlugs = map[string]struct{}{
	"health":  {},
	"swagger": {},
	"api":     {},
}

// RegisterValidators adds the custom binding tags used by request structs
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("slug", validateSlug)
}

func validateSlug(fl validator.FieldLevel) bool {
	return isValidSlug(fl.Field().String())
}

// isValidSlug accepts any non-empty UTF-8 slug up to maxSlugBytes without
// control characters or '/'. The slug is escaped wherever it leaves the service.
func isValidSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugBytes || !utf8.ValidString(slug) {
		return false
	}
	if _, reserved := reservedSlugs[strings.ToLower(slug)]; reserved {
		return false
	}
	for _, r := range slug {
		if r == '/' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
