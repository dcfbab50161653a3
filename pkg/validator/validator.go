package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	initOnce  sync.Once

	pagePathPattern = regexp.MustCompile(`^/[A-Za-z0-9_-]*$`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class", "id").Globally()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("page_path", validatePagePath)
	v.RegisterValidation("theme", validateTheme)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeHTML cleans rendered page markup. Class and id attributes are
// kept so heading anchors survive.
func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

// IsPagePath reports whether value looks like a single-segment site route.
func IsPagePath(value string) bool {
	return pagePathPattern.MatchString(value)
}

func validatePagePath(fl validator.FieldLevel) bool {
	return IsPagePath(fl.Field().String())
}

func validateTheme(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "light", "dark":
		return true
	}
	return false
}

