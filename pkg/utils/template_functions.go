package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"
)

type AssetModTimeFunc func(path string) (time.Time, error)

func GetTemplateFuncs(assetModTime AssetModTimeFunc) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"contains":  strings.Contains,
		"pathEquals": func(current, value string) bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
				if parsed, err := url.Parse(value); err == nil {
					if parsed.Path != "" {
						value = parsed.Path
					}
				}
			}
			return current != "" && current == value
		},

		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},

		"safe":    func(s string) template.HTML { return template.HTML(s) },
		"safeURL": func(s string) template.URL { return template.URL(s) },

		"dict": func(values ...interface{}) map[string]interface{} {
			dict := make(map[string]interface{})
			for i := 0; i+1 < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
		"year": func(t time.Time) int { return t.Year() },
		"asset": func(path string) string {
			if path == "" {
				return ""
			}
			lowerPath := strings.ToLower(path)
			if strings.HasPrefix(lowerPath, "http://") || strings.HasPrefix(lowerPath, "https://") || strings.HasPrefix(path, "//") {
				return path
			}
			version := int64(0)
			if assetModTime != nil {
				if modTime, err := assetModTime(path); err == nil {
					version = modTime.Unix()
				}
			}
			if version <= 0 {
				return path
			}
			separator := "?"
			if strings.Contains(path, "?") {
				separator = "&"
			}
			return fmt.Sprintf("%s%sv=%d", path, separator, version)
		},
	}
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}

func NormalizePath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			if parsed.Path != "" {
				trimmed = parsed.Path
			} else {
				trimmed = "/"
			}
		}
	}

	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}

	if cleaned != "/" && strings.HasSuffix(cleaned, "/") {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}

	return cleaned
}
