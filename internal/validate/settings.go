package validate

import (
	"regexp"
	"strings"
)

// settingKey matches NAME and conditional NAME[sdk=iphoneos*][arch=arm64].
var settingKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\[[^\]\[\r\n]+\])*$`)

// flagSettings feed the compiler or linker command line directly.
var flagSettings = map[string]struct{}{
	"OTHER_LDFLAGS":                       {},
	"OTHER_LIBTOOLFLAGS":                  {},
	"OTHER_CFLAGS":                        {},
	"OTHER_CPLUSPLUSFLAGS":                {},
	"OTHER_SWIFT_FLAGS":                   {},
	"WARNING_CFLAGS":                      {},
	"WARNING_LDFLAGS":                     {},
	"GCC_PREPROCESSOR_DEFINITIONS":        {},
	"SWIFT_ACTIVE_COMPILATION_CONDITIONS": {},
	"LD_DYLIB_INSTALL_NAME":               {},
	"DYLIB_INSTALL_NAME_BASE":             {},
}

// pathSettings are whitespace-separated lists of search locations.
var pathSettings = map[string]struct{}{
	"HEADER_SEARCH_PATHS":           {},
	"USER_HEADER_SEARCH_PATHS":      {},
	"SYSTEM_HEADER_SEARCH_PATHS":    {},
	"LIBRARY_SEARCH_PATHS":          {},
	"FRAMEWORK_SEARCH_PATHS":        {},
	"SYSTEM_FRAMEWORK_SEARCH_PATHS": {},
	"SWIFT_INCLUDE_PATHS":           {},
	"LD_RUNPATH_SEARCH_PATHS":       {},
}

// flagDenials enable arbitrary code execution or symbol re-export.
var flagDenials = []string{
	"-reexport",
	"-sub_library",
	"-sub_umbrella",
	"-dyld_env",
	"-dylinker",
	"-fplugin",
	"-fpass-plugin",
	"-xclang -load",
	"-xfrontend -load",
	"-load-plugin-library",
	"-load-plugin-executable",
	"-load ",
}

// searchPathPolicy lets search paths reference one level above the project.
var searchPathPolicy = PathPolicy{AllowParentEscape: true}

// IsSensitiveSetting reports whether key influences compilation, linking or
// search paths. Conditional suffixes are ignored.
func IsSensitiveSetting(key string) bool {
	base := baseSettingKey(key)
	_, flag := flagSettings[base]
	_, search := pathSettings[base]
	return flag || search
}

// ValidateBuildSetting reports whether value may be assigned to key.
func ValidateBuildSetting(key, value string) bool {
	if !settingKey.MatchString(key) || len(key) > MaxInputLength {
		return false
	}
	if len(value) > MaxInputLength || strings.ContainsRune(value, 0) || strings.ContainsAny(value, "\r\n") {
		return false
	}

	base := baseSettingKey(key)
	_, isFlag := flagSettings[base]
	_, isPath := pathSettings[base]
	if !isFlag && !isPath {
		return true
	}

	scan := buildVariableRef.ReplaceAllString(value, "")
	if containsShellDanger(scan, false) {
		return false
	}
	lower := strings.ToLower(scan) + " "
	for _, denial := range flagDenials {
		if strings.Contains(lower, denial) {
			return false
		}
	}

	if isPath {
		for _, component := range strings.Fields(value) {
			component = strings.Trim(component, `"'`)
			if component == "" || component == "$(inherited)" || component == "${inherited}" {
				continue
			}
			if _, ok := searchPathPolicy.SanitizePath(component); !ok {
				return false
			}
		}
	}

	return true
}

func baseSettingKey(key string) string {
	if idx := strings.IndexByte(key, '['); idx >= 0 {
		key = key[:idx]
	}
	return strings.ToUpper(key)
}
