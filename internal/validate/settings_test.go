package validate

import "testing"

func TestValidateBuildSetting(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		ok    bool
	}{
		{"plain setting", "PRODUCT_NAME", "MyApp", true},
		{"non-sensitive allows punctuation", "INFOPLIST_KEY_NSHumanReadableCopyright", "(c) 2025; All rights", true},
		{"empty value clears", "OTHER_LDFLAGS", "", true},
		{"conditional key", "OTHER_LDFLAGS[sdk=iphoneos*]", "-ObjC", true},
		{"invalid key", "BAD KEY", "x", false},
		{"key injection", "KEY;rm", "x", false},
		{"inherited linker flags", "OTHER_LDFLAGS", "$(inherited) -ObjC -framework UIKit", true},
		{"force load", "OTHER_LDFLAGS", "-force_load $(BUILT_PRODUCTS_DIR)/libFoo.a", true},
		{"reexport", "OTHER_LDFLAGS", "-Wl,-reexport_library,/usr/lib/libz.dylib", false},
		{"dyld env", "OTHER_LDFLAGS", "-dyld_env DYLD_INSERT_LIBRARIES=x", false},
		{"compiler plugin", "OTHER_CFLAGS", "-fplugin=/tmp/evil.so", false},
		{"clang load", "OTHER_CFLAGS", "-Xclang -load -Xclang evil.dylib", false},
		{"swift plugin", "OTHER_SWIFT_FLAGS", "-load-plugin-library evil.dylib", false},
		{"swift conditions", "SWIFT_ACTIVE_COMPILATION_CONDITIONS", "DEBUG $(inherited)", true},
		{"command substitution", "OTHER_CFLAGS", "$(shell rm -rf /)", false},
		{"backticks", "GCC_PREPROCESSOR_DEFINITIONS", "FOO=`id`", false},
		{"newline", "PRODUCT_NAME", "a\nb", false},
		{"search paths", "HEADER_SEARCH_PATHS", "$(inherited) \"$(SRCROOT)/Vendor/include\" $(SRCROOT)/../Shared/**", true},
		{"runpaths", "LD_RUNPATH_SEARCH_PATHS", "$(inherited) @executable_path/Frameworks @loader_path/../Frameworks", true},
		{"single parent escape", "FRAMEWORK_SEARCH_PATHS", "../Shared/Frameworks", true},
		{"double parent escape", "FRAMEWORK_SEARCH_PATHS", "../../Frameworks", false},
		{"system dir search path", "LIBRARY_SEARCH_PATHS", "/etc/libs", false},
		{"conditional search path", "LIBRARY_SEARCH_PATHS[arch=arm64]", "$(SRCROOT)/lib/arm64", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateBuildSetting(tt.key, tt.value); got != tt.ok {
				t.Errorf("ValidateBuildSetting(%q, %q) = %v, want %v", tt.key, tt.value, got, tt.ok)
			}
		})
	}
}

func TestIsSensitiveSetting(t *testing.T) {
	if !IsSensitiveSetting("other_ldflags[sdk=macosx*]") {
		t.Error("expected OTHER_LDFLAGS to be sensitive regardless of case and condition")
	}
	if IsSensitiveSetting("PRODUCT_NAME") {
		t.Error("PRODUCT_NAME should not be sensitive")
	}
}
