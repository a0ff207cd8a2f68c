package manifest

import (
	"path"
	"strings"
)

type fileKind struct {
	fileType string
	phase    string // empty: not part of any build phase
}

var kindsByExt = map[string]fileKind{
	".swift":        {"sourcecode.swift", PhaseSources},
	".m":            {"sourcecode.c.objc", PhaseSources},
	".mm":           {"sourcecode.cpp.objcpp", PhaseSources},
	".c":            {"sourcecode.c.c", PhaseSources},
	".cpp":          {"sourcecode.cpp.cpp", PhaseSources},
	".metal":        {"sourcecode.metal", PhaseSources},
	".xcdatamodeld": {"wrapper.xcdatamodel", PhaseSources},
	".h":            {"sourcecode.c.h", ""},
	".hpp":          {"sourcecode.cpp.h", ""},
	".plist":        {"text.plist.xml", ""},
	".xcconfig":     {"text.xcconfig", ""},
	".entitlements": {"text.plist.entitlements", ""},
	".md":           {"net.daringfireball.markdown", ""},
	".storyboard":   {"file.storyboard", PhaseResources},
	".xib":          {"file.xib", PhaseResources},
	".xcassets":     {"folder.assetcatalog", PhaseResources},
	".strings":      {"text.plist.strings", PhaseResources},
	".json":         {"text.json", PhaseResources},
	".png":          {"image.png", PhaseResources},
	".jpg":          {"image.jpeg", PhaseResources},
	".pdf":          {"image.pdf", PhaseResources},
	".ttf":          {"file", PhaseResources},
	".framework":    {"wrapper.framework", PhaseFrameworks},
	".xcframework":  {"wrapper.xcframework", PhaseFrameworks},
	".a":            {"archive.ar", PhaseFrameworks},
	".dylib":        {"compiled.mach-o.dylib", PhaseFrameworks},
}

func inferKind(name string) fileKind {
	if k, ok := kindsByExt[strings.ToLower(path.Ext(name))]; ok {
		return k
	}
	return fileKind{fileType: "file"}
}

// FileType returns the inferred file type for a file name.
func FileType(name string) string {
	return inferKind(name).fileType
}

// PhaseFor returns the build phase kind a file joins when added to a
// target, or "" when it joins none.
func PhaseFor(name string) string {
	return inferKind(name).phase
}
