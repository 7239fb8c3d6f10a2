package skills

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// GetSkill classifies a path into the skill used to change it, which for
// now is the programming language detected from the file name. Paths that
// don't map to a known language have no skill and are not attributed.
func GetSkill(path string) (string, bool) {
	name := filepath.Base(path)

	lang, safe := enry.GetLanguageByExtension(name)
	if !safe {
		lang, safe = enry.GetLanguageByFilename(name)
	}
	if !safe || lang == "" {
		return "", false
	}

	return lang, true
}

// IsSupportFile flags paths that enry knows to be vendored, documentation
// or dot files. Those are skipped before any remote query happens.
func IsSupportFile(path string) bool {
	return enry.IsVendor(path) ||
		enry.IsDotFile(path) ||
		enry.IsDocumentation(path) ||
		enry.IsConfiguration(path)
}
