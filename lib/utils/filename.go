package utils

import (
	"github.com/aquilax/truncate"
)

const maxFilenameLen = 50

// TruncateFilename shortens a path for display in progress bars, keeping
// the end, which is the interesting part.
func TruncateFilename(path string) string {
	if len(path) <= maxFilenameLen {
		return path
	}

	return truncate.Truncate(path, maxFilenameLen, "...", truncate.PositionStart)
}
