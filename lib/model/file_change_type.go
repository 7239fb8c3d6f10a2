package model

import (
	"github.com/pkg/errors"
)

// FileChangeType is the caller's claim about what happened to a file in a
// commit. It is a hint: the attribution engine reconciles it against the
// contents actually found at the commit and its parent.
type FileChangeType int

const (
	FileChangeUnknown FileChangeType = -1
	FileModified      FileChangeType = iota
	FileRenamed
	FileCreated
	FileDeleted
)

func (t FileChangeType) String() string {
	switch t {
	case FileModified:
		return "modified"
	case FileRenamed:
		return "renamed"
	case FileCreated:
		return "created"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

func ParseFileChangeType(s string) (FileChangeType, error) {
	switch s {
	case "modified", "modification":
		return FileModified, nil
	case "renamed", "rename":
		return FileRenamed, nil
	case "created", "addition", "added":
		return FileCreated, nil
	case "deleted", "removal", "removed":
		return FileDeleted, nil
	default:
		return FileChangeUnknown, errors.Errorf("unknown change type: %v", s)
	}
}
