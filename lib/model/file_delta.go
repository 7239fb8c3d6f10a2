package model

// FileDelta is the persisted result of attributing one file in one commit:
// the net number of lines the file gained (positive) or lost (negative).
type FileDelta struct {
	ID UUID

	Month      string
	ProjectID  int
	CommitHash string
	Path       string
	Skill      string

	Additions int
	Blame     *Blame

	Ignore bool
}

func NewFileDelta(month string, projectID int, commitHash string, path string) *FileDelta {
	return &FileDelta{
		ID:         NewUUID("d"),
		Month:      month,
		ProjectID:  projectID,
		CommitHash: commitHash,
		Path:       path,
		Blame:      NewBlame(),
	}
}
