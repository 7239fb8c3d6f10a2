package model

import (
	"time"
)

type Commit struct {
	Project  *Project
	Revision string
	Parents  []string

	Date       time.Time
	AuthorName string
	Title      string
}

func NewCommit(proj *Project, revision string) *Commit {
	return &Commit{
		Project:  proj,
		Revision: revision,
	}
}

func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsInitial means the commit has no parent to diff against: everything
// in it counts as added.
func (c *Commit) IsInitial() bool {
	return len(c.Parents) == 0
}
