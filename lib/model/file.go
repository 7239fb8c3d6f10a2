package model

// File is a single-use value for one (commit, path) evaluation. Contents
// and Additions are filled during processing and are only meaningful after
// it completes.
//
// Exists == false means the file does not exist at the queried revision,
// which is different from existing with empty contents.
type File struct {
	Project *Project
	Path    string
	Skill   string

	Exists   bool
	Contents string

	Additions int
	Blame     *Blame
}

func NewFile(proj *Project, path string, skill string) *File {
	return &File{
		Project: proj,
		Path:    path,
		Skill:   skill,
		Blame:   NewBlame(),
	}
}

func (f *File) SetContents(contents string) {
	f.Exists = true
	f.Contents = contents
}
