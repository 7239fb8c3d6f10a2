package model

// Project is the remote project a commit or file belongs to. It is built
// from the server metadata once and shared read-only after that.
type Project struct {
	ID          int
	Name        string
	Namespace   string
	Path        string
	Description string
	Tags        []string
}

func NewProject(id int, name string) *Project {
	return &Project{
		ID:   id,
		Name: name,
	}
}

func (p *Project) FullPath() string {
	if p.Namespace == "" {
		return p.Path
	}

	return p.Namespace + "/" + p.Path
}
