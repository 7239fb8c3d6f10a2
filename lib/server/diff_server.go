package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pescuma/tally/lib/attribution"
	"github.com/pescuma/tally/lib/model"
)

type DiffParams struct {
	Project string `form:"project" binding:"required"`
	Commit  string `form:"commit" binding:"required"`
	Path    string `form:"path" binding:"required"`
	Change  string `form:"change"`
}

func (s *server) initDiff(r *gin.Engine) {
	r.GET("/api/diff", getP[DiffParams](s.diffFile))
}

func (s *server) diffFile(c *gin.Context, params *DiffParams) (any, error) {
	change := model.FileModified
	if params.Change != "" {
		var err error
		change, err = model.ParseFileChangeType(params.Change)
		if err != nil {
			return nil, &httpError{http.StatusBadRequest, gin.H{"error": err.Error()}}
		}
	}

	file, err := s.ws.DiffFile(c.Request.Context(), params.Project, params.Commit, params.Path, change)
	if err != nil {
		if isRejection(err) {
			return nil, &httpError{http.StatusUnprocessableEntity, gin.H{"rejected": err.Error()}}
		}

		return nil, err
	}

	return gin.H{
		"project":   file.Project.Name,
		"path":      file.Path,
		"skill":     file.Skill,
		"additions": file.Additions,
		"blame":     toBlame(file.Blame),
	}, nil
}

func isRejection(err error) bool {
	return errors.Is(err, attribution.ErrInvalidFile) ||
		errors.Is(err, attribution.ErrMergeCommit) ||
		errors.Is(err, attribution.ErrOutOfWindow) ||
		errors.Is(err, attribution.ErrCommitDataUnavailable)
}
