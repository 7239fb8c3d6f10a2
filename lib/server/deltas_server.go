package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/model"
)

type DeltasParams struct {
	GridParams
	FilterMonth string `form:"month"`
	FilterSkill string `form:"skill"`
	FilterPath  string `form:"path"`
}

func (s *server) initDeltas(r *gin.Engine) {
	r.GET("/api/deltas", getP[DeltasParams](s.deltasList))
	r.GET("/api/stats/months", get(s.statsMonths))
}

func (s *server) deltasList(c *gin.Context, params *DeltasParams) (any, error) {
	deltas, err := s.ws.ListFileDeltas(params.FilterMonth)
	if err != nil {
		return nil, err
	}

	if params.FilterSkill != "" {
		deltas = lo.Filter(deltas, func(d *model.FileDelta, _ int) bool {
			return strings.EqualFold(d.Skill, params.FilterSkill)
		})
	}
	if params.FilterPath != "" {
		deltas = lo.Filter(deltas, func(d *model.FileDelta, _ int) bool {
			return strings.Contains(d.Path, params.FilterPath)
		})
	}

	err = s.sortDeltas(deltas, params.Sort, params.Asc)
	if err != nil {
		return nil, err
	}

	total := len(deltas)

	deltas = paginate(deltas, params.Offset, params.Limit)

	result := lo.Map(deltas, func(d *model.FileDelta, _ int) gin.H {
		return s.toDelta(d)
	})

	return gin.H{
		"data":  result,
		"total": total,
	}, nil
}

func (s *server) sortDeltas(col []*model.FileDelta, field string, asc *bool) error {
	if field == "" {
		field = "month"
	}
	if asc == nil {
		asc = lo.ToPtr(true)
	}

	switch field {
	case "month":
		sortBy(col, func(d *model.FileDelta) string { return d.Month }, *asc)
	case "path":
		sortBy(col, func(d *model.FileDelta) string { return d.Path }, *asc)
	case "skill":
		sortBy(col, func(d *model.FileDelta) string { return d.Skill }, *asc)
	case "additions":
		sortBy(col, func(d *model.FileDelta) int { return d.Additions }, *asc)
	default:
		return fmt.Errorf("unknown sort field: %v", field)
	}

	return nil
}

func (s *server) toDelta(d *model.FileDelta) gin.H {
	return gin.H{
		"id":        d.ID,
		"month":     d.Month,
		"projectID": d.ProjectID,
		"commit":    d.CommitHash,
		"path":      d.Path,
		"skill":     d.Skill,
		"additions": d.Additions,
		"blame":     toBlame(d.Blame),
		"ignored":   d.Ignore,
	}
}

func (s *server) statsMonths() (any, error) {
	totals, err := s.ws.QueryMonthlyTotals()
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string]gin.H)
	for _, t := range totals {
		month, ok := result[t.Month]
		if !ok {
			month = make(map[string]gin.H)
			result[t.Month] = month
		}

		month[t.Skill] = gin.H{
			"files":     t.Files,
			"additions": t.Additions,
		}
	}

	return result, nil
}
