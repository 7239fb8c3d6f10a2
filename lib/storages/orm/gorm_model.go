package orm

import (
	"time"

	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/utils"
)

type sqlTable interface {
	CacheKey() string
}

type sqlConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlConfig(k string, v string) *sqlConfig {
	return &sqlConfig{
		Key:   k,
		Value: v,
	}
}

func (s *sqlConfig) CacheKey() string {
	return s.Key
}

type sqlIgnoreRule struct {
	ID      model.ID `gorm:"primaryKey"`
	Type    model.IgnoreRuleType
	Rule    string
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time
}

func newSqlIgnoreRule(r *model.IgnoreRule) *sqlIgnoreRule {
	return &sqlIgnoreRule{
		ID:        r.ID,
		Type:      r.Type,
		Rule:      r.Rule,
		Deleted:   r.Deleted,
		DeletedAt: r.DeletedAt,
	}
}

func (s *sqlIgnoreRule) ToModel() *model.IgnoreRule {
	return &model.IgnoreRule{
		ID:        s.ID,
		Type:      s.Type,
		Rule:      s.Rule,
		Deleted:   s.Deleted,
		DeletedAt: s.DeletedAt,
	}
}

func (s *sqlIgnoreRule) CacheKey() string {
	return s.ID.String()
}

type sqlFileDelta struct {
	ID model.UUID `gorm:"primaryKey"`

	Month      string `gorm:"index"`
	ProjectID  int    `gorm:"index"`
	CommitHash string `gorm:"index"`
	Path       string
	Skill      string

	Additions int
	Blame     *sqlBlame `gorm:"embedded;embeddedPrefix:blame_"`

	Ignore bool `gorm:"column:ignored"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlFileDelta(d *model.FileDelta) *sqlFileDelta {
	return &sqlFileDelta{
		ID:         d.ID,
		Month:      d.Month,
		ProjectID:  d.ProjectID,
		CommitHash: d.CommitHash,
		Path:       d.Path,
		Skill:      d.Skill,
		Additions:  d.Additions,
		Blame:      toSqlBlame(d.Blame),
		Ignore:     d.Ignore,
	}
}

func (s *sqlFileDelta) ToModel() *model.FileDelta {
	return &model.FileDelta{
		ID:         s.ID,
		Month:      s.Month,
		ProjectID:  s.ProjectID,
		CommitHash: s.CommitHash,
		Path:       s.Path,
		Skill:      s.Skill,
		Additions:  s.Additions,
		Blame:      s.Blame.ToModel(),
		Ignore:     s.Ignore,
	}
}

func (s *sqlFileDelta) CacheKey() string {
	return string(s.ID)
}

type sqlBlame struct {
	Code    *int
	Comment *int
	Blank   *int
}

func toSqlBlame(b *model.Blame) *sqlBlame {
	if b == nil {
		return &sqlBlame{}
	}

	return &sqlBlame{
		Code:    encodeMetric(b.Code),
		Comment: encodeMetric(b.Comment),
		Blank:   encodeMetric(b.Blank),
	}
}

func (s *sqlBlame) ToModel() *model.Blame {
	if s == nil {
		return model.NewBlame()
	}

	return &model.Blame{
		Code:    decodeMetric(s.Code),
		Comment: decodeMetric(s.Comment),
		Blank:   decodeMetric(s.Blank),
	}
}

func encodeMetric(v int) *int {
	return utils.IIf(v == -1, nil, &v)
}

func decodeMetric(v *int) int {
	if v == nil {
		return -1
	} else {
		return *v
	}
}
