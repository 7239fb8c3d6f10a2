package storages

import (
	"github.com/pescuma/tally/lib/model"
)

type Storage interface {
	LoadConfig() (*map[string]string, error)
	WriteConfig(*map[string]string) error

	LoadIgnoreRules() (*model.IgnoreRules, error)
	WriteIgnoreRules() error

	LoadFileDeltas() ([]*model.FileDelta, error)
	WriteFileDeltas(deltas []*model.FileDelta) error

	QueryMonthlyTotals() ([]*MonthlyTotal, error)

	Close() error
}

type Factory = func(path string) (Storage, error)

type MonthlyTotal struct {
	Month     string
	Skill     string
	Files     int
	Additions int
}
