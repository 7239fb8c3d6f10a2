package ignore_rules

import (
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/consoles"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/skills"
	"github.com/pescuma/tally/lib/storages"
)

// IgnoreRules decides which paths are excluded from attribution. File rules
// use gitignore syntax, skill rules name languages to skip. Rules are
// persisted and re-applied to already stored deltas when they change.
type IgnoreRules struct {
	mutex sync.RWMutex

	console consoles.Console
	storage storages.Storage

	rules       *model.IgnoreRules
	fileMatcher *gitignore.GitIgnore
	skillRules  map[string]bool
}

func New(console consoles.Console, storage storages.Storage) (*IgnoreRules, error) {
	rules, err := storage.LoadIgnoreRules()
	if err != nil {
		return nil, err
	}

	result := &IgnoreRules{
		console: console,
		storage: storage,
		rules:   rules,
	}

	result.parseRules()

	return result, nil
}

func (i *IgnoreRules) AddFileRule(rule string) error {
	changed := i.addRule(model.FileRule, rule)
	if !changed {
		i.console.Printf("Ignoring duplicated rule: %v\n", rule)
		return nil
	}

	return i.applyToStoredDeltas()
}

func (i *IgnoreRules) AddSkillRule(rule string) error {
	changed := i.addRule(model.SkillRule, rule)
	if !changed {
		i.console.Printf("Ignoring duplicated rule: %v\n", rule)
		return nil
	}

	return i.applyToStoredDeltas()
}

func (i *IgnoreRules) addRule(t model.IgnoreRuleType, rule string) bool {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	for _, r := range i.rules.ListRules() {
		if r.Type == t && r.Rule == rule && !r.Deleted {
			return false
		}
	}

	switch t {
	case model.FileRule:
		i.rules.AddFileRule(rule)
	case model.SkillRule:
		i.rules.AddSkillRule(rule)
	}

	i.parseRules()
	return true
}

// IgnoreFile also skips vendored, documentation and dot paths, so a rule
// for those is never needed.
func (i *IgnoreRules) IgnoreFile(path string) bool {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	if skills.IsSupportFile(path) {
		return true
	}

	return i.fileMatcher != nil && i.fileMatcher.MatchesPath(path)
}

func (i *IgnoreRules) IgnoreSkill(skill string) bool {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return i.skillRules[strings.ToLower(skill)]
}

func (i *IgnoreRules) parseRules() {
	var lines []string
	skillRules := map[string]bool{}

	for _, r := range i.rules.ListRules() {
		if r.Deleted {
			continue
		}

		switch r.Type {
		case model.FileRule:
			lines = append(lines, r.Rule)
		case model.SkillRule:
			skillRules[strings.ToLower(r.Rule)] = true
		}
	}

	if len(lines) > 0 {
		i.fileMatcher = gitignore.CompileIgnoreLines(lines...)
	} else {
		i.fileMatcher = nil
	}
	i.skillRules = skillRules
}

func (i *IgnoreRules) applyToStoredDeltas() error {
	err := i.storage.WriteIgnoreRules()
	if err != nil {
		return err
	}

	deltas, err := i.storage.LoadFileDeltas()
	if err != nil {
		return err
	}

	i.console.Printf("Updating stored deltas with new ignore information...\n")

	changed := lo.Filter(deltas, func(d *model.FileDelta, _ int) bool {
		ignore := i.IgnoreFile(d.Path) || i.IgnoreSkill(d.Skill)
		if ignore == d.Ignore {
			return false
		}

		d.Ignore = ignore
		return true
	})

	return i.storage.WriteFileDeltas(changed)
}
