package ignore_rules

import (
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/consoles"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/storages"
	"github.com/pescuma/tally/lib/storages/orm"
)

func TestIgnoreRules(t *testing.T) {
	testgroup.RunInParallel(t, &IgnoreRulesTests{})
}

type IgnoreRulesTests struct {
}

func newTestStorage(t *testgroup.T) storages.Storage {
	storage, err := orm.NewGormStorage(orm.WithSqliteInMemory(), consoles.NewStdOutConsole())
	t.NoError(err)
	t.T.Cleanup(func() { _ = storage.Close() })
	return storage
}

func newTestRules(t *testgroup.T, storage storages.Storage) *IgnoreRules {
	rules, err := New(consoles.NewStdOutConsole(), storage)
	t.NoError(err)
	return rules
}

func (g *IgnoreRulesTests) StartsEmpty(t *testgroup.T) {
	rules := newTestRules(t, newTestStorage(t))

	t.False(rules.IgnoreFile("lib/app.go"))
	t.False(rules.IgnoreSkill("Go"))
}

func (g *IgnoreRulesTests) SupportFilesAreAlwaysIgnored(t *testgroup.T) {
	rules := newTestRules(t, newTestStorage(t))

	t.True(rules.IgnoreFile("vendor/lib/a.go"))
	t.True(rules.IgnoreFile(".gitlab-ci.yml"))
}

func (g *IgnoreRulesTests) FileRulesUseGitignoreSyntax(t *testgroup.T) {
	rules := newTestRules(t, newTestStorage(t))

	t.NoError(rules.AddFileRule("generated/**"))
	t.NoError(rules.AddFileRule("*.pb.go"))

	t.True(rules.IgnoreFile("generated/api.go"))
	t.True(rules.IgnoreFile("lib/api.pb.go"))
	t.False(rules.IgnoreFile("lib/api.go"))
}

func (g *IgnoreRulesTests) SkillRulesAreCaseInsensitive(t *testgroup.T) {
	rules := newTestRules(t, newTestStorage(t))

	t.NoError(rules.AddSkillRule("Markdown"))

	t.True(rules.IgnoreSkill("markdown"))
	t.True(rules.IgnoreSkill("Markdown"))
	t.False(rules.IgnoreSkill("Go"))
}

func (g *IgnoreRulesTests) DuplicatedRulesAreNotStoredTwice(t *testgroup.T) {
	storage := newTestStorage(t)
	rules := newTestRules(t, storage)

	t.NoError(rules.AddFileRule("generated/**"))
	t.NoError(rules.AddFileRule("generated/**"))

	stored, err := storage.LoadIgnoreRules()
	t.NoError(err)
	t.Len(stored.ListRules(), 1)
}

func (g *IgnoreRulesTests) RulesSurviveReload(t *testgroup.T) {
	storage := newTestStorage(t)

	rules := newTestRules(t, storage)
	t.NoError(rules.AddFileRule("generated/**"))
	t.NoError(rules.AddSkillRule("Markdown"))

	reloaded := newTestRules(t, storage)
	t.True(reloaded.IgnoreFile("generated/api.go"))
	t.True(reloaded.IgnoreSkill("markdown"))
}

func (g *IgnoreRulesTests) NewRulesAreAppliedToStoredDeltas(t *testgroup.T) {
	storage := newTestStorage(t)

	d1 := model.NewFileDelta("2024-05", 42, "abc123", "lib/app.go")
	d1.Skill = "Go"
	d2 := model.NewFileDelta("2024-05", 42, "abc123", "generated/api.go")
	d2.Skill = "Go"
	t.NoError(storage.WriteFileDeltas([]*model.FileDelta{d1, d2}))

	rules := newTestRules(t, storage)
	t.NoError(rules.AddFileRule("generated/**"))

	deltas, err := storage.LoadFileDeltas()
	t.NoError(err)

	byPath := lo.Associate(deltas, func(d *model.FileDelta) (string, *model.FileDelta) {
		return d.Path, d
	})
	t.False(byPath["lib/app.go"].Ignore)
	t.True(byPath["generated/api.go"].Ignore)
}
