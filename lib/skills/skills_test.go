package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSkillKnownLanguages(t *testing.T) {
	t.Parallel()

	skill, ok := GetSkill("lib/model/file.go")
	assert.True(t, ok)
	assert.Equal(t, "Go", skill)

	skill, ok = GetSkill("app/main.kt")
	assert.True(t, ok)
	assert.Equal(t, "Kotlin", skill)

	skill, ok = GetSkill("scripts/run.py")
	assert.True(t, ok)
	assert.Equal(t, "Python", skill)
}

func TestGetSkillUnknown(t *testing.T) {
	t.Parallel()

	_, ok := GetSkill("assets/logo.png")
	assert.False(t, ok)

	_, ok = GetSkill("LICENSE-APACHE")
	assert.False(t, ok)
}

func TestIsSupportFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSupportFile("vendor/github.com/pkg/errors/errors.go"))
	assert.True(t, IsSupportFile("node_modules/react/index.js"))
	assert.True(t, IsSupportFile(".gitlab-ci.yml"))
	assert.False(t, IsSupportFile("lib/model/file.go"))
}
