package model

type IgnoreRules struct {
	maxID ID

	rules []*IgnoreRule
}

func NewIgnoreRules() *IgnoreRules {
	return &IgnoreRules{}
}

func (i *IgnoreRules) ListRules() []*IgnoreRule {
	return i.rules
}

func (i *IgnoreRules) AddFromStorage(rule *IgnoreRule) {
	if rule.ID > i.maxID {
		i.maxID = rule.ID
	}

	i.rules = append(i.rules, rule)
}

func (i *IgnoreRules) AddFileRule(rule string) *IgnoreRule {
	return i.add(FileRule, rule)
}

func (i *IgnoreRules) AddSkillRule(rule string) *IgnoreRule {
	return i.add(SkillRule, rule)
}

func (i *IgnoreRules) add(t IgnoreRuleType, rule string) *IgnoreRule {
	i.maxID++

	result := &IgnoreRule{
		ID:   i.maxID,
		Type: t,
		Rule: rule,
	}
	i.rules = append(i.rules, result)

	return result
}
