package core

import "regexp"

// CommitClass is the commit-message category assigned by Classify (§4.4).
type CommitClass string

const (
	ClassSecurity CommitClass = "security"
	ClassHotfix   CommitClass = "hotfix"
	ClassFeature  CommitClass = "feature"
	ClassPerf     CommitClass = "perf"
	ClassBugfix   CommitClass = "bugfix"
	ClassRefactor CommitClass = "refactor"
	ClassDoc      CommitClass = "doc"
	ClassOther    CommitClass = "other"
)

// classRule pairs a class with the whole-word keyword pattern that triggers
// it. Order matters: the first rule whose pattern matches wins. Patterns are
// case-insensitive and anchored on word boundaries so "new" doesn't fire on
// "renew" and "fix" doesn't fire on "prefix"/"suffix".
type classRule struct {
	class   CommitClass
	pattern *regexp.Regexp
}

var classRules = []classRule{
	{ClassSecurity, regexp.MustCompile(`(?i)\b(security|cve|vuln|exploit|attack|breach|xss|csrf|injection|overflow|privilege)\b`)},
	{ClassHotfix, regexp.MustCompile(`(?i)\b(hotfix|urgent|critical|emergency)\b`)},
	{ClassFeature, regexp.MustCompile(`(?i)\b(feature|add|new|implement|introduce|support|enable|enhance)\b`)},
	{ClassPerf, regexp.MustCompile(`(?i)\b(perf|performance|optimiz|faster|speed|cache|memory|cpu|latency)\b`)},
	{ClassBugfix, regexp.MustCompile(`(?i)\b(fix|bug|issue|problem|error|correct|resolve|address)\b`)},
	{ClassRefactor, regexp.MustCompile(`(?i)\b(refactor|restructure|reorganize|cleanup|simplify|extract|rename)\b`)},
	{ClassDoc, regexp.MustCompile(`(?i)\b(doc|documentation|readme|comment|manual|guide|tutorial)\b`)},
}

// hotfixPhraseRe matches "fix ... critical" or "critical ... fix" anywhere in
// the subject, mirroring the reference classifier's bidirectional phrase rule.
var hotfixPhraseRe = regexp.MustCompile(`(?i)\b(fix.*critical|critical.*fix)\b`)

// classPriority is the §4.4 multiplier table.
var classPriority = map[CommitClass]float64{
	ClassSecurity: 1.20,
	ClassHotfix:   1.15,
	ClassFeature:  1.10,
	ClassPerf:     1.05,
	ClassBugfix:   1.00,
	ClassRefactor: 0.90,
	ClassOther:    0.80,
	ClassDoc:      0.60,
}

// Classify assigns a commit message to exactly one class, first-match-wins
// in the §4.4 priority order. A hotfix phrase of the shape "fix ... critical"
// also counts as a hotfix even without the word "hotfix"/"urgent"/"emergency"
// present on its own.
func Classify(subject string) CommitClass {
	if classRules[0].pattern.MatchString(subject) {
		return ClassSecurity
	}
	if classRules[1].pattern.MatchString(subject) || hotfixPhraseRe.MatchString(subject) {
		return ClassHotfix
	}
	for _, rule := range classRules[2:] {
		if rule.pattern.MatchString(subject) {
			return rule.class
		}
	}
	return ClassOther
}

// ClassPriorityMultiplier returns the §4.4 multiplier for a class.
func ClassPriorityMultiplier(c CommitClass) float64 {
	return classPriority[c]
}
