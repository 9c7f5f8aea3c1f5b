package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySecurityTakesPriority(t *testing.T) {
	assert.Equal(t, ClassSecurity, Classify("fix XSS vulnerability in login"))
}

func TestClassifyHotfixPhrase(t *testing.T) {
	assert.Equal(t, ClassHotfix, Classify("fix a critical regression in billing"))
}

func TestClassifyHotfixKeyword(t *testing.T) {
	assert.Equal(t, ClassHotfix, Classify("urgent patch for outage"))
}

func TestClassifyFeature(t *testing.T) {
	assert.Equal(t, ClassFeature, Classify("add support for dark mode"))
}

func TestClassifyPerf(t *testing.T) {
	assert.Equal(t, ClassPerf, Classify("optimize cache eviction for lower latency"))
}

func TestClassifyBugfix(t *testing.T) {
	assert.Equal(t, ClassBugfix, Classify("fix off-by-one error in pagination"))
}

func TestClassifyRefactor(t *testing.T) {
	assert.Equal(t, ClassRefactor, Classify("refactor handler registration"))
}

func TestClassifyDoc(t *testing.T) {
	assert.Equal(t, ClassDoc, Classify("update README with install guide"))
}

func TestClassifyOther(t *testing.T) {
	assert.Equal(t, ClassOther, Classify("bump dependency versions"))
}

func TestClassPriorityMultiplierTable(t *testing.T) {
	assert.Equal(t, 1.20, ClassPriorityMultiplier(ClassSecurity))
	assert.Equal(t, 0.60, ClassPriorityMultiplier(ClassDoc))
	assert.Equal(t, 0.80, ClassPriorityMultiplier(ClassOther))
}
