package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func consoleSections() []SectionBoundary {
	return []SectionBoundary{
		{ID: "dashboard", Top: 0},
		{ID: "subscribers", Top: 400},
		{ID: "subscriptions", Top: 900},
		{ID: "billing", Top: 1500},
	}
}

func TestActiveSectionAtTop(t *testing.T) {
	assert.Equal(t, "dashboard", ActiveSection(0, 0, consoleSections()))
}

func TestActiveSectionMidDocument(t *testing.T) {
	assert.Equal(t, "subscribers", ActiveSection(450, 0, consoleSections()))
	assert.Equal(t, "subscriptions", ActiveSection(900, 0, consoleSections()))
	assert.Equal(t, "billing", ActiveSection(5000, 0, consoleSections()))
}

func TestActiveSectionActivationMargin(t *testing.T) {
	// A margin makes a section activate slightly before its top edge
	// reaches the viewport top.
	assert.Equal(t, "subscribers", ActiveSection(360, 40, consoleSections()))
	assert.Equal(t, "dashboard", ActiveSection(360, 0, consoleSections()))
}

func TestActiveSectionAboveEverything(t *testing.T) {
	sections := []SectionBoundary{
		{ID: "subscribers", Top: 200},
		{ID: "billing", Top: 600},
	}
	assert.Equal(t, "subscribers", ActiveSection(0, 0, sections))
}

func TestActiveSectionNoSections(t *testing.T) {
	assert.Equal(t, "", ActiveSection(100, 0, nil))
}
