package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func summary(id uint, prereq ...uint) CourseSummary {
	if prereq == nil {
		prereq = []uint{}
	}
	return CourseSummary{ID: id, SortOrder: int(id), PrerequisiteIDs: prereq}
}

func ids(list []CourseSummary) []uint {
	out := make([]uint, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestPrerequisitesSatisfied(t *testing.T) {
	tests := []struct {
		name      string
		prereq    []uint
		completed []uint
		want      bool
	}{
		{"no prerequisites", nil, nil, true},
		{"all completed", []uint{1, 2}, []uint{1, 2, 3}, true},
		{"one missing", []uint{1, 2}, []uint{1}, false},
		{"nothing completed", []uint{1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrerequisitesSatisfied(tt.prereq, idSet(tt.completed)))
		})
	}
}

func TestResolveAvailability(t *testing.T) {
	// A(1) <- B(2) <- C(3), D(4) 无前置, E(5) 与 F(6) 互为前置
	catalog := []CourseSummary{
		summary(1),
		summary(2, 1),
		summary(3, 2),
		summary(4),
		summary(5, 6),
		summary(6, 5),
	}

	tests := []struct {
		name          string
		completed     []uint
		wantAvailable []uint
		wantLocked    []uint
	}{
		{"fresh learner", nil, []uint{1, 4}, []uint{2, 3, 5, 6}},
		{"completed A unlocks only B", []uint{1}, []uint{1, 2, 4}, []uint{3, 5, 6}},
		{"not transitive", []uint{2}, []uint{1, 3, 4}, []uint{2, 5, 6}},
		{"cycle opened from outside", []uint{5}, []uint{1, 4, 6}, []uint{2, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := ResolveAvailability(catalog, idSet(tt.completed))
			assert.Equal(t, tt.wantAvailable, ids(listing.Available))
			assert.Equal(t, tt.wantLocked, ids(listing.Locked))
			assert.Len(t, append(listing.Available, listing.Locked...), len(catalog))
		})
	}
}

func TestResolveAvailability_EmptyCatalog(t *testing.T) {
	listing := ResolveAvailability(nil, nil)
	assert.NotNil(t, listing.Available)
	assert.NotNil(t, listing.Locked)
	assert.Empty(t, listing.Available)
	assert.Empty(t, listing.Locked)
}
