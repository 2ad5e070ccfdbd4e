package uigroup

import (
	"slices"
	"strings"
	"sync"
)

// Member is anything a group can list. Generator types satisfy it.
type Member interface {
	DisplayName() string
}

// Group is a named, ordered category of generators.
type Group struct {
	Name        string
	Title       string
	Description string

	image   string
	mu      sync.RWMutex
	members []Member
}

// newGroup builds a group. An empty title falls back to name.
func newGroup(name, title, description, image string) *Group {
	if title == "" {
		title = name
	}
	return &Group{
		Name:        name,
		Title:       title,
		Description: description,
		image:       image,
	}
}

// Add appends m and re-sorts the membership by display name. Adding the
// same member twice lists it twice; callers that need uniqueness dedupe.
func (g *Group) Add(m Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = append(g.members, m)
	slices.SortStableFunc(g.members, func(a, b Member) int {
		return strings.Compare(a.DisplayName(), b.DisplayName())
	})
}

// Generators returns a copy of the sorted membership.
func (g *Group) Generators() []Member {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.members)
}

// Len returns the number of members.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members)
}

// Image returns "<image>.jpg", or "" when the group has no image.
func (g *Group) Image() string {
	if g.image == "" {
		return ""
	}
	return g.image + ".jpg"
}

// Thumbnail returns "<image>-thumb.jpg", or "" when the group has no image.
func (g *Group) Thumbnail() string {
	if g.image == "" {
		return ""
	}
	return g.image + "-thumb.jpg"
}
