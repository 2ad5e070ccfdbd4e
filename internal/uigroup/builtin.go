package uigroup

// Definition is the static description of a built-in group.
type Definition struct {
	Name        string
	Title       string
	Description string
	Image       string
}

var builtinGroups = []Definition{
	{"Box", "Boxes", "Standard boxes for a variety of uses.", "UniversalBox"},
	{"FlexBox", "Boxes with flex", "Boxes that include flexible parts.", "RoundedBox"},
	{"Tray", "Trays and Drawer Inserts", "Trays designed to be used standalone or as inserts.", "TypeTray"},
	{"Shelf", "Shelves", "A variety of shelves for different uses.", "DisplayShelf"},
	{"WallMounted", "", "Wall mountable holders for tools and other items, with a variety of wall mounting options.", "WallTypeTray"},
	{"Holes", "Hole patterns", "Hole Patterns to be used as part of a project.", "SevenSegmentPattern"},
	{"Part", "Parts and Samples", "Individual Parts and Samples.", "BurnTest"},
	{"Misc", "", "Boxes that do not fit into other categories.", "TrafficLight"},
	{"Unstable", "", "Generators are still untested or need manual adjustment to be useful.", "Silverware"},
}

// BuiltinGroups returns the fixed, ordered list of groups every registry
// starts with.
func BuiltinGroups() []Definition {
	out := make([]Definition, len(builtinGroups))
	copy(out, builtinGroups)
	return out
}
