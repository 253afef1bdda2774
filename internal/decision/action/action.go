// Package action defines the closed, versioned catalogs that map a policy's
// integer action ids to UI interventions. A catalog is bound to the trained
// policy it was designed for and never grows at runtime: action-id semantics
// are policy-specific, so ids outside the catalog indicate a broken
// deployment, not recoverable input.
package action

import "sort"

// UIChange is one instruction to the frontend: alter the named presentation
// setting to the given value.
type UIChange struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Descriptor is one catalog entry.
type Descriptor struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UIChanges   []UIChange `json:"ui_changes"`
}

// Catalog is an immutable id -> Descriptor table.
type Catalog struct {
	name string
	byID map[int]Descriptor
	ids  []int
}

func newCatalog(name string, entries []Descriptor) *Catalog {
	c := &Catalog{name: name, byID: make(map[int]Descriptor, len(entries))}
	for _, d := range entries {
		if _, dup := c.byID[d.ID]; dup {
			panic("action: duplicate id in catalog " + name)
		}
		c.byID[d.ID] = d
		c.ids = append(c.ids, d.ID)
	}
	sort.Ints(c.ids)
	return c
}

// Name identifies the catalog ("generic" or "math").
func (c *Catalog) Name() string { return c.name }

// Size is the number of actions in the policy's action space.
func (c *Catalog) Size() int { return len(c.ids) }

// Get looks up a descriptor by id.
func (c *Catalog) Get(id int) (Descriptor, error) {
	d, ok := c.byID[id]
	if !ok {
		return Descriptor{}, &UnknownActionError{ID: id, Catalog: c.name}
	}
	return d, nil
}

// List returns all descriptors ordered by id.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Math catalog ids referenced by the struggle detector.
const (
	MathMaintain       = 0
	MathActivateTTS    = 2
	MathInsertBreak    = 3
	MathShowVisualAid  = 4
	MathSuggestHint    = 6
	MathShowStepByStep = 7
)

var generic = newCatalog("generic", []Descriptor{
	{ID: 0, Name: "maintain", Description: "Continue with current settings", UIChanges: []UIChange{}},
	{ID: 1, Name: "increase_text_size", Description: "Increase font size and line spacing for dyslexia support", UIChanges: []UIChange{
		{Type: "font_size", Value: 20},
		{Type: "line_height", Value: 2.0},
		{Type: "letter_spacing", Value: "0.12em"},
	}},
	{ID: 2, Name: "activate_tts", Description: "Enable text-to-speech for reading assistance", UIChanges: []UIChange{
		{Type: "tts_enabled", Value: true},
		{Type: "highlight_current_word", Value: true},
	}},
	{ID: 3, Name: "insert_break", Description: "Suggest 2-minute attention break for ADHD management", UIChanges: []UIChange{
		{Type: "show_break_modal", Value: true},
		{Type: "break_duration", Value: 120},
	}},
	{ID: 4, Name: "adjust_difficulty", Description: "Adapt content difficulty based on performance", UIChanges: []UIChange{
		{Type: "difficulty_adjustment", Value: "adaptive"},
		{Type: "show_difficulty_feedback", Value: true},
	}},
})

var math = newCatalog("math", []Descriptor{
	{ID: MathMaintain, Name: "maintain", Description: "Continue with current settings", UIChanges: []UIChange{}},
	{ID: 1, Name: "increase_text_size", Description: "Increase font size for problem statement", UIChanges: []UIChange{
		{Type: "font_size", Value: 20},
		{Type: "line_height", Value: 2.0},
	}},
	{ID: MathActivateTTS, Name: "activate_tts", Description: "Read problem aloud with text-to-speech", UIChanges: []UIChange{
		{Type: "tts_enabled", Value: true},
		{Type: "highlight_current_word", Value: true},
	}},
	{ID: MathInsertBreak, Name: "insert_break", Description: "Suggest 2-minute attention break", UIChanges: []UIChange{
		{Type: "show_break_modal", Value: true},
		{Type: "break_duration", Value: 120},
	}},
	{ID: MathShowVisualAid, Name: "show_visual_aid", Description: "Display visual diagram or illustration", UIChanges: []UIChange{
		{Type: "show_visual_aid", Value: true},
		{Type: "visual_type", Value: "diagram"},
	}},
	{ID: 5, Name: "enable_grid_snap", Description: "Enable grid snapping for cleaner drawings", UIChanges: []UIChange{
		{Type: "snap_to_grid", Value: true},
		{Type: "show_grid", Value: true},
	}},
	{ID: MathSuggestHint, Name: "suggest_hint", Description: "Offer a hint for the current problem", UIChanges: []UIChange{
		{Type: "show_hint_suggestion", Value: true},
		{Type: "hint_level", Value: 1},
	}},
	{ID: MathShowStepByStep, Name: "show_step_by_step", Description: "Display step-by-step solution guide", UIChanges: []UIChange{
		{Type: "show_steps", Value: true},
		{Type: "current_step", Value: 0},
	}},
})

// Generic returns the 5-action catalog the generic reading policy was
// trained against.
func Generic() *Catalog { return generic }

// Math returns the 8-action catalog of the math-specific policy.
func Math() *Catalog { return math }
