package menu

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidMenu is returned when a menu definition fails validation.
var ErrInvalidMenu = errors.New("invalid menu")

var validate = validator.New()

// Item is a selectable dish.
type Item struct {
	Label       string          `json:"label" yaml:"label" mapstructure:"label" validate:"required"`
	Description string          `json:"description" yaml:"description" mapstructure:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" yaml:"price" mapstructure:"price"`
	Info        string          `json:"info,omitempty" yaml:"info,omitempty" mapstructure:"info"`
}

// Definition is the raw, unvalidated shape of a menu.
type Definition struct {
	Locale   string   `json:"locale" yaml:"locale" mapstructure:"locale" validate:"required"`
	Items    []Item   `json:"items" yaml:"items" mapstructure:"items" validate:"required,min=1,dive"`
	Commands Commands `json:"commands" yaml:"commands" mapstructure:"commands"`
	Strings  Strings  `json:"strings" yaml:"strings" mapstructure:"strings"`
}

// Menu is a validated, immutable menu.
type Menu struct {
	def      Definition
	byLabel  map[string]int
	matchers []matcher
}

// New validates def and builds a Menu from it.
func New(def Definition) (*Menu, error) {
	if err := validate.Struct(def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMenu, err)
	}

	m := &Menu{byLabel: make(map[string]int, len(def.Items))}
	seen := make(map[string]bool)
	for i, item := range def.Items {
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item %q has negative price %s", ErrInvalidMenu, item.Label, item.Price)
		}
		key := strings.ToLower(item.Label)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidMenu, item.Label)
		}
		seen[key] = true
		m.byLabel[item.Label] = i
	}
	for _, cmd := range Precedence {
		label := def.Commands.entry(cmd).Label
		key := strings.ToLower(label)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidMenu, label)
		}
		seen[key] = true
	}

	matchers, err := compileCommands(def.Commands)
	if err != nil {
		return nil, err
	}
	m.matchers = matchers

	// Own the slices so callers cannot mutate the menu through def.
	m.def = def
	m.def.Items = append([]Item(nil), def.Items...)
	return m, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(def Definition) *Menu {
	m, err := New(def)
	if err != nil {
		panic(err)
	}
	return m
}

// Locale returns the menu's locale tag.
func (m *Menu) Locale() string { return m.def.Locale }

// Items returns a copy of the item entries in display order.
func (m *Menu) Items() []Item {
	return append([]Item(nil), m.def.Items...)
}

// Commands returns the command entries.
func (m *Menu) Commands() Commands { return m.def.Commands }

// Definition returns a copy of the definition the menu was built from.
func (m *Menu) Definition() Definition {
	def := m.def
	def.Items = m.Items()
	return def
}

// Choices returns the prompt choices: item labels followed by command labels.
func (m *Menu) Choices() []string {
	out := make([]string, 0, len(m.def.Items)+len(Precedence))
	for _, item := range m.def.Items {
		out = append(out, item.Label)
	}
	for _, cmd := range Precedence {
		out = append(out, m.def.Commands.entry(cmd).Label)
	}
	return out
}

// Lookup finds an item by its exact label.
func (m *Menu) Lookup(label string) (Item, bool) {
	i, ok := m.byLabel[label]
	if !ok {
		return Item{}, false
	}
	return m.def.Items[i], true
}

// ResolveCommand classifies a selected value following Precedence.
// Values that match no command pattern are item selections.
func (m *Menu) ResolveCommand(value string) Command {
	for _, mt := range m.matchers {
		if mt.re.MatchString(value) {
			return mt.cmd
		}
	}
	return CommandItem
}

// Recognize maps raw user input to one of Choices.
// It accepts a 1-based choice number, a choice label or an item description,
// compared case-insensitively after trimming. Failing those, text matching a
// command pattern selects that command and text naming a single item selects
// the item.
func (m *Menu) Recognize(input string) (string, bool) {
	text := strings.TrimSpace(input)
	if text == "" {
		return "", false
	}
	choices := m.Choices()

	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}

	for _, c := range choices {
		if strings.EqualFold(c, text) {
			return c, true
		}
	}
	for _, item := range m.def.Items {
		if strings.EqualFold(item.Description, text) {
			return item.Label, true
		}
	}

	if cmd := m.ResolveCommand(text); cmd != CommandItem {
		return m.def.Commands.entry(cmd).Label, true
	}
	return m.matchItem(text)
}

// minTokenLen keeps short words like "a" or "me" from selecting an item.
const minTokenLen = 3

// matchItem accepts free text naming exactly one item, either as a
// substring of its label or description or through a shared word.
// Ambiguous text matches nothing.
func (m *Menu) matchItem(text string) (string, bool) {
	lower := strings.ToLower(text)
	words := tokenize(lower)

	found := -1
	for i, item := range m.def.Items {
		if !itemMentioned(item, lower, words) {
			continue
		}
		if found >= 0 {
			return "", false
		}
		found = i
	}
	if found < 0 {
		return "", false
	}
	return m.def.Items[found].Label, true
}

func itemMentioned(item Item, lower string, words []string) bool {
	label := strings.ToLower(item.Label)
	desc := strings.ToLower(item.Description)
	if strings.Contains(label, lower) || strings.Contains(desc, lower) {
		return true
	}
	itemWords := tokenize(desc)
	for _, w := range words {
		if len(w) < minTokenLen {
			continue
		}
		if slices.Contains(itemWords, w) {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
