// Package levels holds the ordered table of levels a player works through.
package levels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/minaorangina/memory/game"
)

var ErrMalformedTable = errors.New("malformed level table")

// Level defines the size and layout of one board
type Level struct {
	Name    string `json:"name"`
	Pairs   int    `json:"pairs"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// Cards returns the number of tokens on the level's board
func (l Level) Cards() int {
	return l.Pairs * 2
}

func (l Level) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("missing name")
	}
	if l.Pairs < 1 {
		return fmt.Errorf("%q needs at least one pair, got %d", l.Name, l.Pairs)
	}
	if l.Columns < 1 || l.Rows < 1 {
		return fmt.Errorf("%q has a %dx%d grid", l.Name, l.Columns, l.Rows)
	}
	if l.Columns*l.Rows < l.Cards() {
		return fmt.Errorf("%q: %d cards do not fit a %dx%d grid", l.Name, l.Cards(), l.Columns, l.Rows)
	}
	return nil
}

// Table is the ordered list of levels
type Table []Level

// DefaultTable returns the five cat levels, from 4 up to 12 pairs
func DefaultTable() Table {
	return Table{
		{Name: "Level 1", Pairs: 4, Columns: 4, Rows: 2},
		{Name: "Level 2", Pairs: 6, Columns: 4, Rows: 3},
		{Name: "Level 3", Pairs: 8, Columns: 4, Rows: 4},
		{Name: "Level 4", Pairs: 10, Columns: 5, Rows: 4},
		{Name: "Level 5", Pairs: 12, Columns: 6, Rows: 4},
	}
}

// Validate checks the table can be played
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: %w: no levels", game.ErrInvalidConfiguration, ErrMalformedTable)
	}
	for i, l := range t {
		if err := l.validate(); err != nil {
			return fmt.Errorf("%w: %w: level %d: %v", game.ErrInvalidConfiguration, ErrMalformedTable, i, err)
		}
	}
	return nil
}

// Get returns the level at index, if there is one
func (t Table) Get(index int) (Level, bool) {
	if index < 0 || index >= len(t) {
		return Level{}, false
	}
	return t[index], true
}

// Last returns the index of the final level
func (t Table) Last() int {
	return len(t) - 1
}

// Names returns the level names in order
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, l := range t {
		names[i] = l.Name
	}
	return names
}

// String renders the table in the format read by Parse
func (t Table) String() string {
	parts := make([]string, len(t))
	for i, l := range t {
		parts[i] = fmt.Sprintf("%s:%d:%d:%d", l.Name, l.Pairs, l.Columns, l.Rows)
	}
	return strings.Join(parts, ";")
}

// Parse reads a table written as "name:pairs:columns:rows;..."
// and validates it.
func Parse(text string) (Table, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: %w: empty", game.ErrInvalidConfiguration, ErrMalformedTable)
	}

	table := Table{}
	for i, entry := range strings.Split(text, ";") {
		fields := strings.Split(strings.TrimSpace(entry), ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %w: entry %d %q: want name:pairs:columns:rows",
				game.ErrInvalidConfiguration, ErrMalformedTable, i, entry)
		}

		nums := [3]int{}
		for j, f := range fields[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("%w: %w: entry %d: %v", game.ErrInvalidConfiguration, ErrMalformedTable, i, err)
			}
			nums[j] = n
		}

		table = append(table, Level{
			Name:    strings.TrimSpace(fields[0]),
			Pairs:   nums[0],
			Columns: nums[1],
			Rows:    nums[2],
		})
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
