package expense

import (
	"fmt"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// Draft is the in-memory list of expense line drafts behind the submission
// form. It always holds at least one row; blank rows survive editing as
// placeholders and are filtered out at submission time.
type Draft struct {
	lines []entity.ExpenseLine
}

// NewDraft returns a draft holding a single blank row.
func NewDraft() *Draft {
	return &Draft{lines: []entity.ExpenseLine{entity.NewBlankLine()}}
}

// NewDraftFromLines returns a draft seeded with the given rows. An empty
// input yields the same single blank row as NewDraft.
func NewDraftFromLines(lines []entity.ExpenseLine) *Draft {
	if len(lines) == 0 {
		return NewDraft()
	}
	d := &Draft{lines: make([]entity.ExpenseLine, len(lines))}
	copy(d.lines, lines)
	return d
}

// Len returns the number of rows.
func (d *Draft) Len() int {
	return len(d.lines)
}

// Lines returns a copy of the rows.
func (d *Draft) Lines() []entity.ExpenseLine {
	out := make([]entity.ExpenseLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Line returns the row at index i.
func (d *Draft) Line(i int) (entity.ExpenseLine, error) {
	if err := d.checkIndex(i); err != nil {
		return entity.ExpenseLine{}, err
	}
	return d.lines[i], nil
}

// SetLine replaces the row at index i.
func (d *Draft) SetLine(i int, line entity.ExpenseLine) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.lines[i] = line
	return nil
}

// AddRow appends a blank row whose departure station is seeded with the
// previous row's arrival station, so chained itineraries type themselves.
func (d *Draft) AddRow() {
	line := entity.NewBlankLine()
	if n := len(d.lines); n > 0 {
		line.From = d.lines[n-1].To
	}
	d.lines = append(d.lines, line)
}

// RemoveRow deletes the row at index i. The last remaining row cannot be
// removed; the form always keeps at least one.
func (d *Draft) RemoveRow(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if len(d.lines) == 1 {
		return validationErr(msgLastRow)
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	return nil
}

// ClearRow resets the row at index i to a blank one_time line in place.
func (d *Draft) ClearRow(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.lines[i] = entity.NewBlankLine()
	return nil
}

// MakeRoundTrip inserts a mirror-image return leg immediately after row i:
// stations swapped, everything else copied. Both stations must be filled
// in; otherwise nothing is mutated and a validation error is returned.
func (d *Draft) MakeRoundTrip(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	orig := d.lines[i]
	if orig.From == "" || orig.To == "" {
		return validationErr(msgRoundTripNeeds)
	}
	ret := orig
	ret.From = orig.To
	ret.To = orig.From
	d.lines = append(d.lines, entity.ExpenseLine{})
	copy(d.lines[i+2:], d.lines[i+1:])
	d.lines[i+1] = ret
	return nil
}

// ApplyTemplate copies a past submission's lines into the draft: each
// template line fills the first blank row, and extra lines append new rows.
// Dates never carry over. Returns the number of lines applied; an empty
// template is a validation error.
func (d *Draft) ApplyTemplate(template []entity.ExpenseLine) (int, error) {
	if len(template) == 0 {
		return 0, validationErr(msgTemplateEmpty)
	}
	applied := 0
	for _, item := range template {
		line := item
		line.TravelDate = ""
		line.PeriodStart = ""
		line.PeriodEnd = ""

		placed := false
		for i := range d.lines {
			if d.lines[i].IsBlank() {
				d.lines[i] = line
				placed = true
				break
			}
		}
		if !placed {
			d.lines = append(d.lines, line)
		}
		applied++
	}
	return applied, nil
}

// Reset returns the draft to a single blank row, as after a successful
// submission.
func (d *Draft) Reset() {
	d.lines = []entity.ExpenseLine{entity.NewBlankLine()}
}

// Total sums the parseable row amounts in yen for the form's running total.
func (d *Draft) Total() int64 {
	s := entity.Submission{Lines: d.lines}
	return s.TotalAmount()
}

func (d *Draft) checkIndex(i int) error {
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("row index %d out of range (0..%d)", i, len(d.lines)-1)
	}
	return nil
}
