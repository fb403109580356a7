package diag

import (
	"cmp"
	"slices"
)

// Bag collects the reports of one engine run. Rules may report out of
// source order; Sort restores it.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag { return &Bag{items: make([]Diagnostic, 0, 16)} }

func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's own slice; callers take ownership after the run.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) Sort() { Sort(b.items) }

// Sort orders diagnostics by file and position. At one position errors
// come before warnings, then rules by id. The sort is stable, so reports of
// one rule at one node keep their order.
func Sort(items []Diagnostic) {
	slices.SortStableFunc(items, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Primary.File, b.Primary.File),
			cmp.Compare(a.Primary.Start, b.Primary.Start),
			cmp.Compare(a.Primary.End, b.Primary.End),
			cmp.Compare(b.Severity, a.Severity),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}

// Counts tallies diagnostics for the summary line and exit code.
type Counts struct {
	Errors          int
	Warnings        int
	Fatal           int
	FixableErrors   int
	FixableWarnings int
}

func (c *Counts) Add(other Counts) {
	c.Errors += other.Errors
	c.Warnings += other.Warnings
	c.Fatal += other.Fatal
	c.FixableErrors += other.FixableErrors
	c.FixableWarnings += other.FixableWarnings
}

// Fixable is the number of diagnostics with an automatic fix.
func (c Counts) Fixable() int { return c.FixableErrors + c.FixableWarnings }

func Count(items []Diagnostic) Counts {
	var c Counts
	for i := range items {
		d := &items[i]
		fixable := d.Fixable()
		switch d.Severity {
		case SevError:
			c.Errors++
			if fixable {
				c.FixableErrors++
			}
		case SevWarning:
			c.Warnings++
			if fixable {
				c.FixableWarnings++
			}
		}
		if d.Fatal {
			c.Fatal++
		}
	}
	return c
}
