package rank

import "strconv"

// ControlKind identifies the pager button to show.
type ControlKind int

// Pager controls.
const (
	ControlNone ControlKind = iota
	ControlMore
	ControlLess
)

// Control is the pager button for the current window: its kind, the number
// of items it reveals or hides, and its label.
type Control struct {
	Kind  ControlKind `json:"kind"`
	Delta int         `json:"delta,omitempty"`
	Label string      `json:"label,omitempty"`
}

// Pager is an incrementally revealed prefix window. Count moves in Step
// increments and never drops below one page.
type Pager struct {
	Step  int
	Count int
}

// NewPager starts a pager at one page. A non-positive step uses
// DefaultPageStep.
func NewPager(step int) Pager {
	if step <= 0 {
		step = DefaultPageStep
	}
	return Pager{Step: step, Count: step}
}

// Window is the number of items to expose out of total.
func (p Pager) Window(total int) int {
	if total < 0 {
		return 0
	}
	return min(p.Count, total)
}

// More reveals one more page, capped at total but never below one page.
func (p *Pager) More(total int) {
	p.Count = max(p.Step, min(total, p.Count+p.Step))
}

// Less hides one page, floored at one page.
func (p *Pager) Less() {
	p.Count = max(p.Step, p.Count-p.Step)
}

// Reset returns to one page.
func (p *Pager) Reset() { p.Count = p.Step }

// Control returns the button to show for total items. Nothing is shown
// when everything fits in one page.
func (p Pager) Control(total int) Control {
	if total <= p.Step {
		return Control{Kind: ControlNone}
	}
	if p.Count < total {
		n := min(p.Step, total-p.Count)
		return Control{Kind: ControlMore, Delta: n, Label: "Show more (+" + strconv.Itoa(n) + ")"}
	}
	n := min(p.Step, p.Count-p.Step)
	if n <= 0 {
		return Control{Kind: ControlNone}
	}
	return Control{Kind: ControlLess, Delta: n, Label: "Show less (-" + strconv.Itoa(n) + ")"}
}

// Slice exposes the window of ranked.
func Slice[T any](p Pager, ranked []Ranked[T]) []Ranked[T] {
	return ranked[:p.Window(len(ranked))]
}
