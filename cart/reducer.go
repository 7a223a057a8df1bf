package cart

import (
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/shopspring/decimal"
)

// DefaultMaxQuantity applies to lines that carry no maxQuantity of their own.
const DefaultMaxQuantity = 10

// State is the full cart at a point in time.
type State struct {
	Items     []models.CartItem
	IsLoading bool
}

// TotalItems is the sum of quantities over all lines.
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all lines.
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Find returns the line with the given identity.
func (s State) Find(key models.CartKey) (models.CartItem, bool) {
	if i := s.indexOf(key); i >= 0 {
		return s.Items[i], true
	}
	return models.CartItem{}, false
}

func (s State) indexOf(key models.CartKey) int {
	for i, item := range s.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Limits bounds line quantities.
type Limits struct {
	DefaultMaxQuantity int
}

// MaxFor returns the quantity ceiling of item.
func (l Limits) MaxFor(item models.CartItem) int {
	if item.MaxQuantity > 0 {
		return item.MaxQuantity
	}
	if l.DefaultMaxQuantity > 0 {
		return l.DefaultMaxQuantity
	}
	return DefaultMaxQuantity
}

// ═══════════════════════════════════════════════════════════
// Actions
// ═══════════════════════════════════════════════════════════

type Action interface {
	isAction()
}

type AddItem struct{ Item models.CartItem }

type RemoveItem struct{ Key models.CartKey }

type UpdateQuantity struct {
	Key      models.CartKey
	Quantity int
}

type ClearCart struct{}

type SetLoading struct{ Loading bool }

type LoadCart struct{ Items []models.CartItem }

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (SetLoading) isAction()     {}
func (LoadCart) isAction()       {}

// Outcome describes what a transition did.
type Outcome struct {
	// Item is the affected line after the transition, or the removed line.
	Item    models.CartItem
	Found   bool
	Changed bool
	Removed int
}

// Reduce applies a to s and returns the next state. s is not modified.
func Reduce(s State, a Action, limits Limits) (State, Outcome) {
	switch a := a.(type) {
	case AddItem:
		return addItem(s, a.Item, limits)
	case RemoveItem:
		i := s.indexOf(a.Key)
		if i < 0 {
			return s, Outcome{}
		}
		removed := s.Items[i]
		items := make([]models.CartItem, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		items = append(items, s.Items[i+1:]...)
		return State{Items: items, IsLoading: s.IsLoading}, Outcome{Item: removed, Found: true, Changed: true, Removed: 1}
	case UpdateQuantity:
		i := s.indexOf(a.Key)
		if i < 0 {
			return s, Outcome{}
		}
		if a.Quantity <= 0 {
			return Reduce(s, RemoveItem{Key: a.Key}, limits)
		}
		items := cloneItems(s.Items)
		line := items[i]
		qty := min(a.Quantity, limits.MaxFor(line))
		changed := qty != line.Quantity
		line.Quantity = qty
		items[i] = line
		return State{Items: items, IsLoading: s.IsLoading}, Outcome{Item: line, Found: true, Changed: changed}
	case ClearCart:
		return State{Items: []models.CartItem{}, IsLoading: s.IsLoading}, Outcome{Changed: len(s.Items) > 0, Removed: len(s.Items)}
	case SetLoading:
		return State{Items: s.Items, IsLoading: a.Loading}, Outcome{Changed: s.IsLoading != a.Loading}
	case LoadCart:
		items := cloneItems(a.Items)
		if items == nil {
			items = []models.CartItem{}
		}
		return State{Items: items, IsLoading: s.IsLoading}, Outcome{Changed: true}
	}
	return s, Outcome{}
}

func addItem(s State, item models.CartItem, limits Limits) (State, Outcome) {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	items := cloneItems(s.Items)
	if i := s.indexOf(item.Key()); i >= 0 {
		line := items[i]
		next := min(line.Quantity+qty, limits.MaxFor(line))
		changed := next != line.Quantity
		line.Quantity = next
		items[i] = line
		return State{Items: items, IsLoading: s.IsLoading}, Outcome{Item: line, Found: true, Changed: changed}
	}

	item.Quantity = min(qty, limits.MaxFor(item))
	items = append(items, item)
	return State{Items: items, IsLoading: s.IsLoading}, Outcome{Item: item, Changed: true}
}

func cloneItems(items []models.CartItem) []models.CartItem {
	if items == nil {
		return nil
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
