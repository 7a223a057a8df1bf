package cart

import (
	"fmt"

	"github.com/CodeStar86/Bangin-Gear/models"
)

type NotificationKind string

const (
	ItemAdded     NotificationKind = "item_added"
	ItemAtMaximum NotificationKind = "item_at_maximum"
	ItemRemoved   NotificationKind = "item_removed"
	CartCleared   NotificationKind = "cart_cleared"
)

// Notification is a user-facing message about a cart change.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Item    models.CartItem  `json:"item,omitempty"`
	Message string           `json:"message"`
}

// Notifier receives notifications after a mutation has been applied.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Added describes an add; changed is false when the line was already at its maximum.
func Added(item models.CartItem, changed bool) Notification {
	if !changed {
		return Notification{
			Kind:    ItemAtMaximum,
			Item:    item,
			Message: fmt.Sprintf("%s is already at the maximum quantity", item.Name),
		}
	}
	return Notification{Kind: ItemAdded, Item: item, Message: fmt.Sprintf("%s added to cart", item.Name)}
}

func Removed(item models.CartItem) Notification {
	return Notification{Kind: ItemRemoved, Item: item, Message: fmt.Sprintf("%s removed from cart", item.Name)}
}

func Cleared() Notification {
	return Notification{Kind: CartCleared, Message: "Cart cleared"}
}
