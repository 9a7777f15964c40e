package payment

import "time"

// EventTransactionCompleted is the only Paddle event that produces deliveries.
const EventTransactionCompleted = "transaction.completed"

// Event is a completed, paid checkout.
type Event struct {
	EventID       string
	OccurredAt    time.Time
	TransactionID string
	SessionID     string
	OrderID       string
	Email         string
	Currency      string
	Items         []Item
}

// Item is one purchased product line.
type Item struct {
	ProductID   string
	PriceID     string
	Name        string
	FileKey     string // product custom_data "file_key"
	Quantity    int
	AmountCents int64
}

// ProductNames lists item names in order, falling back to product IDs.
func (e Event) ProductNames() []string {
	names := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		if it.Name != "" {
			names = append(names, it.Name)
		} else {
			names = append(names, it.ProductID)
		}
	}
	return names
}
