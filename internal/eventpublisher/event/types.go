package event

type (
	EventType int

	Event struct {
		Type    EventType
		Message interface{}
		Err     error
	}

	EventChannel  chan Event
	EventWChannel chan<- Event
)

const (
	ProductAdded EventType = iota
	ProductUpdated
	ProductDeleted
)

func (t EventType) String() string {
	switch t {
	case ProductAdded:
		return "product_added"
	case ProductUpdated:
		return "product_updated"
	case ProductDeleted:
		return "product_deleted"
	default:
		return "unknown"
	}
}
