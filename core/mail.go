package core

// Category classifies the payload carried by a Mail envelope. Receiving
// branches use it to dispatch payload handling; the routing layer
// treats it as opaque metadata.
type Category string

const (
	// CategoryMessage marks a conversational message payload.
	CategoryMessage Category = "message"
	// CategoryTool marks a tool schema or tool invocation payload.
	CategoryTool Category = "tool"
	// CategoryService marks a service handle payload.
	CategoryService Category = "service"
	// CategoryModel marks a model configuration payload.
	CategoryModel Category = "model"
	// CategoryProvider marks a provider handle payload.
	CategoryProvider Category = "provider"
	// CategoryNode marks a single workflow node payload.
	CategoryNode Category = "node"
	// CategoryNodeList marks a list of workflow nodes.
	CategoryNodeList Category = "node_list"
	// CategoryNodeID marks a reference to a node by identity.
	CategoryNodeID Category = "node_id"
	// CategoryStart signals the start of an execution.
	CategoryStart Category = "start"
	// CategoryEnd signals the end of an execution.
	CategoryEnd Category = "end"
	// CategorySignal marks an out-of-band control signal.
	CategorySignal Category = "signal"
	// CategoryResponse marks a response to a prior mail item.
	CategoryResponse Category = "response"
)

// Package pairs an arbitrary payload with its category. The router
// never inspects Payload; validation of payload contents is the
// receiving branch's responsibility.
type Package struct {
	Category Category `json:"category"`
	Payload  any      `json:"payload"`
}

// Mail is the immutable envelope exchanged between sources. After
// construction it must be treated as read-only: ownership moves from
// the sender's outbox through the router's buffer into the recipient's
// inbox, but the envelope itself never changes.
type Mail struct {
	Element

	// Sender is the identity of the originating source.
	Sender string `json:"sender"`
	// Recipient is the identity of the destination source.
	Recipient string `json:"recipient"`
	// Package carries the categorized payload.
	Package Package `json:"package"`
}

// NewMail builds a mail envelope addressed from sender to recipient.
// It performs no routing and no payload validation.
func NewMail(sender, recipient string, category Category, payload any) *Mail {
	return &Mail{
		Element:   NewElement(),
		Sender:    sender,
		Recipient: recipient,
		Package:   Package{Category: category, Payload: payload},
	}
}
