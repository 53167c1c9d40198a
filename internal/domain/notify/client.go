package notify

// Message is the payload handed to the messaging layer. When DismissCustomID
// is set, the delivered message carries a DISMISS button with that component
// id.
type Message struct {
	Content          string
	DismissCustomID  string
	SuppressMentions bool
}

// Client defines an interface for delivering messages to users and channels.
// This decouples the application services from the concrete bot library.
// Delivery is best-effort: callers treat errors as transient and do not
// retry.
type Client interface {
	SendDirectMessage(userID string, msg Message) error
	SendChannelMessage(channelID string, msg Message) error
}
