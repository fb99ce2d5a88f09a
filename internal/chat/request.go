// Package chat is the conversational interface to the room. Inbound messages
// arrive on a Kafka topic, get parsed into commands, run against the booking
// service, and the reply is published back keyed by channel.
package chat

// Command is the first word of an inbound message.
type Command string

const (
	CommandFree   Command = "free"
	CommandBook   Command = "book"
	CommandShow   Command = "show"
	CommandName   Command = "name"
	CommandStatus Command = "status"
)

// Inbound is the payload consumed from the chat inbound topic.
type Inbound struct {
	ChannelID string `json:"channel_id"`
	BookerID  string `json:"booker_id"`
	Text      string `json:"text"`
}

// Outbound is the payload published to the chat outbound topic.
type Outbound struct {
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
}

// Request is a fully parsed command. Which fields are meaningful depends on
// the command: free uses Day/StartMinute, book and name use Ref and Name,
// show uses All.
type Request struct {
	Command     Command
	Day         string
	StartMinute int
	Ref         int
	Name        string
	All         bool
}

// UsageError carries the help text replied to a message that names a known
// command but doesn't parse. It is a normal reply, not a processing failure.
type UsageError struct {
	Text string
}

func (e *UsageError) Error() string {
	return e.Text
}
