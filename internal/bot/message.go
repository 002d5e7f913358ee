// Package bot turns chat messages into habit tracker operations and formats
// the replies. It knows nothing about the transport that delivers messages.
package bot

// Message is one inbound chat message.
type Message struct {
	Identity    int64
	DisplayName string
	Handle      string
	Text        string
}

// Reply is what the transport should send back. Markdown marks Text as using
// *bold* emphasis; Keyboard, when set, lists quick-reply buttons.
type Reply struct {
	Text     string
	Markdown bool
	Keyboard []string
}
