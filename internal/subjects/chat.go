package subjects

import (
	"fmt"
	"sync"

	"github.com/brianly1003/notifyhub/internal/registry"
)

// ChatRoom broadcasts messages to its users and keeps the message log.
type ChatRoom struct {
	observable[string]

	mu       sync.Mutex
	messages []string
}

// NewChatRoom creates an empty chat room.
func NewChatRoom(opts ...registry.Option) *ChatRoom {
	return &ChatRoom{observable: newObservable[string]("chat", opts...)}
}

// PostMessage appends message to the log and delivers it to every user.
// A message rejected by the room's registry is not logged.
func (c *ChatRoom) PostMessage(message string) error {
	err := c.reg.SetStateWith(message, func() {
		c.mu.Lock()
		c.messages = append(c.messages, message)
		c.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}

// NotifyAll re-delivers the latest message.
func (c *ChatRoom) NotifyAll() error {
	return c.reg.NotifyAll()
}

// Messages returns the message log.
func (c *ChatRoom) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}
