package listeners

import (
	"io"
	"strings"
)

var emoticons = strings.NewReplacer(
	":)", "😊",
	":(", "😢",
)

// TextUser shows chat messages verbatim.
type TextUser struct {
	username string
	out      io.Writer
}

// NewTextUser creates a plain-text chat participant.
func NewTextUser(username string, out io.Writer) *TextUser {
	return &TextUser{username: username, out: out}
}

// Username returns the participant name.
func (u *TextUser) Username() string { return u.username }

// Receive displays message.
func (u *TextUser) Receive(message string) error {
	return emit(u.out, "%s (text): %s", u.username, message)
}

// EmoticonUser shows chat messages with text smileys replaced by emoji.
type EmoticonUser struct {
	username string
	out      io.Writer
}

// NewEmoticonUser creates an emoji-rendering chat participant.
func NewEmoticonUser(username string, out io.Writer) *EmoticonUser {
	return &EmoticonUser{username: username, out: out}
}

// Receive displays message with emoticons substituted.
func (u *EmoticonUser) Receive(message string) error {
	return emit(u.out, "%s (emoticon): %s", u.username, RenderEmoticons(message))
}

// RenderEmoticons replaces ":)" and ":(" with their emoji.
func RenderEmoticons(message string) string {
	return emoticons.Replace(message)
}

// ThemedUser shows chat messages tagged with the user's theme.
type ThemedUser struct {
	username string
	theme    string
	out      io.Writer
}

// NewThemedUser creates a chat participant using theme.
func NewThemedUser(username, theme string, out io.Writer) *ThemedUser {
	return &ThemedUser{username: username, theme: theme, out: out}
}

// Receive displays message.
func (u *ThemedUser) Receive(message string) error {
	return emit(u.out, "%s (%s theme): %s", u.username, u.theme, message)
}
