package listeners

import "io"

// EmailSubscriber sends an email for every new blog post.
type EmailSubscriber struct {
	email string
	out   io.Writer
}

// NewEmailSubscriber creates an email subscriber for address.
func NewEmailSubscriber(email string, out io.Writer) *EmailSubscriber {
	return &EmailSubscriber{email: email, out: out}
}

// Email returns the subscriber address.
func (s *EmailSubscriber) Email() string { return s.email }

// Receive sends the email for title.
func (s *EmailSubscriber) Receive(title string) error {
	return emit(s.out, "Sending email to %s about new post: %s", s.email, title)
}

// SMSSubscriber texts a phone number for every new blog post.
type SMSSubscriber struct {
	phoneNumber string
	out         io.Writer
}

// NewSMSSubscriber creates an SMS subscriber for phoneNumber.
func NewSMSSubscriber(phoneNumber string, out io.Writer) *SMSSubscriber {
	return &SMSSubscriber{phoneNumber: phoneNumber, out: out}
}

// Receive sends the SMS for title.
func (s *SMSSubscriber) Receive(title string) error {
	return emit(s.out, "Sending SMS to %s about new post: %s", s.phoneNumber, title)
}

// PushSubscriber pushes a notification to a device for every new blog post.
type PushSubscriber struct {
	deviceID string
	out      io.Writer
}

// NewPushSubscriber creates a push subscriber for deviceID.
func NewPushSubscriber(deviceID string, out io.Writer) *PushSubscriber {
	return &PushSubscriber{deviceID: deviceID, out: out}
}

// Receive pushes the notification for title.
func (s *PushSubscriber) Receive(title string) error {
	return emit(s.out, "Sending push notification to device %s about new post: %s", s.deviceID, title)
}
