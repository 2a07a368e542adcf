package mailer

import (
	"sync"
)

type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records emails instead of sending them. SetError makes the
// following sends fail.
type MockMailer struct {
	mu     sync.RWMutex
	emails []Email
	err    error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{
		emails: make([]Email, 0),
	}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.emails = append(m.emails, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}

// GetSentEmails returns a copy of all sent emails
func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]Email, len(m.emails))
	copy(emails, m.emails)
	return emails
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = make([]Email, 0)
	m.err = nil
}
