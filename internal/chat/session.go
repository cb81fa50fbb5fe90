package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("empty message")

type Message struct {
	Id        string
	Text      string
	FromUser  bool
	Timestamp time.Time
}

// Session is one conversation with the helper. Messages are kept in send order.
type Session struct {
	responder Responder
	delay     time.Duration
	now       func() time.Time

	mu       sync.RWMutex
	messages []Message
	pending  int
}

// NewSession creates a conversation; delay simulates the helper typing before each reply.
func NewSession(responder Responder, delay time.Duration) *Session {
	return &Session{
		responder: responder,
		delay:     delay,
		now:       time.Now,
		messages:  []Message{},
	}
}

// Send records the user message, waits for the typing delay and records the reply.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	s.messages = append(s.messages, s.newMessage(text, true))
	s.pending++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	reply, err := s.responder.Respond(ctx, text)
	if err != nil {
		return Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.newMessage(reply, false)
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Typing reports whether a reply is still being prepared.
func (s *Session) Typing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

func (s *Session) newMessage(text string, fromUser bool) Message {
	return Message{
		Id:        uuid.NewString(),
		Text:      text,
		FromUser:  fromUser,
		Timestamp: s.now(),
	}
}
