package chatbot

import (
	"context"
)

type Service struct {
	bot   *Bot
	store SessionStore
}

func NewService(bot *Bot, store SessionStore) *Service {
	return &Service{bot: bot, store: store}
}

func (s *Service) StartSession(ctx context.Context, customerID string) (*Session, error) {
	return s.store.CreateSession(ctx, customerID)
}

// Chat records the customer message, produces the bot reply for sessions the
// bot still owns, and flips the session to the staff queue on a handover
// request. Sessions owned by staff record the message only.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (*Reply, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendMessage(ctx, &Message{
		SessionID: sessionID, Sender: "customer", Text: message,
	}); err != nil {
		return nil, err
	}

	if sess.Status == SessionAdmin || sess.Status == SessionRequested {
		return &Reply{Handover: sess.Status == SessionRequested}, nil
	}

	reply := s.bot.Respond(message)
	if reply.Text != "" {
		if err := s.store.AppendMessage(ctx, &Message{
			SessionID: sessionID, Sender: "bot", Text: reply.Text,
		}); err != nil {
			return nil, err
		}
	}
	if reply.Handover {
		if err := s.store.SetSessionStatus(ctx, sessionID, SessionRequested); err != nil {
			return nil, err
		}
	}
	return &reply, nil
}

// StaffReply lets a staff member answer; the first reply claims the session.
func (s *Service) StaffReply(ctx context.Context, sessionID, message string) error {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != SessionAdmin {
		if err := s.store.SetSessionStatus(ctx, sessionID, SessionAdmin); err != nil {
			return err
		}
	}
	return s.store.AppendMessage(ctx, &Message{
		SessionID: sessionID, Sender: "admin", Text: message,
	})
}

func (s *Service) Resolve(ctx context.Context, sessionID string) error {
	return s.store.SetSessionStatus(ctx, sessionID, SessionResolved)
}

func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	return s.store.Messages(ctx, sessionID)
}

func (s *Service) Waiting(ctx context.Context) ([]Session, error) {
	return s.store.ListWaiting(ctx)
}

func (s *Service) Topics() []string { return s.bot.Topics() }
