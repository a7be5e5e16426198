package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type stubMessages struct {
	rows    map[int64]*domain.Message
	created []domain.MessageCreate
	deleted []int64
}

func ptr(v int64) *int64 { return &v }

func newStubMessages() *stubMessages {
	return &stubMessages{rows: map[int64]*domain.Message{
		20: {ID: 20, SenderID: ptr(2), ReceiverID: ptr(3), Content: "Heifer for sale", SentAt: time.Now()},
		21: {ID: 21, SenderID: ptr(1), ReceiverID: ptr(3), Content: "Vet visit Monday", SentAt: time.Now()},
	}}
}

func (s *stubMessages) Create(_ context.Context, in domain.MessageCreate) (*domain.Message, error) {
	s.created = append(s.created, in)
	m := &domain.Message{ID: int64(len(s.rows) + 20), SenderID: ptr(in.SenderID), ReceiverID: ptr(in.ReceiverID), Content: in.Content}
	s.rows[m.ID] = m
	return m, nil
}

func (s *stubMessages) Get(_ context.Context, id int64) (*domain.Message, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, domain.NotFound("message", id)
	}
	return m, nil
}

func (s *stubMessages) List(context.Context, domain.Page) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, m)
	}
	return out, nil
}

func (s *stubMessages) Delete(_ context.Context, id int64) (*domain.Message, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, domain.NotFound("message", id)
	}
	s.deleted = append(s.deleted, id)
	delete(s.rows, id)
	return m, nil
}

func (s *stubMessages) Send(ctx context.Context, in domain.MessageCreate) (*domain.MessageReceipt, error) {
	m, _ := s.Create(ctx, in)
	return &domain.MessageReceipt{Message: m, Delivery: domain.Delivery{MessageID: m.ID}}, nil
}

func (s *stubMessages) Deliveries(_ context.Context, id int64) ([]domain.Delivery, error) {
	return []domain.Delivery{{MessageID: id}}, nil
}

func (s *stubMessages) Receive(context.Context, domain.InboundMessage) (*domain.Message, bool, error) {
	return nil, false, nil
}

func TestMessageHandler_CreateEnforcesSender(t *testing.T) {
	repo := newStubMessages()
	e, last := routed("/messages", farmerUser, NewMessageHandler(repo).Register)

	serve(e, http.MethodPost, "/messages", `{"sender_id":1,"receiver_id":3,"message_content":"spoofed"}`)
	if !errors.Is(*last, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign sender_id, got %v", *last)
	}
	if len(repo.created) != 0 {
		t.Fatalf("spoofed message was stored: %+v", repo.created)
	}

	*last = nil
	rec := serve(e, http.MethodPost, "/messages", `{"receiver_id":3,"message_content":"Still available"}`)
	if *last != nil || rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %v", rec.Code, *last)
	}
	if repo.created[0].SenderID != farmerUser.ID {
		t.Fatalf("sender_id should default to the caller, got %d", repo.created[0].SenderID)
	}
}

func TestMessageHandler_AdminMaySendOnBehalf(t *testing.T) {
	repo := newStubMessages()
	e, last := routed("/messages", adminUser, NewMessageHandler(repo).Register)

	rec := serve(e, http.MethodPost, "/messages", `{"sender_id":2,"receiver_id":3,"message_content":"On behalf"}`)
	if *last != nil || rec.Code != http.StatusCreated {
		t.Fatalf("admin create: %d %v", rec.Code, *last)
	}
}

func TestMessageHandler_OnlyParticipantsSeeAMessage(t *testing.T) {
	repo := newStubMessages()
	// The farmer sent 20 and is not party to 21.
	e, last := routed("/messages", farmerUser, NewMessageHandler(repo).Register)

	for _, target := range []string{"/messages/21", "/messages/21/deliveries"} {
		*last = nil
		serve(e, http.MethodGet, target, "")
		if !errors.Is(*last, domain.ErrNotFound) {
			t.Fatalf("GET %s: expected ErrNotFound, got %v", target, *last)
		}
	}
	*last = nil
	serve(e, http.MethodDelete, "/messages/21", "")
	if !errors.Is(*last, domain.ErrNotFound) || len(repo.deleted) != 0 {
		t.Fatalf("delete of a foreign message: %v deleted=%v", *last, repo.deleted)
	}

	*last = nil
	rec := serve(e, http.MethodGet, "/messages/20", "")
	if *last != nil || rec.Code != http.StatusOK {
		t.Fatalf("sender get: %d %v", rec.Code, *last)
	}

	// Receivers see it too.
	e, last = routed("/messages", clientUser, NewMessageHandler(repo).Register)
	rec = serve(e, http.MethodGet, "/messages/21/deliveries", "")
	if *last != nil || rec.Code != http.StatusOK {
		t.Fatalf("receiver deliveries: %d %v", rec.Code, *last)
	}
}

func TestMessageHandler_ListIsAdminOnly(t *testing.T) {
	repo := newStubMessages()

	e, last := routed("/messages", clientUser, NewMessageHandler(repo).Register)
	serve(e, http.MethodGet, "/messages", "")
	if !errors.Is(*last, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a client listing messages, got %v", *last)
	}

	e, last = routed("/messages", adminUser, NewMessageHandler(repo).Register)
	rec := serve(e, http.MethodGet, "/messages", "")
	if *last != nil || rec.Code != http.StatusOK {
		t.Fatalf("admin list: %d %v", rec.Code, *last)
	}
}
