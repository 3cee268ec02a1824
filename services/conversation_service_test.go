package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/ws"
)

// pairedMemberRepo, aynı sunucuda iki üye barındıran fake.
func pairedMemberRepo() *fakeMemberRepo {
	members := map[string]*models.Member{
		"m-a": {ID: "m-a", ServerID: "srv1", ProfileID: "p-a"},
		"m-b": {ID: "m-b", ServerID: "srv1", ProfileID: "p-b"},
	}
	return &fakeMemberRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MemberWithProfile, error) {
			if m, ok := members[id]; ok {
				return &models.MemberWithProfile{Member: *m}, nil
			}
			return nil, errNotFoundForTest("member")
		},
		getByServerAndProfileFn: func(ctx context.Context, serverID, profileID string) (*models.Member, error) {
			for _, m := range members {
				if m.ServerID == serverID && m.ProfileID == profileID {
					return m, nil
				}
			}
			return nil, errNotFoundForTest("not a member")
		},
	}
}

func TestGetOrCreateConversationNormalizesPair(t *testing.T) {
	var gotOne, gotTwo string

	repo := &fakeConversationRepo{
		getByMembersFn: func(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error) {
			gotOne, gotTwo = memberOneID, memberTwoID
			return nil, errNotFoundForTest("conversation")
		},
		createFn: func(ctx context.Context, conversation *models.Conversation) error {
			conversation.ID = "conv1"
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*models.Conversation, error) {
			return &models.Conversation{
				ID:          id,
				MemberOneID: "m-a",
				MemberTwoID: "m-b",
				MemberOne:   &models.MemberWithProfile{Member: models.Member{ID: "m-a", ProfileID: "p-a"}},
				MemberTwo:   &models.MemberWithProfile{Member: models.Member{ID: "m-b", ProfileID: "p-b"}},
			}, nil
		},
	}

	hub := newFakeHub()
	svc := NewConversationService(repo, pairedMemberRepo(), hub)

	// Aktör m-b, hedef m-a: çift yine (m-a, m-b) sırasına normalize edilmeli.
	conv, err := svc.GetOrCreateConversation(context.Background(), "p-b", "m-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "conv1" {
		t.Errorf("conversation id = %s, want conv1", conv.ID)
	}
	if gotOne != "m-a" || gotTwo != "m-b" {
		t.Errorf("lookup pair = (%s, %s), want (m-a, m-b)", gotOne, gotTwo)
	}

	// Yeni konuşma yalnızca iki katılımcıya duyurulur.
	if len(hub.toProfile["p-a"]) != 1 || len(hub.toProfile["p-b"]) != 1 {
		t.Errorf("expected one event per participant, got a=%d b=%d",
			len(hub.toProfile["p-a"]), len(hub.toProfile["p-b"]))
	}
	if len(hub.all) != 0 {
		t.Error("conversation events must not be broadcast to everyone")
	}
	if hub.toProfile["p-a"][0].Op != ws.OpConversationCreate {
		t.Errorf("op = %s, want %s", hub.toProfile["p-a"][0].Op, ws.OpConversationCreate)
	}
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	svc := NewConversationService(&fakeConversationRepo{}, pairedMemberRepo(), newFakeHub())

	_, err := svc.GetOrCreateConversation(context.Background(), "p-a", "m-a")
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for self conversation, got %v", err)
	}
}

func TestGetOrCreateConversationReturnsExisting(t *testing.T) {
	existing := &models.Conversation{ID: "conv1", MemberOneID: "m-a", MemberTwoID: "m-b"}
	created := false

	repo := &fakeConversationRepo{
		getByMembersFn: func(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, conversation *models.Conversation) error {
			created = true
			return nil
		},
	}

	hub := newFakeHub()
	svc := NewConversationService(repo, pairedMemberRepo(), hub)

	conv, err := svc.GetOrCreateConversation(context.Background(), "p-a", "m-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "conv1" {
		t.Errorf("conversation id = %s, want conv1", conv.ID)
	}
	if created {
		t.Error("existing conversation should not be re-created")
	}
	if len(hub.toProfile) != 0 {
		t.Error("returning an existing conversation should not broadcast")
	}
}

func TestGetOrCreateConversationLosesRace(t *testing.T) {
	winner := &models.Conversation{ID: "conv-won", MemberOneID: "m-a", MemberTwoID: "m-b"}
	lookups := 0

	repo := &fakeConversationRepo{
		getByMembersFn: func(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error) {
			lookups++
			if lookups == 1 {
				return nil, errNotFoundForTest("conversation")
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, conversation *models.Conversation) error {
			return fmt.Errorf("%w: conversation already exists", pkg.ErrAlreadyExists)
		},
	}

	svc := NewConversationService(repo, pairedMemberRepo(), newFakeHub())

	conv, err := svc.GetOrCreateConversation(context.Background(), "p-a", "m-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "conv-won" {
		t.Errorf("conversation id = %s, want conv-won", conv.ID)
	}
}

func TestSendDirectMessageParticipantsOnly(t *testing.T) {
	conv := &models.Conversation{
		ID:          "conv1",
		MemberOneID: "m-a",
		MemberTwoID: "m-b",
		MemberOne:   &models.MemberWithProfile{Member: models.Member{ID: "m-a", ProfileID: "p-a"}},
		MemberTwo:   &models.MemberWithProfile{Member: models.Member{ID: "m-b", ProfileID: "p-b"}},
	}

	repo := &fakeConversationRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.Conversation, error) {
			return conv, nil
		},
		createDMFn: func(ctx context.Context, dm *models.DirectMessage) error {
			dm.ID = "dm1"
			return nil
		},
		getDMByIDFn: func(ctx context.Context, id string) (*models.DirectMessage, error) {
			return &models.DirectMessage{ID: id, ConversationID: "conv1", MemberID: "m-a"}, nil
		},
	}

	hub := newFakeHub()
	svc := NewConversationService(repo, pairedMemberRepo(), hub)
	ctx := context.Background()

	// Katılımcı olmayan için konuşma yokmuş gibi davranılır.
	if _, err := svc.SendDirectMessage(ctx, "conv1", "p-stranger", &models.CreateMessageRequest{Content: "selam"}); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for outsider, got %v", err)
	}

	dm, err := svc.SendDirectMessage(ctx, "conv1", "p-a", &models.CreateMessageRequest{Content: "selam"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dm.ID != "dm1" {
		t.Errorf("dm id = %s, want dm1", dm.ID)
	}

	if len(hub.toProfile["p-a"]) != 1 || len(hub.toProfile["p-b"]) != 1 {
		t.Errorf("expected one event per participant, got a=%d b=%d",
			len(hub.toProfile["p-a"]), len(hub.toProfile["p-b"]))
	}
	if len(hub.all) != 0 {
		t.Error("direct messages must not be broadcast to everyone")
	}
}
