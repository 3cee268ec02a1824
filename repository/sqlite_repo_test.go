package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/vkayy/ev-cord/database"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
)

// newTestDB, geçici dizinde gerçek bir SQLite veritabanı açar.
// modernc.org/sqlite pure-Go olduğu için testler CGO gerektirmez.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), database.EmbeddedMigrations)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedProfile(t *testing.T, db *database.DB, name string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	if err := NewSQLiteProfileRepo(db.Conn).Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed profile %s: %v", name, err)
	}
	return profile
}

func seedServer(t *testing.T, db *database.DB, owner *models.Profile, name string) *models.Server {
	t.Helper()

	server := &models.Server{
		Name:       name,
		InviteCode: "invite-" + name,
		ProfileID:  owner.ID,
	}
	if err := NewSQLiteServerRepo(db.Conn).Create(context.Background(), server); err != nil {
		t.Fatalf("failed to seed server %s: %v", name, err)
	}
	return server
}

func seedMember(t *testing.T, db *database.DB, server *models.Server, profile *models.Profile, role models.MemberRole) *models.Member {
	t.Helper()

	member := &models.Member{
		ServerID:  server.ID,
		ProfileID: profile.ID,
		Role:      role,
	}
	if err := NewSQLiteMemberRepo(db.Conn).Create(context.Background(), member); err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return member
}

func seedChannel(t *testing.T, db *database.DB, server *models.Server, name string, typ models.ChannelType) *models.Channel {
	t.Helper()

	channel := &models.Channel{
		ServerID:  server.ID,
		ProfileID: server.ProfileID,
		Name:      name,
		Type:      typ,
	}
	if err := NewSQLiteChannelRepo(db.Conn).Create(context.Background(), channel); err != nil {
		t.Fatalf("failed to seed channel %s: %v", name, err)
	}
	return channel
}

func TestMemberCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	guest := seedProfile(t, db, "guest")

	seedMember(t, db, server, guest, models.MemberRoleGuest)

	err := NewSQLiteMemberRepo(db.Conn).Create(context.Background(), &models.Member{
		ServerID:  server.ID,
		ProfileID: guest.ID,
		Role:      models.MemberRoleGuest,
	})
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemberUpdateRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMemberRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	ownerMember := seedMember(t, db, server, owner, models.MemberRoleAdmin)
	guest := seedProfile(t, db, "guest")
	guestMember := seedMember(t, db, server, guest, models.MemberRoleGuest)

	t.Run("owner promotes guest", func(t *testing.T) {
		if err := repo.UpdateRole(ctx, guestMember.ID, server.ID, owner.ID, models.MemberRoleModerator); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated, err := repo.GetByID(ctx, guestMember.ID)
		if err != nil {
			t.Fatalf("failed to re-fetch member: %v", err)
		}
		if updated.Role != models.MemberRoleModerator {
			t.Errorf("role = %s, want moderator", updated.Role)
		}
	})

	t.Run("owner cannot change own role", func(t *testing.T) {
		err := repo.UpdateRole(ctx, ownerMember.ID, server.ID, owner.ID, models.MemberRoleGuest)
		if !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non-owner cannot change roles", func(t *testing.T) {
		err := repo.UpdateRole(ctx, ownerMember.ID, server.ID, guest.ID, models.MemberRoleGuest)
		if !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("wrong server id matches nothing", func(t *testing.T) {
		err := repo.UpdateRole(ctx, guestMember.ID, "nope", owner.ID, models.MemberRoleGuest)
		if !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemberDeleteAsOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMemberRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	ownerMember := seedMember(t, db, server, owner, models.MemberRoleAdmin)
	guest := seedProfile(t, db, "guest")
	guestMember := seedMember(t, db, server, guest, models.MemberRoleGuest)

	// Sahip kendi üyeliğini bu yoldan silemez.
	if err := repo.DeleteAsOwner(ctx, ownerMember.ID, server.ID, owner.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for self-removal, got %v", err)
	}

	// Sahip olmayan kimseyi çıkaramaz.
	if err := repo.DeleteAsOwner(ctx, ownerMember.ID, server.ID, guest.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-owner, got %v", err)
	}

	// Sahip misafiri çıkarabilir.
	if err := repo.DeleteAsOwner(ctx, guestMember.ID, server.ID, owner.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, guestMember.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected member to be gone, got %v", err)
	}
}

func TestMemberListByServerOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMemberRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")

	// Kasıtlı olarak sıralamanın tersine ekleniyor.
	guest := seedProfile(t, db, "guest")
	seedMember(t, db, server, guest, models.MemberRoleGuest)
	mod := seedProfile(t, db, "mod")
	seedMember(t, db, server, mod, models.MemberRoleModerator)
	seedMember(t, db, server, owner, models.MemberRoleAdmin)

	members, err := repo.ListByServer(ctx, server.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}

	wantRoles := []models.MemberRole{models.MemberRoleAdmin, models.MemberRoleModerator, models.MemberRoleGuest}
	for i, want := range wantRoles {
		if members[i].Role != want {
			t.Errorf("member[%d].Role = %s, want %s", i, members[i].Role, want)
		}
	}
	if members[0].Profile.Name != "owner" {
		t.Errorf("admin profile name = %s, want owner", members[0].Profile.Name)
	}
}

func TestServerOwnerScopedMutations(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteServerRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	other := seedProfile(t, db, "other")
	server := seedServer(t, db, owner, "evim")

	t.Run("non-owner cannot update", func(t *testing.T) {
		server.Name = "yeni ad"
		err := repo.Update(ctx, server, other.ID)
		if !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("owner updates name", func(t *testing.T) {
		server.Name = "yeni ad"
		if err := repo.Update(ctx, server, owner.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.GetByID(ctx, server.ID)
		if err != nil {
			t.Fatalf("failed to re-fetch: %v", err)
		}
		if got.Name != "yeni ad" {
			t.Errorf("name = %s, want 'yeni ad'", got.Name)
		}
	})

	t.Run("rotate invite code", func(t *testing.T) {
		if err := repo.RotateInviteCode(ctx, server.ID, other.ID, "hacked"); !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-owner, got %v", err)
		}

		if err := repo.RotateInviteCode(ctx, server.ID, owner.ID, "fresh-code"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.GetByInviteCode(ctx, "fresh-code")
		if err != nil {
			t.Fatalf("failed to fetch by new code: %v", err)
		}
		if got.ID != server.ID {
			t.Errorf("got server %s, want %s", got.ID, server.ID)
		}
		if _, err := repo.GetByInviteCode(ctx, "invite-evim"); !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("old invite code should be invalid, got %v", err)
		}
	})

	t.Run("delete cascades memberships", func(t *testing.T) {
		member := seedMember(t, db, server, other, models.MemberRoleGuest)

		if err := repo.Delete(ctx, server.ID, other.ID); !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-owner delete, got %v", err)
		}

		if err := repo.Delete(ctx, server.ID, owner.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.GetByID(ctx, server.ID); !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("server should be gone, got %v", err)
		}
		if _, err := NewSQLiteMemberRepo(db.Conn).GetByID(ctx, member.ID); !errors.Is(err, pkg.ErrNotFound) {
			t.Errorf("membership should cascade, got %v", err)
		}
	})
}

func TestChannelDefaultNameGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteChannelRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	general := seedChannel(t, db, server, models.DefaultChannelName, models.ChannelTypeText)
	other := seedChannel(t, db, server, "duyurular", models.ChannelTypeText)

	general.Name = "baska"
	if err := repo.Update(ctx, general); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound when renaming general, got %v", err)
	}
	if err := repo.Delete(ctx, general.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound when deleting general, got %v", err)
	}

	other.Name = "haberler"
	if err := repo.Update(ctx, other); err != nil {
		t.Fatalf("unexpected error renaming regular channel: %v", err)
	}
	if err := repo.Delete(ctx, other.ID); err != nil {
		t.Fatalf("unexpected error deleting regular channel: %v", err)
	}
}

func TestMessagePagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	member := seedMember(t, db, server, owner, models.MemberRoleAdmin)
	channel := seedChannel(t, db, server, models.DefaultChannelName, models.ChannelTypeText)

	// created_at saniye çözünürlüklü — deterministik sıra için elle eklenir.
	for i := 1; i <= 5; i++ {
		_, err := db.Conn.Exec(
			`INSERT INTO messages (id, channel_id, member_id, content, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			fmt.Sprintf("msg%d", i), channel.ID, member.ID,
			fmt.Sprintf("mesaj %d", i), fmt.Sprintf("2026-01-01 10:00:0%d", i),
		)
		if err != nil {
			t.Fatalf("failed to insert message %d: %v", i, err)
		}
	}

	page1, err := repo.ListByChannel(ctx, channel.ID, "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(page1))
	}
	if page1[0].ID != "msg5" || page1[1].ID != "msg4" {
		t.Errorf("page1 = [%s %s], want [msg5 msg4]", page1[0].ID, page1[1].ID)
	}

	page2, err := repo.ListByChannel(ctx, channel.ID, page1[1].ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2) != 2 || page2[0].ID != "msg3" || page2[1].ID != "msg2" {
		t.Fatalf("page2 should be [msg3 msg2], got %d messages", len(page2))
	}

	page3, err := repo.ListByChannel(ctx, channel.ID, page2[1].ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page3) != 1 || page3[0].ID != "msg1" {
		t.Fatalf("page3 should be [msg1], got %d messages", len(page3))
	}
}

func TestMessageUpdateAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	member := seedMember(t, db, server, owner, models.MemberRoleAdmin)
	other := seedProfile(t, db, "other")
	otherMember := seedMember(t, db, server, other, models.MemberRoleGuest)
	channel := seedChannel(t, db, server, models.DefaultChannelName, models.ChannelTypeText)

	msg := &models.Message{ChannelID: channel.ID, MemberID: member.ID, Content: "ilk hali"}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	// Yazar olmayan düzenleyemez.
	if err := repo.Update(ctx, msg.ID, otherMember.ID, "sahte"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-author edit, got %v", err)
	}

	if err := repo.Update(ctx, msg.ID, member.ID, "duzeltildi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.SoftDelete(ctx, msg.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("soft-deleted message should still exist: %v", err)
	}
	if !got.Deleted {
		t.Error("message should be flagged deleted")
	}
	if got.Content != models.DeletedMessageContent {
		t.Errorf("content = %q, want placeholder", got.Content)
	}
	if got.FileURL != nil {
		t.Error("file_url should be cleared on delete")
	}

	// Silinen mesaj tekrar düzenlenemez ve tekrar silinemez.
	if err := repo.Update(ctx, msg.ID, member.ID, "hortlatma"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound editing deleted message, got %v", err)
	}
	if err := repo.SoftDelete(ctx, msg.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound re-deleting message, got %v", err)
	}
}

func TestConversationGetByMembers(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteConversationRepo(db.Conn)
	ctx := context.Background()

	owner := seedProfile(t, db, "owner")
	server := seedServer(t, db, owner, "evim")
	m1 := seedMember(t, db, server, owner, models.MemberRoleAdmin)
	other := seedProfile(t, db, "other")
	m2 := seedMember(t, db, server, other, models.MemberRoleGuest)

	conv := &models.Conversation{MemberOneID: m1.ID, MemberTwoID: m2.ID}
	if err := repo.Create(ctx, conv); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	got, err := repo.GetByMembers(ctx, m1.ID, m2.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("got conversation %s, want %s", got.ID, conv.ID)
	}
	if got.MemberOne == nil || got.MemberTwo == nil {
		t.Fatal("both members should be populated")
	}
	if got.MemberOne.Profile.Name != "owner" || got.MemberTwo.Profile.Name != "other" {
		t.Errorf("member profiles = (%s, %s), want (owner, other)",
			got.MemberOne.Profile.Name, got.MemberTwo.Profile.Name)
	}

	// Aynı çift ikinci kez oluşturulamaz.
	dup := &models.Conversation{MemberOneID: m1.ID, MemberTwoID: m2.ID}
	if err := repo.Create(ctx, dup); !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}
