package services

import (
	"context"
	"fmt"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/ws"
)

// MemberService, üye yönetimi operasyonlarının interface'i.
//
// İki mutation da sahip yetkisi ister ve acting profile'ın kendi üye
// satırını hedefleyemez — koşullar repository'deki tek SQL ifadesinde
// yaşar, burada tekrarlanmaz. Koşul sağlanmazsa ErrNotFound döner;
// "sunucu yok", "üye yok" ve "yetkin yok" dışarıdan ayırt edilemez.
type MemberService interface {
	// UpdateRole, hedef üyenin rolünü değiştirir ve sunucunun güncel
	// üye listesini döner.
	UpdateRole(ctx context.Context, memberID, serverID, actingProfileID string, req *models.UpdateMemberRoleRequest) (*models.ServerWithMembers, error)

	// RemoveMember, hedef üyeyi sunucudan çıkarır ve sunucunun güncel
	// üye listesini döner.
	RemoveMember(ctx context.Context, memberID, serverID, actingProfileID string) (*models.ServerWithMembers, error)
}

// memberService, MemberService interface'inin implementasyonu.
type memberService struct {
	serverRepo repository.ServerRepository
	memberRepo repository.MemberRepository
	hub        ws.EventPublisher
}

// NewMemberService, constructor.
func NewMemberService(
	serverRepo repository.ServerRepository,
	memberRepo repository.MemberRepository,
	hub ws.EventPublisher,
) MemberService {
	return &memberService{
		serverRepo: serverRepo,
		memberRepo: memberRepo,
		hub:        hub,
	}
}

func (s *memberService) UpdateRole(ctx context.Context, memberID, serverID, actingProfileID string, req *models.UpdateMemberRoleRequest) (*models.ServerWithMembers, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := s.memberRepo.UpdateRole(ctx, memberID, serverID, actingProfileID, models.MemberRole(req.Role)); err != nil {
		return nil, err
	}

	updated, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpMemberUpdate, Data: updated})

	return s.serverWithMembers(ctx, serverID)
}

func (s *memberService) RemoveMember(ctx context.Context, memberID, serverID, actingProfileID string) (*models.ServerWithMembers, error) {
	if err := s.memberRepo.DeleteAsOwner(ctx, memberID, serverID, actingProfileID); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpMemberLeave,
		Data: ws.MemberLeaveData{MemberID: memberID, ServerID: serverID},
	})

	return s.serverWithMembers(ctx, serverID)
}

// serverWithMembers, mutation sonrası dönen aggregate'i toplar:
// sunucu + tam üye listesi (rol sırasında, profillerle). Kanallar dahil
// edilmez — üye yönetimi ekranının ihtiyacı yoktur.
func (s *memberService) serverWithMembers(ctx context.Context, serverID string) (*models.ServerWithMembers, error) {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	result := &models.ServerWithMembers{
		Server:  *server,
		Members: make([]models.MemberWithProfile, 0, len(members)),
	}
	for _, m := range members {
		result.Members = append(result.Members, *m)
	}
	return result, nil
}
