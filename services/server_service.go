package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/vkayy/ev-cord/database"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/pkg/email"
	"github.com/vkayy/ev-cord/repository"
	"github.com/vkayy/ev-cord/ws"
)

// ServerService, sunucu operasyonlarının interface'i.
type ServerService interface {
	// CreateServer, yeni sunucu oluşturur. Sunucuyla birlikte "general"
	// text kanalı ve kurucunun admin üyeliği tek transaction'da yaratılır.
	CreateServer(ctx context.Context, profileID string, req *models.CreateServerRequest) (*models.Server, error)

	// ListServers, profilin üye olduğu sunucuları döner.
	ListServers(ctx context.Context, profileID string) ([]*models.Server, error)

	// GetSidebar, sunucu görünümünün view model'ini üretir: kanallar türe
	// göre üç gruba bölünür, üye listesi görüntüleyeni içermez, Role
	// görüntüleyenin rolüdür. Görüntüleyen üye değilse ErrNotFound.
	GetSidebar(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error)

	// UpdateServer, sunucu adını/görselini günceller. Yalnızca sahip.
	UpdateServer(ctx context.Context, serverID, profileID string, req *models.UpdateServerRequest) (*models.Server, error)

	// DeleteServer, sunucuyu ve cascade ile tüm içeriğini siler. Yalnızca sahip.
	DeleteServer(ctx context.Context, serverID, profileID string) error

	// JoinByInviteCode, profili davet koduyla sunucuya guest olarak ekler.
	// Zaten üyeyse hata dönmez — sunucu bilgisi döner (idempotent join).
	JoinByInviteCode(ctx context.Context, profileID, inviteCode string) (*models.Server, error)

	// LeaveServer, profilin kendi üyeliğini sonlandırır. Sahip ayrılamaz —
	// sunucuyu silmeli veya devretmelidir.
	LeaveServer(ctx context.Context, serverID, profileID string) error

	// RotateInviteCode, davet kodunu yeni bir UUID ile değiştirir.
	// Eski kodla yapılan join denemeleri anında geçersizleşir. Yalnızca sahip.
	RotateInviteCode(ctx context.Context, serverID, profileID string) (*models.Server, error)

	// SendInviteEmail, aktif davet linkini email ile gönderir.
	// Her üye davet gönderebilir.
	SendInviteEmail(ctx context.Context, serverID, profileID string, req *models.InviteEmailRequest) error
}

// serverService, ServerService interface'inin implementasyonu.
//
// db alanı transaction başlatmak için tutulur; tx içinde repo'ların
// tx-bound kopyaları oluşturulur (Querier pattern).
type serverService struct {
	db          *sql.DB
	serverRepo  repository.ServerRepository
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
	hub         ws.EventPublisher
	emailSender email.EmailSender
}

// NewServerService, constructor.
func NewServerService(
	db *sql.DB,
	serverRepo repository.ServerRepository,
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
	hub ws.EventPublisher,
	emailSender email.EmailSender,
) ServerService {
	return &serverService{
		db:          db,
		serverRepo:  serverRepo,
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		hub:         hub,
		emailSender: emailSender,
	}
}

func (s *serverService) CreateServer(ctx context.Context, profileID string, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	server := &models.Server{
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		InviteCode: uuid.NewString(),
		ProfileID:  profileID,
	}

	// Sunucu + general kanalı + admin üyelik: ya hepsi ya hiçbiri.
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := repository.NewSQLiteServerRepo(tx).Create(ctx, server); err != nil {
			return err
		}

		channel := &models.Channel{
			ServerID:  server.ID,
			ProfileID: profileID,
			Name:      models.DefaultChannelName,
			Type:      models.ChannelTypeText,
		}
		if err := repository.NewSQLiteChannelRepo(tx).Create(ctx, channel); err != nil {
			return err
		}

		member := &models.Member{
			ServerID:  server.ID,
			ProfileID: profileID,
			Role:      models.MemberRoleAdmin,
		}
		return repository.NewSQLiteMemberRepo(tx).Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[server] created: id=%s name=%q owner=%s", server.ID, server.Name, profileID)
	return server, nil
}

func (s *serverService) ListServers(ctx context.Context, profileID string) ([]*models.Server, error) {
	return s.serverRepo.ListByProfile(ctx, profileID)
}

func (s *serverService) GetSidebar(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error) {
	// Üyelik kontrolü önce — üye olmayan, sunucunun varlığını bile öğrenmez.
	viewer, err := s.memberRepo.GetByServerAndProfile(ctx, serverID, profileID)
	if err != nil {
		return nil, err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	channels, err := s.channelRepo.ListByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	sidebar := &models.ServerSidebar{
		Server:        *server,
		TextChannels:  make([]models.Channel, 0),
		AudioChannels: make([]models.Channel, 0),
		VideoChannels: make([]models.Channel, 0),
		Members:       make([]models.MemberWithProfile, 0, len(members)),
		Role:          viewer.Role,
	}

	// Her kanal türüne göre tam olarak bir gruba düşer; liste zaten
	// created_at sırasında geldiği için grup içi sıra korunur.
	for _, ch := range channels {
		switch ch.Type {
		case models.ChannelTypeText:
			sidebar.TextChannels = append(sidebar.TextChannels, *ch)
		case models.ChannelTypeAudio:
			sidebar.AudioChannels = append(sidebar.AudioChannels, *ch)
		case models.ChannelTypeVideo:
			sidebar.VideoChannels = append(sidebar.VideoChannels, *ch)
		}
	}

	// Görüntüleyenin kendi satırı listeden çıkarılır; Role alanı yine de
	// tam üye kümesinden hesaplanmış viewer rolünü taşır.
	for _, m := range members {
		if m.ProfileID == profileID {
			continue
		}
		sidebar.Members = append(sidebar.Members, *m)
	}

	return sidebar, nil
}

func (s *serverService) UpdateServer(ctx context.Context, serverID, profileID string, req *models.UpdateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		server.Name = *req.Name
	}
	if req.ImageURL != nil {
		server.ImageURL = req.ImageURL
	}

	// Sahiplik koşulu SQL'de — sahip değilse sıfır satır, ErrNotFound.
	if err := s.serverRepo.Update(ctx, server, profileID); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpServerUpdate, Data: server})
	return server, nil
}

func (s *serverService) DeleteServer(ctx context.Context, serverID, profileID string) error {
	if err := s.serverRepo.Delete(ctx, serverID, profileID); err != nil {
		return err
	}

	log.Printf("[server] deleted: id=%s by=%s", serverID, profileID)
	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpServerDelete,
		Data: ws.ServerDeleteData{ServerID: serverID},
	})
	return nil
}

func (s *serverService) JoinByInviteCode(ctx context.Context, profileID, inviteCode string) (*models.Server, error) {
	server, err := s.serverRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		ServerID:  server.ID,
		ProfileID: profileID,
		Role:      models.MemberRoleGuest,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		// Zaten üye — davet linkine ikinci kez tıklamak hata değildir.
		if errors.Is(err, pkg.ErrAlreadyExists) {
			return server, nil
		}
		return nil, err
	}

	joined, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpMemberJoin, Data: joined})
	return server, nil
}

func (s *serverService) LeaveServer(ctx context.Context, serverID, profileID string) error {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}

	// Sahip ayrılamaz — sahipsiz sunucu kalmasın.
	if server.ProfileID == profileID {
		return fmt.Errorf("%w: server owner cannot leave, delete the server instead", pkg.ErrBadRequest)
	}

	member, err := s.memberRepo.GetByServerAndProfile(ctx, serverID, profileID)
	if err != nil {
		return err
	}

	if err := s.memberRepo.DeleteByServerAndProfile(ctx, serverID, profileID); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpMemberLeave,
		Data: ws.MemberLeaveData{MemberID: member.ID, ServerID: serverID},
	})
	return nil
}

func (s *serverService) RotateInviteCode(ctx context.Context, serverID, profileID string) (*models.Server, error) {
	newCode := uuid.NewString()

	if err := s.serverRepo.RotateInviteCode(ctx, serverID, profileID, newCode); err != nil {
		return nil, err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	log.Printf("[server] invite code rotated: server=%s by=%s", serverID, profileID)

	// Yeni kod yalnızca sahibe gönderilir — davet kodu herkese açık değildir.
	s.hub.BroadcastToProfile(profileID, ws.Event{Op: ws.OpInviteCodeUpdate, Data: server})
	return server, nil
}

func (s *serverService) SendInviteEmail(ctx context.Context, serverID, profileID string, req *models.InviteEmailRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Davet göndermek için üyelik yeterli.
	if _, err := s.memberRepo.GetByServerAndProfile(ctx, serverID, profileID); err != nil {
		return err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}

	// Email servisi yapılandırılmamışsa davet gönderilemez.
	if s.emailSender == nil {
		return fmt.Errorf("%w: email service is not configured", pkg.ErrBadRequest)
	}

	if err := s.emailSender.SendServerInvite(ctx, req.Email, server.Name, server.InviteCode); err != nil {
		return fmt.Errorf("%w: %v", pkg.ErrInternal, err)
	}

	log.Printf("[server] invite email sent: server=%s to=%s by=%s", serverID, req.Email, profileID)
	return nil
}
