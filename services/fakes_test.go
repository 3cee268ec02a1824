package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
	"github.com/vkayy/ev-cord/ws"
)

func errNotFoundForTest(what string) error {
	return fmt.Errorf("%w: %s", pkg.ErrNotFound, what)
}

func errAlreadyExistsForTest(what string) error {
	return fmt.Errorf("%w: %s", pkg.ErrAlreadyExists, what)
}

// fakeHub, ws.EventPublisher'ın test implementasyonu — event'leri kaydeder.
type fakeHub struct {
	mu        sync.Mutex
	all       []ws.Event
	toProfile map[string][]ws.Event
}

func newFakeHub() *fakeHub {
	return &fakeHub{toProfile: make(map[string][]ws.Event)}
}

func (h *fakeHub) BroadcastToAll(event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all = append(h.all, event)
}

func (h *fakeHub) BroadcastToAllExcept(excludeProfileID string, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all = append(h.all, event)
}

func (h *fakeHub) BroadcastToProfile(profileID string, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.toProfile[profileID] = append(h.toProfile[profileID], event)
}

func (h *fakeHub) GetOnlineProfileIDs() []string { return nil }

func (h *fakeHub) allOps() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ops := make([]string, 0, len(h.all))
	for _, e := range h.all {
		ops = append(ops, e.Op)
	}
	return ops
}

// Fake repository'ler func-field pattern'i kullanır: test yalnızca
// ihtiyaç duyduğu davranışı tanımlar, beklenmeyen çağrı panic'ler.

type fakeProfileRepo struct {
	createFn     func(ctx context.Context, profile *models.Profile) error
	getByIDFn    func(ctx context.Context, id string) (*models.Profile, error)
	getByEmailFn func(ctx context.Context, email string) (*models.Profile, error)
	updateFn     func(ctx context.Context, profile *models.Profile) error
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	return f.createFn(ctx, profile)
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	return f.updateFn(ctx, profile)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.RefreshToken] = session
	return nil
}

func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, errNotFoundForTest("session")
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[token]; !ok {
		return errNotFoundForTest("session")
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteByProfile(ctx context.Context, profileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, s := range f.sessions {
		if s.ProfileID == profileID {
			delete(f.sessions, token)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

type fakeServerRepo struct {
	createFn           func(ctx context.Context, server *models.Server) error
	getByIDFn          func(ctx context.Context, id string) (*models.Server, error)
	getByInviteCodeFn  func(ctx context.Context, code string) (*models.Server, error)
	listByProfileFn    func(ctx context.Context, profileID string) ([]*models.Server, error)
	updateFn           func(ctx context.Context, server *models.Server, ownerProfileID string) error
	rotateInviteCodeFn func(ctx context.Context, serverID, ownerProfileID, newCode string) error
	deleteFn           func(ctx context.Context, serverID, ownerProfileID string) error
}

func (f *fakeServerRepo) Create(ctx context.Context, server *models.Server) error {
	return f.createFn(ctx, server)
}

func (f *fakeServerRepo) GetByID(ctx context.Context, id string) (*models.Server, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeServerRepo) GetByInviteCode(ctx context.Context, code string) (*models.Server, error) {
	return f.getByInviteCodeFn(ctx, code)
}

func (f *fakeServerRepo) ListByProfile(ctx context.Context, profileID string) ([]*models.Server, error) {
	return f.listByProfileFn(ctx, profileID)
}

func (f *fakeServerRepo) Update(ctx context.Context, server *models.Server, ownerProfileID string) error {
	return f.updateFn(ctx, server, ownerProfileID)
}

func (f *fakeServerRepo) RotateInviteCode(ctx context.Context, serverID, ownerProfileID, newCode string) error {
	return f.rotateInviteCodeFn(ctx, serverID, ownerProfileID, newCode)
}

func (f *fakeServerRepo) Delete(ctx context.Context, serverID, ownerProfileID string) error {
	return f.deleteFn(ctx, serverID, ownerProfileID)
}

type fakeMemberRepo struct {
	createFn                   func(ctx context.Context, member *models.Member) error
	getByIDFn                  func(ctx context.Context, id string) (*models.MemberWithProfile, error)
	getByServerAndProfileFn    func(ctx context.Context, serverID, profileID string) (*models.Member, error)
	listByServerFn             func(ctx context.Context, serverID string) ([]*models.MemberWithProfile, error)
	updateRoleFn               func(ctx context.Context, memberID, serverID, actingProfileID string, role models.MemberRole) error
	deleteAsOwnerFn            func(ctx context.Context, memberID, serverID, actingProfileID string) error
	deleteByServerAndProfileFn func(ctx context.Context, serverID, profileID string) error
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *models.Member) error {
	return f.createFn(ctx, member)
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (*models.MemberWithProfile, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeMemberRepo) GetByServerAndProfile(ctx context.Context, serverID, profileID string) (*models.Member, error) {
	return f.getByServerAndProfileFn(ctx, serverID, profileID)
}

func (f *fakeMemberRepo) ListByServer(ctx context.Context, serverID string) ([]*models.MemberWithProfile, error) {
	return f.listByServerFn(ctx, serverID)
}

func (f *fakeMemberRepo) UpdateRole(ctx context.Context, memberID, serverID, actingProfileID string, role models.MemberRole) error {
	return f.updateRoleFn(ctx, memberID, serverID, actingProfileID, role)
}

func (f *fakeMemberRepo) DeleteAsOwner(ctx context.Context, memberID, serverID, actingProfileID string) error {
	return f.deleteAsOwnerFn(ctx, memberID, serverID, actingProfileID)
}

func (f *fakeMemberRepo) DeleteByServerAndProfile(ctx context.Context, serverID, profileID string) error {
	return f.deleteByServerAndProfileFn(ctx, serverID, profileID)
}

type fakeChannelRepo struct {
	createFn       func(ctx context.Context, channel *models.Channel) error
	getByIDFn      func(ctx context.Context, id string) (*models.Channel, error)
	listByServerFn func(ctx context.Context, serverID string) ([]*models.Channel, error)
	updateFn       func(ctx context.Context, channel *models.Channel) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	return f.createFn(ctx, channel)
}

func (f *fakeChannelRepo) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeChannelRepo) ListByServer(ctx context.Context, serverID string) ([]*models.Channel, error) {
	return f.listByServerFn(ctx, serverID)
}

func (f *fakeChannelRepo) Update(ctx context.Context, channel *models.Channel) error {
	return f.updateFn(ctx, channel)
}

func (f *fakeChannelRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeMessageRepo struct {
	createFn        func(ctx context.Context, message *models.Message) error
	getByIDFn       func(ctx context.Context, id string) (*models.Message, error)
	listByChannelFn func(ctx context.Context, channelID, cursor string, limit int) ([]*models.Message, error)
	updateFn        func(ctx context.Context, messageID, memberID, content string) error
	softDeleteFn    func(ctx context.Context, messageID string) error
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	return f.createFn(ctx, message)
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeMessageRepo) ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*models.Message, error) {
	return f.listByChannelFn(ctx, channelID, cursor, limit)
}

func (f *fakeMessageRepo) Update(ctx context.Context, messageID, memberID, content string) error {
	return f.updateFn(ctx, messageID, memberID, content)
}

func (f *fakeMessageRepo) SoftDelete(ctx context.Context, messageID string) error {
	return f.softDeleteFn(ctx, messageID)
}

type fakeConversationRepo struct {
	createFn       func(ctx context.Context, conversation *models.Conversation) error
	getByIDFn      func(ctx context.Context, id string) (*models.Conversation, error)
	getByMembersFn func(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error)
	createDMFn     func(ctx context.Context, dm *models.DirectMessage) error
	getDMByIDFn    func(ctx context.Context, id string) (*models.DirectMessage, error)
	listDMsFn      func(ctx context.Context, conversationID, cursor string, limit int) ([]*models.DirectMessage, error)
	updateDMFn     func(ctx context.Context, dmID, memberID, content string) error
	softDeleteDMFn func(ctx context.Context, dmID string) error
}

func (f *fakeConversationRepo) Create(ctx context.Context, conversation *models.Conversation) error {
	return f.createFn(ctx, conversation)
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeConversationRepo) GetByMembers(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error) {
	return f.getByMembersFn(ctx, memberOneID, memberTwoID)
}

func (f *fakeConversationRepo) CreateDirectMessage(ctx context.Context, dm *models.DirectMessage) error {
	return f.createDMFn(ctx, dm)
}

func (f *fakeConversationRepo) GetDirectMessageByID(ctx context.Context, id string) (*models.DirectMessage, error) {
	return f.getDMByIDFn(ctx, id)
}

func (f *fakeConversationRepo) ListDirectMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*models.DirectMessage, error) {
	return f.listDMsFn(ctx, conversationID, cursor, limit)
}

func (f *fakeConversationRepo) UpdateDirectMessage(ctx context.Context, dmID, memberID, content string) error {
	return f.updateDMFn(ctx, dmID, memberID, content)
}

func (f *fakeConversationRepo) SoftDeleteDirectMessage(ctx context.Context, dmID string) error {
	return f.softDeleteDMFn(ctx, dmID)
}
