// Package memory holds map-backed implementations of the repository
// interfaces. They keep the service layer testable without mysql and double
// as a reference for the contract the gorm repositories must honor.
package memory

import (
	"context"
	"sync"

	"Lee_Channel/internal/model"
	"Lee_Channel/internal/pkg"

	"github.com/google/uuid"
)

type UserStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]model.User
	byName map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:   make(map[uuid.UUID]model.User),
		byName: make(map[string]uuid.UUID),
	}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[user.Username]; ok {
		return pkg.ErrConflict
	}
	s.byID[user.ID] = *user
	s.byName[user.Username] = user.ID
	return nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[username]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &u, nil
}

type SessionStore struct {
	mu      sync.RWMutex
	byToken map[string]model.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{byToken: make(map[string]model.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byToken[sess.Token]; ok {
		return pkg.ErrConflict
	}
	s.byToken[sess.Token] = *sess
	return nil
}

func (s *SessionStore) FindByToken(_ context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byToken[token]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

type memberKey struct {
	channelID uuid.UUID
	userID    uuid.UUID
}

type MemberStore struct {
	mu      sync.RWMutex
	members map[memberKey]model.ChannelMember
}

func NewMemberStore() *MemberStore {
	return &MemberStore{members: make(map[memberKey]model.ChannelMember)}
}

func (s *MemberStore) Get(_ context.Context, channelID, userID uuid.UUID) (*model.ChannelMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberKey{channelID, userID}]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &m, nil
}

func (s *MemberStore) List(_ context.Context, channelID uuid.UUID) ([]model.ChannelMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []model.ChannelMember
	for k, m := range s.members {
		if k.channelID == channelID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (s *MemberStore) Add(_ context.Context, m *model.ChannelMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{m.ChannelID, m.UserID}
	if _, ok := s.members[key]; ok {
		return pkg.ErrConflict
	}
	s.members[key] = *m
	return nil
}

func (s *MemberStore) Remove(_ context.Context, channelID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, memberKey{channelID, userID})
	return nil
}

func (s *MemberStore) UpdateRole(_ context.Context, channelID, userID uuid.UUID, role model.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{channelID, userID}
	m, ok := s.members[key]
	if !ok {
		return pkg.ErrNotFound
	}
	m.Role = role
	s.members[key] = m
	return nil
}

func (s *MemberStore) CountAdmins(_ context.Context, channelID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for k, m := range s.members {
		if k.channelID == channelID && m.Role == model.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (s *MemberStore) Count(_ context.Context, channelID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for k := range s.members {
		if k.channelID == channelID {
			n++
		}
	}
	return n, nil
}

func (s *MemberStore) removeChannel(channelID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.members {
		if k.channelID == channelID {
			delete(s.members, k)
		}
	}
}

type ChannelStore struct {
	mu       sync.RWMutex
	channels map[uuid.UUID]model.Channel
	byName   map[string]uuid.UUID
	members  *MemberStore
}

func NewChannelStore(members *MemberStore) *ChannelStore {
	return &ChannelStore{
		channels: make(map[uuid.UUID]model.Channel),
		byName:   make(map[string]uuid.UUID),
		members:  members,
	}
}

func (s *ChannelStore) CreateWithAdmin(ctx context.Context, ch *model.Channel, creatorID uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.byName[ch.Name]; ok {
		s.mu.Unlock()
		return pkg.ErrConflict
	}
	s.channels[ch.ID] = *ch
	s.byName[ch.Name] = ch.ID
	s.mu.Unlock()

	return s.members.Add(ctx, &model.ChannelMember{
		ChannelID: ch.ID,
		UserID:    creatorID,
		Role:      model.RoleAdmin,
	})
}

func (s *ChannelStore) FindByID(_ context.Context, id uuid.UUID) (*model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.channels[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &ch, nil
}

func (s *ChannelStore) Patch(_ context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	if patch.Name != nil && *patch.Name != ch.Name {
		if _, taken := s.byName[*patch.Name]; taken {
			return nil, pkg.ErrConflict
		}
		delete(s.byName, ch.Name)
		ch.Name = *patch.Name
		s.byName[ch.Name] = id
	}
	if patch.Topic != nil {
		ch.Topic = *patch.Topic
	}
	if patch.Description != nil {
		ch.Description = *patch.Description
	}
	s.channels[id] = ch
	return &ch, nil
}

func (s *ChannelStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	ch, ok := s.channels[id]
	if ok {
		delete(s.byName, ch.Name)
		delete(s.channels, id)
	}
	s.mu.Unlock()

	s.members.removeChannel(id)
	return nil
}
