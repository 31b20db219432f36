package service

import (
	"context"
	"errors"
	"log"

	"Lee_Channel/internal/model"
	"Lee_Channel/internal/pkg"

	"github.com/google/uuid"
)

type ChannelRepo interface {
	CreateWithAdmin(ctx context.Context, ch *model.Channel, creatorID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	Patch(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepo interface {
	Get(ctx context.Context, channelID, userID uuid.UUID) (*model.ChannelMember, error)
	List(ctx context.Context, channelID uuid.UUID) ([]model.ChannelMember, error)
	Add(ctx context.Context, m *model.ChannelMember) error
	Remove(ctx context.Context, channelID, userID uuid.UUID) error
	UpdateRole(ctx context.Context, channelID, userID uuid.UUID, role model.UserRole) error
	CountAdmins(ctx context.Context, channelID uuid.UUID) (int64, error)
	Count(ctx context.Context, channelID uuid.UUID) (int64, error)
}

type EventPublisher interface {
	Send(ctx context.Context, key string, value []byte) error
}

// Action names every gated channel operation.
type Action int

const (
	ActionGetChannel Action = iota
	ActionListMembers
	ActionGetMember
	ActionPatchChannel
	ActionDeleteChannel
	ActionAddMember
	ActionRemoveMember
	ActionSetMemberRole
)

func (a Action) writes() bool {
	switch a {
	case ActionPatchChannel, ActionDeleteChannel, ActionAddMember, ActionRemoveMember, ActionSetMemberRole:
		return true
	default:
		return false
	}
}

type ChannelService struct {
	channels ChannelRepo
	members  MemberRepo
	users    UserRepo
	events   EventPublisher
}

func NewChannelService(channels ChannelRepo, members MemberRepo, users UserRepo, events EventPublisher) *ChannelService {
	return &ChannelService{
		channels: channels,
		members:  members,
		users:    users,
		events:   events,
	}
}

// authorize is the single role decision point. Membership is re-fetched on
// every call; roles are never cached across requests. The membership check
// strictly precedes the role check: a non-member always sees ErrNotFound,
// even for admin-only actions, so channel existence is not leaked.
func (s *ChannelService) authorize(ctx context.Context, channelID, userID uuid.UUID, action Action) (model.UserRole, error) {
	m, err := s.members.Get(ctx, channelID, userID)
	if err != nil {
		return 0, err
	}
	if action.writes() && m.Role != model.RoleAdmin {
		return m.Role, pkg.ErrUnauthorized
	}
	return m.Role, nil
}

func (s *ChannelService) CreateChannel(ctx context.Context, creatorID uuid.UUID, name, topic, description string) (*model.Channel, error) {
	if name == "" {
		return nil, errors.New("channel name required")
	}

	ch := &model.Channel{
		ID:          uuid.New(),
		Name:        name,
		Topic:       topic,
		Description: description,
		CreatorID:   creatorID,
	}
	if err := s.channels.CreateWithAdmin(ctx, ch, creatorID); err != nil {
		return nil, err
	}

	s.publish(ctx, "channel.created", ch.ID, creatorID)
	return ch, nil
}

func (s *ChannelService) GetChannel(ctx context.Context, userID, channelID uuid.UUID) (*model.Channel, error) {
	if _, err := s.authorize(ctx, channelID, userID, ActionGetChannel); err != nil {
		return nil, err
	}
	return s.channels.FindByID(ctx, channelID)
}

func (s *ChannelService) PatchChannel(ctx context.Context, userID, channelID uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	if _, err := s.authorize(ctx, channelID, userID, ActionPatchChannel); err != nil {
		return nil, err
	}
	return s.channels.Patch(ctx, channelID, patch)
}

// DeleteChannel removes the channel and all its memberships, returning the
// removed channel.
func (s *ChannelService) DeleteChannel(ctx context.Context, userID, channelID uuid.UUID) (*model.Channel, error) {
	if _, err := s.authorize(ctx, channelID, userID, ActionDeleteChannel); err != nil {
		return nil, err
	}
	ch, err := s.channels.FindByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := s.channels.Delete(ctx, channelID); err != nil {
		return nil, err
	}

	s.publish(ctx, "channel.deleted", channelID, userID)
	return ch, nil
}

func (s *ChannelService) ListMembers(ctx context.Context, userID, channelID uuid.UUID) ([]model.ChannelMember, error) {
	if _, err := s.authorize(ctx, channelID, userID, ActionListMembers); err != nil {
		return nil, err
	}
	return s.members.List(ctx, channelID)
}

func (s *ChannelService) GetMember(ctx context.Context, userID, channelID, targetID uuid.UUID) (*model.ChannelMember, error) {
	if _, err := s.authorize(ctx, channelID, userID, ActionGetMember); err != nil {
		return nil, err
	}
	return s.members.Get(ctx, channelID, targetID)
}

// AddMember is admin-gated; self-join is not offered, an admin brings the
// user in. The target must exist as a user and must not already be a member.
func (s *ChannelService) AddMember(ctx context.Context, actorID, channelID, targetID uuid.UUID, role model.UserRole) (*model.ChannelMember, error) {
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}
	if _, err := s.authorize(ctx, channelID, actorID, ActionAddMember); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return nil, err
	}

	m := &model.ChannelMember{
		ChannelID: channelID,
		UserID:    targetID,
		Role:      role,
	}
	if err := s.members.Add(ctx, m); err != nil {
		return nil, err
	}

	s.publish(ctx, "member.added", channelID, targetID)
	return m, nil
}

// RemoveMember covers both leave (actor == target, any role) and kick
// (admin only). The last admin cannot leave while other members remain.
func (s *ChannelService) RemoveMember(ctx context.Context, actorID, channelID, targetID uuid.UUID) error {
	if actorID == targetID {
		return s.leave(ctx, channelID, actorID)
	}

	if _, err := s.authorize(ctx, channelID, actorID, ActionRemoveMember); err != nil {
		return err
	}
	if _, err := s.members.Get(ctx, channelID, targetID); err != nil {
		return err
	}
	if err := s.members.Remove(ctx, channelID, targetID); err != nil {
		return err
	}

	s.publish(ctx, "member.removed", channelID, targetID)
	return nil
}

func (s *ChannelService) leave(ctx context.Context, channelID, userID uuid.UUID) error {
	m, err := s.members.Get(ctx, channelID, userID)
	if err != nil {
		return err
	}
	if m.Role == model.RoleAdmin {
		admins, err := s.members.CountAdmins(ctx, channelID)
		if err != nil {
			return err
		}
		total, err := s.members.Count(ctx, channelID)
		if err != nil {
			return err
		}
		if admins == 1 && total > 1 {
			return pkg.ErrConflict
		}
	}
	if err := s.members.Remove(ctx, channelID, userID); err != nil {
		return err
	}

	s.publish(ctx, "member.removed", channelID, userID)
	return nil
}

// SetMemberRole promotes or demotes a member. Demoting the only admin is
// rejected so the channel keeps at least one.
func (s *ChannelService) SetMemberRole(ctx context.Context, actorID, channelID, targetID uuid.UUID, role model.UserRole) (*model.ChannelMember, error) {
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}
	if _, err := s.authorize(ctx, channelID, actorID, ActionSetMemberRole); err != nil {
		return nil, err
	}
	m, err := s.members.Get(ctx, channelID, targetID)
	if err != nil {
		return nil, err
	}
	if m.Role == role {
		return m, nil
	}
	if m.Role == model.RoleAdmin && role == model.RoleMember {
		admins, err := s.members.CountAdmins(ctx, channelID)
		if err != nil {
			return nil, err
		}
		if admins == 1 {
			return nil, pkg.ErrConflict
		}
	}
	if err := s.members.UpdateRole(ctx, channelID, targetID, role); err != nil {
		return nil, err
	}
	m.Role = role

	s.publish(ctx, "member.role_changed", channelID, targetID)
	return m, nil
}

// publish is best effort: a broker fault is logged and the request still
// succeeds.
func (s *ChannelService) publish(ctx context.Context, event string, channelID, userID uuid.UUID) {
	if s.events == nil {
		return
	}
	payload := pkg.EncodeChannelEvent(event, channelID, userID)
	if err := s.events.Send(ctx, channelID.String(), payload); err != nil {
		log.Printf("channel event %s send err: %v", event, err)
	}
}
