// Package group 群组业务逻辑
package group

import (
	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
)

type groupService struct {
	groups  mysql.GroupRepository
	members mysql.GroupMemberRepository
	users   mysql.UserRepository
}

// NewGroupService 创建群组服务实例
func NewGroupService(groups mysql.GroupRepository, members mysql.GroupMemberRepository, users mysql.UserRepository) *groupService {
	return &groupService{
		groups:  groups,
		members: members,
		users:   users,
	}
}

// CreateGroup 创建群组
// 创建者自动入群并成为 admin，初始成员以 member 角色加入
func (s *groupService) CreateGroup(ownerID uint, req request.CreateGroupRequest) (*respond.GroupInfoRespond, error) {
	group := model.Group{
		Name:    req.Name,
		Notice:  req.Notice,
		OwnerID: ownerID,
	}
	if err := s.groups.Create(&group); err != nil {
		zap.L().Error("创建群组失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	owner := model.GroupMember{
		GroupID: group.ID,
		UserID:  ownerID,
		Role:    model.GroupRoleAdmin,
	}
	if err := s.members.Create(&owner); err != nil {
		zap.L().Error("添加群主成员失败", zap.Uint("group_id", group.ID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	for _, userID := range req.MemberIDs {
		if userID == ownerID {
			continue
		}
		member := model.GroupMember{
			GroupID: group.ID,
			UserID:  userID,
			Role:    model.GroupRoleMember,
		}
		if err := s.members.Create(&member); err != nil {
			zap.L().Error("添加初始成员失败",
				zap.Uint("group_id", group.ID),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return buildGroupInfoRespond(&group), nil
}

// GetGroupInfo 获取群组信息
func (s *groupService) GetGroupInfo(groupID uint) (*respond.GroupInfoRespond, error) {
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("查询群组失败", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildGroupInfoRespond(group), nil
}

// GetMembers 获取群成员列表
func (s *groupService) GetMembers(groupID uint) ([]respond.GroupMemberRespond, error) {
	members, err := s.members.FindByGroup(groupID)
	if err != nil {
		zap.L().Error("查询群成员失败", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.GroupMemberRespond, 0, len(members))
	for _, m := range members {
		item := respond.GroupMemberRespond{
			UserID: m.UserID,
			Role:   m.Role,
		}
		if u, err := s.users.FindByID(m.UserID); err == nil {
			item.Username = u.Username
			item.ProfilePicture = u.ProfilePicture
		}
		rsp = append(rsp, item)
	}
	return rsp, nil
}

// AddMember 拉人进群，重复加入直接返回成功
func (s *groupService) AddMember(groupID, userID uint) error {
	if _, err := s.groups.FindByID(groupID); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("查询群组失败", zap.Uint("group_id", groupID), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if _, err := s.members.FindMember(groupID, userID); err == nil {
		return nil
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询群成员失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	member := model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    model.GroupRoleMember,
	}
	if err := s.members.Create(&member); err != nil {
		zap.L().Error("添加群成员失败", zap.Uint("group_id", groupID), zap.Uint("user_id", userID), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// UpdateMemberRole 变更成员角色
func (s *groupService) UpdateMemberRole(groupID, userID uint, role string) error {
	if role != model.GroupRoleMember && role != model.GroupRoleAdmin {
		return errorx.New(errorx.CodeInvalidParam, "无效的角色")
	}
	if _, err := s.members.FindMember(groupID, userID); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "该用户不在群组中")
		}
		zap.L().Error("查询群成员失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := s.members.UpdateRole(groupID, userID, role); err != nil {
		zap.L().Error("更新群成员角色失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// RemoveMember 移出成员
func (s *groupService) RemoveMember(groupID, userID uint) error {
	if _, err := s.members.FindMember(groupID, userID); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "该用户不在群组中")
		}
		zap.L().Error("查询群成员失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := s.members.Delete(groupID, userID); err != nil {
		zap.L().Error("移除群成员失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

func buildGroupInfoRespond(group *model.Group) *respond.GroupInfoRespond {
	return &respond.GroupInfoRespond{
		ID:      group.ID,
		Name:    group.Name,
		Notice:  group.Notice,
		OwnerID: group.OwnerID,
		Avatar:  group.Avatar,
	}
}
