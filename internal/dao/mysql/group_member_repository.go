package mysql

import (
	"wavechat_server/internal/model"

	"gorm.io/gorm"
)

type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建群成员 Repository
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

func (r *groupMemberRepository) FindByGroup(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group_id=%d", groupID)
	}
	return members, nil
}

func (r *groupMemberRepository) FindMember(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group_id=%d user_id=%d", groupID, userID)
	}
	return &member, nil
}

func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "添加群成员")
	}
	return nil
}

func (r *groupMemberRepository) UpdateRole(groupID, userID uint, role string) error {
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error; err != nil {
		return wrapDBErrorf(err, "更新群成员角色 group_id=%d user_id=%d", groupID, userID)
	}
	return nil
}

func (r *groupMemberRepository) Delete(groupID, userID uint) error {
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "移除群成员 group_id=%d user_id=%d", groupID, userID)
	}
	return nil
}
