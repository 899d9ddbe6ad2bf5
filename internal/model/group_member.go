package model

import "gorm.io/gorm"

// 群成员角色
const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
)

// GroupMember 群成员关联表
type GroupMember struct {
	gorm.Model
	GroupID uint   `gorm:"column:group_id;index;not null;comment:群组ID"`
	UserID  uint   `gorm:"column:user_id;index;not null;comment:用户ID"`
	Role    string `gorm:"column:role;type:char(10);default:member;comment:角色"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
