package model

import "gorm.io/gorm"

// Group 群组模型，对应 group_info 表
type Group struct {
	gorm.Model
	Name    string `gorm:"column:name;type:varchar(80);not null;comment:群名称"`
	Notice  string `gorm:"column:notice;type:varchar(500);comment:群公告"`
	OwnerID uint   `gorm:"column:owner_id;not null;comment:群主ID"`
	Avatar  string `gorm:"column:avatar;type:varchar(255);comment:群头像"`
}

func (Group) TableName() string {
	return "group_info"
}
