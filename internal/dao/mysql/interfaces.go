// Package mysql 数据访问层
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package mysql

import (
	"time"

	"wavechat_server/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByID 根据 ID 查找用户
	FindByID(id uint) (*model.User, error)
	// FindByPhone 根据手机号查找用户
	FindByPhone(phone string) (*model.User, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.User, error)
	// FindAllExcept 查找除指定用户外的所有用户
	FindAllExcept(excludeID uint) ([]model.User, error)
	// SearchByUsername 按用户名模糊搜索
	SearchByUsername(keyword string) ([]model.User, error)
	// Create 创建新用户
	Create(user *model.User) error
	// Update 更新用户信息
	Update(user *model.User) error
	// UpdatePresence 更新在线状态与最近离线时间
	UpdatePresence(id uint, status int8, lastSeen time.Time) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建新消息
	Create(message *model.Message) error
	// FindBetweenUsers 查找两个用户之间的私聊消息（双向）
	FindBetweenUsers(userOneID, userTwoID uint) ([]model.Message, error)
	// FindByGroup 查找群聊消息
	FindByGroup(groupID uint) ([]model.Message, error)
	// FindByUser 查找用户参与的所有私聊消息（会话列表用）
	FindByUser(userID uint) ([]model.Message, error)
	// UpdateStatus 更新消息投递状态
	UpdateStatus(uuid int64, status string) error
}

// CallRepository 通话记录数据访问接口
type CallRepository interface {
	// Create 创建通话记录
	Create(call *model.Call) error
	// FindByID 根据 ID 查找通话记录
	FindByID(id uint) (*model.Call, error)
	// FindByUser 查找用户参与的通话记录
	FindByUser(userID uint) ([]model.Call, error)
	// UpdateStatus 更新通话状态
	UpdateStatus(id uint, status string) error
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	// FindByID 根据 ID 查找群组
	FindByID(id uint) (*model.Group, error)
	// Create 创建群组
	Create(group *model.Group) error
	// Update 更新群组信息
	Update(group *model.Group) error
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindByGroup 查找群组所有成员
	FindByGroup(groupID uint) ([]model.GroupMember, error)
	// FindMember 查找指定群成员
	FindMember(groupID, userID uint) (*model.GroupMember, error)
	// Create 添加群成员
	Create(member *model.GroupMember) error
	// UpdateRole 更新群成员角色
	UpdateRole(groupID, userID uint, role string) error
	// Delete 移除群成员
	Delete(groupID, userID uint) error
}
