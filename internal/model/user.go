// Package model 定义数据库实体模型
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户在线状态
const (
	UserStatusOffline int8 = 0
	UserStatusOnline  int8 = 1
)

// User 用户模型，对应 user 表
type User struct {
	gorm.Model

	// Username 用户名，注册时唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(80);not null;comment:用户名"`

	// Phone 手机号，用于登录验证
	Phone string `gorm:"column:phone;uniqueIndex;type:char(20);not null;comment:手机号"`

	// Password 密码（bcrypt 哈希后存储，不存明文）
	Password string `gorm:"column:password;type:varchar(128);not null;comment:密码哈希"`

	// ProfilePicture 头像 URL
	ProfilePicture string `gorm:"column:profile_picture;type:varchar(255);comment:头像"`

	// Signature 个性签名
	Signature string `gorm:"column:signature;type:varchar(255);default:Hey there! I am using WaveChat;comment:个性签名"`

	// Status 在线状态，0.离线，1.在线
	// 仅在最后一条连接断开时落库，实时在线状态以 Presence Registry 为准
	Status int8 `gorm:"column:status;not null;default:0;comment:在线状态，0.离线，1.在线"`

	// LastSeen 最近离线时间
	LastSeen sql.NullTime `gorm:"column:last_seen;type:datetime;comment:最近离线时间"`

	// FcmToken 推送令牌，离线推送时使用
	FcmToken string `gorm:"column:fcm_token;type:varchar(255);comment:推送令牌"`

	// IsAdmin 管理员标志，0.普通用户，1.管理员
	IsAdmin int8 `gorm:"column:is_admin;not null;default:0;comment:是否管理员"`

	// RawPassword 明文密码（不入库），在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// BeforeSave GORM Hook：将 RawPassword 加密后存入 Password 字段
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验登录密码
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
