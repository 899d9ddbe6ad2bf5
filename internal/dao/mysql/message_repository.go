package mysql

import (
	"wavechat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindBetweenUsers 按两个用户 ID 查找私聊消息（双向）
func (r *messageRepository) FindBetweenUsers(userOneID, userTwoID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userOneID, userTwoID, userTwoID, userOneID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 user1=%d user2=%d", userOneID, userTwoID)
	}
	return messages, nil
}

func (r *messageRepository) FindByGroup(groupID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("group_id = ?", groupID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群消息 group_id=%d", groupID)
	}
	return messages, nil
}

func (r *messageRepository) FindByUser(userID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户消息 user_id=%d", userID)
	}
	return messages, nil
}

func (r *messageRepository) UpdateStatus(uuid int64, status string) error {
	if err := r.db.Model(&model.Message{}).Where("uuid = ?", uuid).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新消息状态 uuid=%d", uuid)
	}
	return nil
}
