package mysql

import (
	"wavechat_server/internal/model"

	"gorm.io/gorm"
)

type callRepository struct {
	db *gorm.DB
}

// NewCallRepository 创建通话记录 Repository
func NewCallRepository(db *gorm.DB) CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) Create(call *model.Call) error {
	if err := r.db.Create(call).Error; err != nil {
		return wrapDBError(err, "创建通话记录")
	}
	return nil
}

func (r *callRepository) FindByID(id uint) (*model.Call, error) {
	var call model.Call
	if err := r.db.First(&call, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通话记录 id=%d", id)
	}
	return &call, nil
}

func (r *callRepository) FindByUser(userID uint) ([]model.Call, error) {
	var calls []model.Call
	if err := r.db.Where("caller_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Find(&calls).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通话记录 user_id=%d", userID)
	}
	return calls, nil
}

func (r *callRepository) UpdateStatus(id uint, status string) error {
	if err := r.db.Model(&model.Call{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新通话状态 id=%d", id)
	}
	return nil
}
