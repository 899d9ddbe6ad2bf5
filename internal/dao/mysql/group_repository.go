package mysql

import (
	"wavechat_server/internal/model"

	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建群组 Repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 id=%d", id)
	}
	return &group, nil
}

func (r *groupRepository) Create(group *model.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建群组")
	}
	return nil
}

func (r *groupRepository) Update(group *model.Group) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBErrorf(err, "更新群组 id=%d", group.ID)
	}
	return nil
}
