package mysql

import (
	"time"

	"wavechat_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 id=%d", id)
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 phone=%s", phone)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

func (r *userRepository) FindAllExcept(excludeID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("id <> ?", excludeID).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "查询用户列表")
	}
	return users, nil
}

func (r *userRepository) SearchByUsername(keyword string) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("username LIKE ?", "%"+keyword+"%").Find(&users).Error; err != nil {
		return nil, wrapDBErrorf(err, "搜索用户 keyword=%s", keyword)
	}
	return users, nil
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 id=%d", user.ID)
	}
	return nil
}

func (r *userRepository) UpdatePresence(id uint, status int8, lastSeen time.Time) error {
	updates := map[string]interface{}{
		"status":    status,
		"last_seen": lastSeen,
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新用户在线状态 id=%d", id)
	}
	return nil
}
