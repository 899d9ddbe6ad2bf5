package request

// UpdateUserRequest 更新用户资料请求
type UpdateUserRequest struct {
	ProfilePicture string `json:"profile_picture" binding:"omitempty,max=255"`
	Signature      string `json:"signature" binding:"omitempty,max=255"`
	FcmToken       string `json:"fcm_token" binding:"omitempty,max=255"`
}

// CreateGroupRequest 创建群组请求
type CreateGroupRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=80"`
	Notice    string `json:"notice" binding:"omitempty,max=500"`
	MemberIDs []uint `json:"member_ids" binding:"omitempty"`
}

// UpdateMemberRoleRequest 更新群成员角色请求
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member admin"`
}
