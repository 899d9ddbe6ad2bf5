package respond

// UserInfoRespond 用户资料响应
type UserInfoRespond struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
	Signature      string `json:"signature"`
	Status         int8   `json:"status"`
	LastSeen       string `json:"last_seen"`
}

// GroupMemberRespond 群成员响应
type GroupMemberRespond struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	Role           string `json:"role"`
}

// GroupInfoRespond 群组信息响应
type GroupInfoRespond struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Notice  string `json:"notice"`
	OwnerID uint   `json:"owner_id"`
	Avatar  string `json:"avatar"`
}
