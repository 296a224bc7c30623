package model

// UserRole 来自认证服务签发的令牌, 用户资料本身不在此服务中存储
type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)
