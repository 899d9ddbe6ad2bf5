package constants

const (
	CHANNEL_SIZE       = 100 // 连接发送通道与事件总线通道大小
	PUSH_QUEUE_SIZE    = 500 // 推送通知队列大小
	REDIS_TIMEOUT      = 1   // redis 缓存过期时间（分钟）
	AUTH_CODE_LIVE_MIN = 1   // 短信验证码有效期（分钟）
)
