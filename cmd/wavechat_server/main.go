package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"wavechat_server/internal/config"
	dao "wavechat_server/internal/dao/mysql"
	myredis "wavechat_server/internal/dao/redis"
	"wavechat_server/internal/handler"
	"wavechat_server/internal/https_server"
	"wavechat_server/internal/infrastructure/logger"
	"wavechat_server/internal/infrastructure/mq"
	"wavechat_server/internal/infrastructure/push"
	"wavechat_server/internal/infrastructure/sms"
	"wavechat_server/internal/service"
	"wavechat_server/internal/service/chat"
	"wavechat_server/pkg/util/jwt"
	"wavechat_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	cache := myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 与雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 6. 初始化 SMS 服务
	smsService, err := sms.Init(cache)
	if err != nil {
		zap.L().Fatal("SMS 服务初始化失败", zap.Error(err))
	}

	// 7. 初始化 Service 层
	service.InitServices(repos, cache, smsService)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化实时核心
	// 事件总线按配置选择内存通道或 Kafka
	var bus chat.EventBus
	if conf.KafkaConfig.EventMode == "kafka" {
		bus = mq.NewKafkaBus()
	} else {
		bus = chat.NewChannelBus()
	}
	notifier := push.NewAsyncNotifier(nil)
	chatServer := chat.NewChatServer(repos, bus, notifier)
	chatServer.Start()
	zap.L().Info("实时核心初始化成功", zap.String("event_mode", conf.KafkaConfig.EventMode))

	// 9. 初始化 HTTP 服务器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("初始化参数校验翻译器失败", zap.Error(err))
	}
	handlers := handler.NewHandlers(service.Svc, chatServer)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("HTTP 服务器已启动")

	// 10. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	if err := chatServer.Close(); err != nil {
		zap.L().Error("关闭实时核心失败", zap.Error(err))
	}
	notifier.Close()
	zap.L().Info("服务器已关闭")
}
