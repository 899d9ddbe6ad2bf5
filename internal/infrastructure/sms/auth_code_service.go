package sms

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"wavechat_server/internal/config"
	myredis "wavechat_server/internal/dao/redis"
	"wavechat_server/pkg/constants"
	"wavechat_server/pkg/errorx"
	"wavechat_server/pkg/util/random"
)

// SmsService 短信验证码服务接口
// 支持多种实现（阿里云、本地 mock），上层依赖接口而非具体实现
type SmsService interface {
	// SendVerificationCode 向手机号发送验证码
	SendVerificationCode(telephone string) error
}

// localSmsService 本地 mock 实现，验证码只写入缓存并打印到控制台
type localSmsService struct {
	cache myredis.CacheService
}

func (s *localSmsService) SendVerificationCode(telephone string) error {
	key := authCodeKey(telephone)
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "验证码已发送，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))
	fmt.Printf("【MockSMS】手机号: %s, 验证码: %s\n", telephone, code)

	if err := s.cache.Set(context.Background(), key, code, constants.AUTH_CODE_LIVE_MIN*time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// aliyunSmsService 阿里云短信实现
type aliyunSmsService struct {
	client *dysmsapi20170525.Client
	cache  myredis.CacheService
}

// SendVerificationCode 发送验证码
// 先查缓存做频率限制，再占位写缓存，最后调用阿里云接口；发送失败时回滚占位
func (s *aliyunSmsService) SendVerificationCode(telephone string) error {
	if s.client == nil {
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	key := authCodeKey(telephone)
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "验证码已发送，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))

	// 先占位后发送，避免高并发下绕过频率限制
	if err := s.cache.Set(context.Background(), key, code, constants.AUTH_CODE_LIVE_MIN*time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	authConfig := config.GetConfig().AuthCodeConfig
	signName := authConfig.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	templateCode := authConfig.TemplateCode
	if templateCode == "" {
		templateCode = "SMS_154950909"
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String("{\"code\":\"" + code + "\"}"),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("调用阿里云短信接口失败", zap.Error(err))
		// 发送失败必须删除占位，否则用户一分钟内无法重试
		_ = s.cache.Delete(context.Background(), key)
		return errorx.ErrServerBusy
	}

	zap.L().Info("短信发送接口响应", zap.String("response", *util.ToJSONString(rsp)))
	return nil
}

func authCodeKey(telephone string) string {
	return "auth_code_" + telephone
}

// shouldUseMock 判断是否走本地 mock
// 环境变量显式指定，或配置里没有真实 AK 时默认 mock，便于本机跑通注册/短信登录链路
func shouldUseMock(auth config.AuthCodeConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("WAVECHAT_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	ak := strings.ToLower(strings.TrimSpace(auth.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(auth.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// Init 创建短信服务实例
// cacheService 用于频率限制与验证码存取
func Init(cacheService myredis.CacheService) (SmsService, error) {
	authCfg := config.GetConfig().AuthCodeConfig
	if shouldUseMock(authCfg) {
		zap.L().Warn("短信服务使用本地 Mock 模式（验证码仅写入 Redis）")
		return &localSmsService{cache: cacheService}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(authCfg.AccessKeyID),
		AccessKeySecret: tea.String(authCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("初始化阿里云短信客户端失败", zap.Error(err))
		return nil, err
	}
	return &aliyunSmsService{client: client, cache: cacheService}, nil
}
