package auth

import (
	"context"
	"testing"
	"time"

	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
	"wavechat_server/pkg/util/jwt"
)

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return "", errorx.New(errorx.CodeCacheError, "key not found")
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type fakeUserRepo struct {
	byPhone map[string]*model.User
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for _, u := range r.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindByPhone(phone string) (*model.User, error) {
	if u, ok := r.byPhone[phone]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.byPhone {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindAllExcept(excludeID uint) ([]model.User, error)    { return nil, nil }
func (r *fakeUserRepo) SearchByUsername(keyword string) ([]model.User, error) { return nil, nil }

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = uint(len(r.byPhone) + 1)
	r.byPhone[user.Phone] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error { return nil }
func (r *fakeUserRepo) UpdatePresence(id uint, status int8, lastSeen time.Time) error {
	return nil
}

type fakeSms struct {
	sent []string
}

func (s *fakeSms) SendVerificationCode(telephone string) error {
	s.sent = append(s.sent, telephone)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeCache) {
	jwt.Init("test-secret", 15, 168)
	users := &fakeUserRepo{byPhone: make(map[string]*model.User)}
	cache := newFakeCache()
	return NewAuthService(users, cache, &fakeSms{}), users, cache
}

func TestRegisterIssuesTokensAndRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Phone:    "13800000001",
		Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("register must issue both tokens")
	}

	if _, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Phone:    "13800000002",
		Password: "secret123",
	}); errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate username must be rejected, got %v", err)
	}
}

func TestResolveAcceptsOnlyAccessToken(t *testing.T) {
	svc, _, _ := newTestService()

	accessToken, err := jwt.GenerateAccessToken(7)
	if err != nil {
		t.Fatal(err)
	}
	userID, err := svc.Resolve(accessToken)
	if err != nil || userID != 7 {
		t.Fatalf("expected user 7, got %d err %v", userID, err)
	}

	refreshToken, _, err := jwt.GenerateRefreshToken(7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Resolve(refreshToken); err == nil {
		t.Fatal("refresh token must not pass access resolution")
	}

	if _, err := svc.Resolve("garbage"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}

func TestRefreshRequiresMatchingTokenID(t *testing.T) {
	svc, users, cache := newTestService()
	u := &model.User{Username: "bob", Phone: "13800000009"}
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}

	refreshToken, tokenID, err := jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	cache.data["user_token:1"] = tokenID

	rsp, err := svc.Refresh(request.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.AccessToken == "" {
		t.Fatal("refresh must return a new access token")
	}

	// 其他设备登录覆盖 Token ID 后，旧令牌失效
	cache.data["user_token:1"] = "newer-token-id"
	if _, err := svc.Refresh(request.RefreshTokenRequest{RefreshToken: refreshToken}); err == nil {
		t.Fatal("stale refresh token must be rejected")
	}
}

func TestSmsLoginValidatesCode(t *testing.T) {
	svc, users, cache := newTestService()
	u := &model.User{Username: "carol", Phone: "13800000003"}
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}
	cache.data["auth_code_13800000003"] = "123456"

	if _, err := svc.SmsLogin(request.SmsLoginRequest{Phone: "13800000003", Code: "000000"}); err == nil {
		t.Fatal("wrong code must be rejected")
	}

	rsp, err := svc.SmsLogin(request.SmsLoginRequest{Phone: "13800000003", Code: "123456"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.AccessToken == "" {
		t.Fatal("sms login must issue tokens")
	}

	// 验证码一次性使用
	if _, err := svc.SmsLogin(request.SmsLoginRequest{Phone: "13800000003", Code: "123456"}); err == nil {
		t.Fatal("auth code must be single use")
	}
}
