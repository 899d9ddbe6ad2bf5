// Package call 通话记录业务逻辑
package call

import (
	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/pkg/errorx"
)

type callService struct {
	calls mysql.CallRepository
}

// NewCallService 创建通话记录服务实例
func NewCallService(calls mysql.CallRepository) *callService {
	return &callService{calls: calls}
}

// GetCallHistory 获取用户参与的通话记录，主叫被叫都算
func (s *callService) GetCallHistory(userID uint) ([]respond.CallRecordRespond, error) {
	calls, err := s.calls.FindByUser(userID)
	if err != nil {
		zap.L().Error("查询通话记录失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.CallRecordRespond, 0, len(calls))
	for _, c := range calls {
		rsp = append(rsp, respond.CallRecordRespond{
			ID:         c.ID,
			CallerID:   c.CallerID,
			ReceiverID: c.ReceiverID,
			CallType:   c.CallType,
			Status:     c.Status,
			Duration:   c.Duration,
			Timestamp:  c.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rsp, nil
}
