package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
)

// 通话信令：服务端只做中转，SDP/ICE 内容不做解析。
// 落库失败不会阻断转发，信令链路的可用性优先于通话记录完整性。

// handleStartCall 处理 start_call
// 先以 missed 状态建档（被叫不接听时记录保持 missed），再把 offer 转发给被叫
func (r *EventRouter) handleStartCall(origin *UserConn, data json.RawMessage) {
	var req request.StartCallRequest
	if err := json.Unmarshal(data, &req); err != nil || req.SenderID == 0 || req.ReceiverID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}

	// 未指定类型按视频处理
	callType := req.CallType
	if callType == "" {
		callType = model.CallTypeVideo
	}

	call := model.Call{
		CallerID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		CallType:   callType,
		Status:     model.CallStatusMissed,
	}
	if err := r.calls.Create(&call); err != nil {
		zap.L().Error("persist call record failed", zap.Error(err))
	}

	r.emitToTopic(UserTopic(req.ReceiverID), EventCallRequest, respond.CallRequestRespond{
		CallID:   call.ID,
		SenderID: req.SenderID,
		CallType: callType,
		Offer:    req.Offer,
	})
}

// handleAnswerCall 处理 answer_call
// 接听后把记录从 missed 置为 answered；记录不存在时仅记日志，
// answer 仍然转发给主叫，保证通话能建立
func (r *EventRouter) handleAnswerCall(origin *UserConn, data json.RawMessage) {
	var req request.AnswerCallRequest
	if err := json.Unmarshal(data, &req); err != nil || req.CallerID == 0 || req.ReceiverID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}

	if req.CallID != 0 {
		if _, err := r.calls.FindByID(req.CallID); err != nil {
			zap.L().Warn("answer for unknown call record", zap.Uint("call_id", req.CallID), zap.Error(err))
		} else if err := r.calls.UpdateStatus(req.CallID, model.CallStatusAnswered); err != nil {
			zap.L().Error("update call status failed", zap.Uint("call_id", req.CallID), zap.Error(err))
		}
	}

	r.emitToTopic(UserTopic(req.CallerID), EventCallAnswered, respond.CallAnsweredRespond{
		ReceiverID: req.ReceiverID,
		Answer:     req.Answer,
	})
}

// handleIceCandidate 处理 ice_candidate，纯转发，不落库
func (r *EventRouter) handleIceCandidate(origin *UserConn, data json.RawMessage) {
	var req request.IceCandidateRequest
	if err := json.Unmarshal(data, &req); err != nil || req.TargetID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}
	r.emitToTopic(UserTopic(req.TargetID), EventIceCandidateOut, respond.IceCandidateRespond{
		SenderID:  req.SenderID,
		Candidate: req.Candidate,
	})
}

// handleEndCall 处理 end_call，通知对端挂断
func (r *EventRouter) handleEndCall(origin *UserConn, data json.RawMessage) {
	var req request.EndCallRequest
	if err := json.Unmarshal(data, &req); err != nil || req.TargetID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}
	r.emitToTopic(UserTopic(req.TargetID), EventCallEnded, respond.CallEndedRespond{
		Reason: "hangup",
	})
}
