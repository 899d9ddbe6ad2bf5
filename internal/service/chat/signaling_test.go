package chat

import (
	"encoding/json"
	"testing"

	"wavechat_server/internal/model"
)

func TestStartCallCreatesMissedRecordAndRelays(t *testing.T) {
	rig := newTestRig()
	caller := rig.connect(1)
	callee := rig.connect(2)

	rig.dispatch(t, caller, EventStartCall, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"call_type":   "video",
		"offer":       "sdp-offer",
	})

	if len(rig.calls.created) != 1 {
		t.Fatalf("expected 1 call record, got %d", len(rig.calls.created))
	}
	record := rig.calls.created[0]
	if record.Status != model.CallStatusMissed {
		t.Errorf("new call must start as missed, got %s", record.Status)
	}
	if record.CallType != model.CallTypeVideo {
		t.Errorf("expected video call, got %s", record.CallType)
	}

	env := recvEvent(t, callee)
	if env.Event != EventCallRequest {
		t.Fatalf("expected call_request, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["offer"] != "sdp-offer" {
		t.Errorf("offer must be relayed untouched, got %v", payload["offer"])
	}
	if payload["call_id"] != float64(record.ID) {
		t.Errorf("expected call_id %d, got %v", record.ID, payload["call_id"])
	}

	// 信令不回发给主叫
	expectNoEvent(t, caller)
}

func TestStartCallWithoutTypeDefaultsToVideo(t *testing.T) {
	rig := newTestRig()
	caller := rig.connect(1)
	callee := rig.connect(2)

	rig.dispatch(t, caller, EventStartCall, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"offer":       "o",
	})

	if len(rig.calls.created) != 1 {
		t.Fatalf("expected 1 call record, got %d", len(rig.calls.created))
	}
	if got := rig.calls.created[0].CallType; got != model.CallTypeVideo {
		t.Errorf("missing call_type must default to video, got %q", got)
	}

	env := recvEvent(t, callee)
	if env.Event != EventCallRequest {
		t.Fatalf("expected call_request, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["call_type"] != model.CallTypeVideo {
		t.Errorf("relayed call_type must default to video, got %v", payload["call_type"])
	}
}

func TestAnswerCallMarksAnsweredAndRelays(t *testing.T) {
	rig := newTestRig()
	caller := rig.connect(1)
	callee := rig.connect(2)

	rig.dispatch(t, caller, EventStartCall, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"call_type":   "voice",
		"offer":       "o",
	})
	recvEvent(t, callee)
	callID := rig.calls.created[0].ID

	rig.dispatch(t, callee, EventAnswerCall, map[string]any{
		"caller_id":   1,
		"receiver_id": 2,
		"call_id":     callID,
		"answer":      "sdp-answer",
	})

	if rig.calls.updated[callID] != model.CallStatusAnswered {
		t.Fatalf("expected call %d marked answered, got %q", callID, rig.calls.updated[callID])
	}

	env := recvEvent(t, caller)
	if env.Event != EventCallAnswered {
		t.Fatalf("expected call_answered, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["answer"] != "sdp-answer" {
		t.Errorf("answer must be relayed untouched, got %v", payload["answer"])
	}
}

func TestAnswerCallUnknownRecordStillRelays(t *testing.T) {
	rig := newTestRig()
	caller := rig.connect(1)
	callee := rig.connect(2)

	rig.dispatch(t, callee, EventAnswerCall, map[string]any{
		"caller_id":   1,
		"receiver_id": 2,
		"call_id":     42,
		"answer":      "a",
	})

	// 记录不存在只影响落库，信令照常转发
	env := recvEvent(t, caller)
	if env.Event != EventCallAnswered {
		t.Fatalf("expected call_answered despite missing record, got %s", env.Event)
	}
	if len(rig.calls.updated) != 0 {
		t.Error("missing record must not be updated")
	}
}

func TestIceCandidateRelay(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)
	target := rig.connect(2)

	rig.dispatch(t, origin, EventIceCandidate, map[string]any{
		"target_id": 2,
		"sender_id": 1,
		"candidate": "candidate:1 1 UDP ...",
	})

	env := recvEvent(t, target)
	if env.Event != EventIceCandidateOut {
		t.Fatalf("expected ice_candidate, got %s", env.Event)
	}
	if len(rig.calls.created) != 0 {
		t.Error("ice candidates must not be persisted")
	}
}

func TestEndCallRelay(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)
	target := rig.connect(2)

	rig.dispatch(t, origin, EventEndCall, map[string]any{"target_id": 2})

	env := recvEvent(t, target)
	if env.Event != EventCallEnded {
		t.Fatalf("expected call_ended, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["reason"] != "hangup" {
		t.Errorf("expected reason hangup, got %v", payload["reason"])
	}
}

func TestSignalingToOfflineTargetIsNoop(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)

	rig.dispatch(t, origin, EventIceCandidate, map[string]any{
		"target_id": 9,
		"sender_id": 1,
		"candidate": "c",
	})
	rig.dispatch(t, origin, EventEndCall, map[string]any{"target_id": 9})

	expectNoEvent(t, origin)
}
