package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quietpush/fcmreceiver/internal/mcs"
	"github.com/quietpush/fcmreceiver/internal/wire"
)

// buildLoginRequest fills the fields the server checks: the checkin
// identity as auth_token/device_id, and whatever persistent ids this
// resume point already carries so the server doesn't redeliver them.
func buildLoginRequest(creds Credentials, resume ResumeState) mcs.LoginRequest {
	androidID := fmt.Sprintf("%d", creds.AndroidID)
	return mcs.LoginRequest{
		ID:                    "chrome-63.0.3234.0",
		Domain:                "mcs.android.com",
		User:                  androidID,
		Resource:              androidID,
		AuthToken:             fmt.Sprintf("%d", creds.SecurityToken),
		DeviceID:              fmt.Sprintf("android-%x", creds.AndroidID),
		ReceivedPersistentIDs: resume.ReceivedPersistentIDs,
		AdaptiveHeartbeat:     false,
		UseRMQ2:               true,
		AccountID:             creds.AndroidID,
		NetworkType:           1,
		Settings:              []mcs.Setting{{Name: "new_vc", Value: "1"}},
	}
}

// handshake sends LoginRequest and blocks for LoginResponse, failing
// with ErrHandshakeTimeout if cfg.LoginTimeout elapses first. A
// non-nil LoginResponse.Error is surfaced as ErrAuthFailed, which the
// reconnect supervisor treats as terminal.
func handshake(ctx context.Context, fc *frameConn, cfg Config, creds Credentials, resume ResumeState) (mcs.LoginResponse, error) {
	req := buildLoginRequest(creds, resume)
	if err := mcs.ValidateLoginRequest(req); err != nil {
		return mcs.LoginResponse{}, err
	}

	deadline := time.Now().Add(cfg.LoginTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = fc.conn.SetDeadline(deadline)
	defer fc.conn.SetDeadline(time.Time{})

	if err := fc.writeFrame(wire.Frame{Tag: wire.TagLoginRequest, Body: mcs.EncodeLoginRequest(req)}); err != nil {
		return mcs.LoginResponse{}, err
	}

	f, err := fc.readFrame()
	if err != nil {
		if errors.Is(err, wire.ErrUnexpectedEOF) {
			return mcs.LoginResponse{}, ErrHandshakeTimeout
		}
		return mcs.LoginResponse{}, err
	}
	// spec §4.2 point 3: the peer's first frame must be LoginResponse;
	// any other tag is fatal.
	if f.Tag != wire.TagLoginResponse {
		return mcs.LoginResponse{}, fmt.Errorf("%w: expected login response, got tag %d", ErrProtocolViolation, f.Tag)
	}
	resp, err := mcs.DecodeLoginResponse(f.Body)
	if err != nil {
		return mcs.LoginResponse{}, err
	}
	if err := mcs.ValidateLoginResponse(resp); err != nil {
		return mcs.LoginResponse{}, err
	}
	if resp.Error != nil {
		return resp, fmt.Errorf("%w: %s", ErrAuthFailed, resp.Error.Message)
	}
	return resp, nil
}
