package session

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"net"
	"testing"
	"time"

	"github.com/quietpush/fcmreceiver/internal/mcs"
	"github.com/quietpush/fcmreceiver/internal/wire"
)

// mockMTalkServer drives one net.Pipe-backed half of a mocked MTalk
// connection from the test goroutine's side, reusing the same
// frameConn the real client uses so the wire framing stays identical.
type mockMTalkServer struct {
	t  *testing.T
	fc *frameConn
}

func newMockMTalkServer(t *testing.T, conn net.Conn) *mockMTalkServer {
	return &mockMTalkServer{t: t, fc: newFrameConn(conn)}
}

func (m *mockMTalkServer) expectLoginRequest() mcs.LoginRequest {
	m.t.Helper()
	f, err := m.fc.readFrame()
	if err != nil {
		m.t.Fatalf("mock server: read login request: %v", err)
	}
	if f.Tag != wire.TagLoginRequest {
		m.t.Fatalf("mock server: expected LoginRequest, got tag %v", f.Tag)
	}
	req, err := mcs.DecodeLoginRequest(f.Body)
	if err != nil {
		m.t.Fatalf("mock server: decode login request: %v", err)
	}
	return req
}

func (m *mockMTalkServer) sendLoginResponse(resp mcs.LoginResponse) {
	m.t.Helper()
	if err := m.fc.writeFrame(wire.Frame{Tag: wire.TagLoginResponse, Body: mcs.EncodeLoginResponse(resp)}); err != nil {
		m.t.Fatalf("mock server: send login response: %v", err)
	}
}

func (m *mockMTalkServer) sendFrame(f wire.Frame) {
	m.t.Helper()
	if err := m.fc.writeFrame(f); err != nil {
		m.t.Fatalf("mock server: send frame: %v", err)
	}
}

func (m *mockMTalkServer) readFrame() wire.Frame {
	m.t.Helper()
	f, err := m.fc.readFrame()
	if err != nil {
		m.t.Fatalf("mock server: read frame: %v", err)
	}
	return f
}

// testWebPushSetup generates a receiver key pair and an encrypted
// DataMessageStanza for plaintext, ready to hand to a mockMTalkServer.
type testWebPushSetup struct {
	creds Credentials
}

func newTestWebPushSetup(t *testing.T) testWebPushSetup {
	t.Helper()
	curve := ecdh.P256()
	priv, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate receiver key: %v", err)
	}
	authSecret := make([]byte, 16)
	if _, err := rand.Read(authSecret); err != nil {
		t.Fatalf("auth secret: %v", err)
	}
	return testWebPushSetup{creds: Credentials{
		AndroidID:        42,
		SecurityToken:    99,
		P256DHPrivateKey: priv.Bytes(),
		P256DHPublicKey:  priv.PublicKey().Bytes(),
		AuthSecret:       authSecret,
	}}
}

func (s testWebPushSetup) receiverPub(t *testing.T) *ecdh.PublicKey {
	t.Helper()
	pub, err := ecdh.P256().NewPublicKey(s.creds.P256DHPublicKey)
	if err != nil {
		t.Fatalf("parse receiver public key: %v", err)
	}
	return pub
}

func (s testWebPushSetup) encryptedDataMessage(t *testing.T, persistentID string, plaintext []byte) mcs.DataMessageStanza {
	t.Helper()
	ciphertext, cryptoKeyHeader, encryptionHeader := encryptForTest(t, s.receiverPub(t), s.creds.AuthSecret, plaintext)
	return mcs.DataMessageStanza{
		PersistentID: persistentID,
		From:         "gcm.googleapis.com",
		RawData:      ciphertext,
		AppData: []mcs.AppData{
			{Key: "crypto-key", Value: cryptoKeyHeader},
			{Key: "encryption", Value: encryptionHeader},
		},
	}
}

func waitMessageEvent(t *testing.T, events <-chan Event, timeout time.Duration) MessageEvent {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-events:
			if msgEv, ok := ev.(MessageEvent); ok {
				return msgEv
			}
		case <-deadline:
			t.Fatalf("timed out waiting for MessageEvent")
		}
	}
}

// S1: login succeeds, one DataMessage is delivered and decrypted.
func TestScenarioS1LoginOKOneDataMessage(t *testing.T) {
	setup := newTestWebPushSetup(t)
	clientConn, serverConn := net.Pipe()
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dialed := false
	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		if dialed {
			return nil, context.Canceled
		}
		dialed = true
		return clientConn, nil
	}

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		mock := newMockMTalkServer(t, serverConn)
		req := mock.expectLoginRequest()
		if req.User != "42" {
			t.Errorf("expected user=42, got %q", req.User)
		}
		mock.sendLoginResponse(mcs.LoginResponse{
			ID:              "session-1",
			HeartbeatConfig: &mcs.HeartbeatConfig{IntervalMs: 60000},
		})
		msg := setup.encryptedDataMessage(t, "p1", []byte("hello"))
		mock.sendFrame(wire.Frame{Tag: wire.TagDataMessageStanza, Body: mcs.EncodeDataMessageStanza(msg)})
		mock.sendFrame(wire.Frame{Tag: wire.TagClose, Body: mcs.EncodeClose(mcs.Close{})})
	}()

	err := run(ctx, Config{}, setup.creds, ResumeState{}, events, dial)
	<-serverDone
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	msgEv := waitMessageEvent(t, events, time.Second)
	if msgEv.PersistentID != "p1" || string(msgEv.Payload) != "hello" {
		t.Fatalf("unexpected message event: %+v", msgEv)
	}
}

// S2: resuming with previously-seen ids echoes them in LoginRequest,
// in order.
func TestScenarioS2ResumeEchoesPersistentIDs(t *testing.T) {
	setup := newTestWebPushSetup(t)
	clientConn, serverConn := net.Pipe()
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		return clientConn, nil
	}

	gotReq := make(chan mcs.LoginRequest, 1)
	go func() {
		mock := newMockMTalkServer(t, serverConn)
		gotReq <- mock.expectLoginRequest()
		mock.sendLoginResponse(mcs.LoginResponse{Error: &mcs.ErrorInfo{Code: 401, Message: "stop here"}})
	}()

	resume := ResumeState{ReceivedPersistentIDs: []string{"p1", "p2"}}
	_ = run(ctx, Config{}, setup.creds, resume, events, dial)

	req := <-gotReq
	if len(req.ReceivedPersistentIDs) != 2 || req.ReceivedPersistentIDs[0] != "p1" || req.ReceivedPersistentIDs[1] != "p2" {
		t.Fatalf("persistent ids not echoed in order: %+v", req.ReceivedPersistentIDs)
	}
}

// S3: an unknown tag (9) is tolerated and skipped; the DataMessage
// that follows still delivers, and the stream id count includes the
// skipped frame.
func TestScenarioS3UnknownTagTolerated(t *testing.T) {
	setup := newTestWebPushSetup(t)
	clientConn, serverConn := net.Pipe()
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		return clientConn, nil
	}

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		mock := newMockMTalkServer(t, serverConn)
		mock.expectLoginRequest()
		mock.sendLoginResponse(mcs.LoginResponse{ID: "s1"})
		mock.sendFrame(wire.Frame{Tag: wire.TagBatchPresenceStanza, Body: []byte{1, 2, 3, 4, 5}})
		msg := setup.encryptedDataMessage(t, "p2", []byte("after-skip"))
		mock.sendFrame(wire.Frame{Tag: wire.TagDataMessageStanza, Body: mcs.EncodeDataMessageStanza(msg)})
		mock.sendFrame(wire.Frame{Tag: wire.TagClose, Body: mcs.EncodeClose(mcs.Close{})})
	}()

	err := run(ctx, Config{}, setup.creds, ResumeState{}, events, dial)
	<-serverDone
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	msgEv := waitMessageEvent(t, events, time.Second)
	if msgEv.PersistentID != "p2" {
		t.Fatalf("unexpected persistent id: %q", msgEv.PersistentID)
	}
}

// S4: the client answers a server-initiated HeartbeatPing with a
// HeartbeatAck within a short window.
func TestScenarioS4HeartbeatPingAnswered(t *testing.T) {
	setup := newTestWebPushSetup(t)
	clientConn, serverConn := net.Pipe()
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		return clientConn, nil
	}

	ackSeen := make(chan mcs.HeartbeatAck, 1)
	go func() {
		mock := newMockMTalkServer(t, serverConn)
		mock.expectLoginRequest()
		mock.sendLoginResponse(mcs.LoginResponse{ID: "s1"})
		mock.sendFrame(wire.Frame{Tag: wire.TagHeartbeatPing, Body: mcs.EncodeHeartbeatPing(mcs.HeartbeatPing{StreamID: 1})})
		f := mock.readFrame()
		if f.Tag == wire.TagHeartbeatAck {
			ack, _ := mcs.DecodeHeartbeatAck(f.Body)
			ackSeen <- ack
		}
		mock.sendFrame(wire.Frame{Tag: wire.TagClose, Body: mcs.EncodeClose(mcs.Close{})})
	}()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Config{}, setup.creds, ResumeState{}, events, dial) }()

	select {
	case ack := <-ackSeen:
		if ack.LastStreamIDReceived != 1 {
			t.Fatalf("ack did not echo ping stream id: %+v", ack)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for heartbeat ack")
	}
	<-done
}

// S5: a LoginResponse carrying an error is terminal — AuthExpired
// surfaces, the supervisor does not reconnect.
func TestScenarioS5AuthFailureNoReconnect(t *testing.T) {
	setup := newTestWebPushSetup(t)
	clientConn, serverConn := net.Pipe()
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dialCount := 0
	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		dialCount++
		if dialCount > 1 {
			t.Fatalf("supervisor reconnected after auth failure")
		}
		return clientConn, nil
	}

	go func() {
		mock := newMockMTalkServer(t, serverConn)
		mock.expectLoginRequest()
		mock.sendLoginResponse(mcs.LoginResponse{Error: &mcs.ErrorInfo{Code: 401, Message: "bad token"}})
	}()

	err := run(ctx, Config{}, setup.creds, ResumeState{}, events, dial)
	if err == nil {
		t.Fatalf("expected an error from run")
	}

	select {
	case ev := <-events:
		if _, ok := ev.(AuthExpiredEvent); !ok {
			t.Fatalf("expected AuthExpiredEvent, got %T", ev)
		}
	default:
		t.Fatalf("expected an AuthExpiredEvent")
	}
}

// S6: a mid-session transport drop triggers a Reconnecting event and
// a second login that echoes the persistent id seen so far; the
// second connection then delivers the next message.
func TestScenarioS6MidSessionReconnect(t *testing.T) {
	setup := newTestWebPushSetup(t)
	events := make(chan Event, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	firstClient, firstServer := net.Pipe()
	secondClient, secondServer := net.Pipe()
	pipes := []net.Conn{firstClient, secondClient}
	dial := func(ctx context.Context, cfg Config) (net.Conn, error) {
		if len(pipes) == 0 {
			return nil, context.Canceled
		}
		c := pipes[0]
		pipes = pipes[1:]
		return c, nil
	}

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		mock := newMockMTalkServer(t, firstServer)
		mock.expectLoginRequest()
		mock.sendLoginResponse(mcs.LoginResponse{ID: "s1"})
		msg := setup.encryptedDataMessage(t, "p1", []byte("first"))
		mock.sendFrame(wire.Frame{Tag: wire.TagDataMessageStanza, Body: mcs.EncodeDataMessageStanza(msg)})
		_ = firstServer.Close() // mid-session transport drop
	}()

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		mock := newMockMTalkServer(t, secondServer)
		req := mock.expectLoginRequest()
		if len(req.ReceivedPersistentIDs) != 1 || req.ReceivedPersistentIDs[0] != "p1" {
			t.Errorf("second login did not echo p1: %+v", req.ReceivedPersistentIDs)
		}
		mock.sendLoginResponse(mcs.LoginResponse{ID: "s2"})
		msg := setup.encryptedDataMessage(t, "p2", []byte("second"))
		mock.sendFrame(wire.Frame{Tag: wire.TagDataMessageStanza, Body: mcs.EncodeDataMessageStanza(msg)})
		mock.sendFrame(wire.Frame{Tag: wire.TagClose, Body: mcs.EncodeClose(mcs.Close{})})
	}()

	cfg := Config{Backoff: BackoffConfig{Base: 10 * time.Millisecond, Max: 50 * time.Millisecond}}
	err := run(ctx, cfg, setup.creds, ResumeState{}, events, dial)
	<-firstDone
	<-secondDone
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	first := waitMessageEvent(t, events, time.Second)
	if first.PersistentID != "p1" {
		t.Fatalf("expected p1 first, got %q", first.PersistentID)
	}
	second := waitMessageEvent(t, events, time.Second)
	if second.PersistentID != "p2" {
		t.Fatalf("expected p2 second, got %q", second.PersistentID)
	}
}
