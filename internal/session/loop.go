package session

import (
	"context"
	"time"

	"github.com/quietpush/fcmreceiver/internal/cryptounwrap"
	"github.com/quietpush/fcmreceiver/internal/mcs"
	"github.com/quietpush/fcmreceiver/internal/observability"
	"github.com/quietpush/fcmreceiver/internal/wire"
)

type frameResult struct {
	frame wire.Frame
	err   error
}

// readLoop does I/O only: it never touches State. It exists so the
// stream loop can select between an incoming frame and its own
// heartbeat ticker instead of blocking forever inside readFrame.
func readLoop(fc *frameConn, out chan<- frameResult, done <-chan struct{}) {
	for {
		f, err := fc.readFrame()
		select {
		case out <- frameResult{frame: f, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// streamLoop owns state exclusively from the moment handshake
// succeeds until it returns. It dispatches the actionable tags
// (spec: HeartbeatPing/Ack, Close, DataMessageStanza), drives the
// heartbeat ticker, and emits Events for the caller.
func streamLoop(ctx context.Context, fc *frameConn, cfg Config, state *State, creds Credentials, login mcs.LoginResponse, events chan<- Event) error {
	state.Conn = StateLoginOK
	if login.HeartbeatConfig != nil && login.HeartbeatConfig.IntervalMs > 0 {
		state.HeartbeatIntervalMS = login.HeartbeatConfig.IntervalMs
	} else {
		state.HeartbeatIntervalMS = int64(60 * time.Second / time.Millisecond)
	}

	interval := time.Duration(state.HeartbeatIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	frames := make(chan frameResult, 8)
	go readLoop(fc, frames, done)

	for {
		select {
		case <-ctx.Done():
			state.Conn = StateDraining
			return ErrCanceled

		case <-ticker.C:
			if state.UnackedHeartbeats >= 2 {
				return ErrSessionDead
			}
			ping := mcs.HeartbeatPing{StreamID: state.NextStreamID(), LastStreamIDReceived: state.StreamIDReceived}
			if err := fc.writeFrame(wire.Frame{Tag: wire.TagHeartbeatPing, Body: mcs.EncodeHeartbeatPing(ping)}); err != nil {
				return err
			}
			state.UnackedHeartbeats++
			observability.RecordHeartbeat("sent")

		case res := <-frames:
			if res.err != nil {
				return res.err
			}
			if err := dispatchFrame(fc, state, creds, res.frame, events); err != nil {
				return err
			}
		}
	}
}

func dispatchFrame(fc *frameConn, state *State, creds Credentials, f wire.Frame, events chan<- Event) error {
	state.ObserveIncoming()
	// spec §4.3 dead-man detection watches for any inbound traffic, not
	// specifically a HeartbeatAck: a live transport delivering
	// DataMessages proves liveness just as well as an ack does.
	state.UnackedHeartbeats = 0

	switch f.Tag {
	case wire.TagHeartbeatPing:
		ping, err := mcs.DecodeHeartbeatPing(f.Body)
		if err != nil {
			return err
		}
		ack := mcs.HeartbeatAck{StreamID: state.NextStreamID(), LastStreamIDReceived: ping.StreamID}
		return fc.writeFrame(wire.Frame{Tag: wire.TagHeartbeatAck, Body: mcs.EncodeHeartbeatAck(ack)})

	case wire.TagHeartbeatAck:
		ack, err := mcs.DecodeHeartbeatAck(f.Body)
		if err != nil {
			return err
		}
		if ack.LastStreamIDReceived > state.LastStreamIDAcked {
			state.LastStreamIDAcked = ack.LastStreamIDReceived
		}
		observability.RecordHeartbeat("received")
		events <- HeartbeatTickEvent{At: time.Now()}
		return nil

	case wire.TagClose:
		return ErrClosedByServer

	case wire.TagLoginResponse:
		return ErrUnexpectedLoginResponse

	case wire.TagDataMessageStanza:
		return dispatchDataMessage(state, creds, f.Body, events)

	default:
		return nil
	}
}

func dispatchDataMessage(state *State, creds Credentials, body []byte, events chan<- Event) error {
	msg, err := mcs.DecodeDataMessageStanza(body)
	if err != nil {
		return err
	}
	if err := mcs.ValidateDataMessageStanza(msg); err != nil {
		return err
	}
	if msg.PersistentID == "" {
		// spec §4.3: a DataMessage with no persistent_id is rejected,
		// not fatal.
		observability.RecordMessage("rejected_no_persistent_id")
		return nil
	}
	if !state.RecordPersistentID(msg.PersistentID) {
		observability.RecordMessage("duplicate")
		return nil // already delivered this session lineage, drop silently
	}

	appData := make(map[string]string, len(msg.AppData))
	for _, kv := range msg.AppData {
		appData[kv.Key] = kv.Value
	}

	plaintext, err := unwrapDataMessage(creds, appData, msg.RawData)
	if err != nil {
		observability.RecordMessage("decrypt_error")
		events <- DecryptErrorEvent{PersistentID: msg.PersistentID, Cause: err}
		return nil
	}
	observability.RecordMessage("delivered")
	events <- MessageEvent{
		PersistentID: msg.PersistentID,
		From:         msg.From,
		Category:     msg.Category,
		AppData:      appData,
		Payload:      plaintext,
		ReceivedAt:   time.Now(),
	}
	return nil
}

// unwrapDataMessage recovers the server's ephemeral public key and
// salt from appData's crypto-key/encryption headers (spec §3/§4.5)
// and feeds them, along with the receiver's Web Push key material,
// to the crypto unwrap step.
func unwrapDataMessage(creds Credentials, appData map[string]string, rawData []byte) ([]byte, error) {
	cryptoKeyHeader, ok := appData["crypto-key"]
	if !ok {
		return nil, cryptounwrap.ErrMalformedHeader
	}
	encryptionHeader, ok := appData["encryption"]
	if !ok {
		return nil, cryptounwrap.ErrMalformedHeader
	}
	serverPub, err := cryptounwrap.ParseCryptoKeyHeader(cryptoKeyHeader)
	if err != nil {
		return nil, err
	}
	salt, err := cryptounwrap.ParseEncryptionHeader(encryptionHeader)
	if err != nil {
		return nil, err
	}
	return cryptounwrap.Unwrap(cryptounwrap.Keys{
		PrivateKey: creds.P256DHPrivateKey,
		PublicKey:  creds.P256DHPublicKey,
		AuthSecret: creds.AuthSecret,
	}, serverPub, salt, rawData)
}
