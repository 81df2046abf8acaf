package session

import "fmt"

// ConnState is the connection's lifecycle stage. A single goroutine
// owns transitions.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateHandshakeSent
	StateLoginOK
	StateDraining
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateHandshakeSent:
		return "handshake_sent"
	case StateLoginOK:
		return "login_ok"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// State is the mutable bookkeeping one live MTalk connection
// accumulates. It is owned exclusively by the goroutine running the
// handshake driver and stream loop; the reader goroutine feeding
// frames in never touches it.
type State struct {
	Conn ConnState

	StreamIDSent     int32
	StreamIDReceived int32
	LastStreamIDAcked int32

	HeartbeatIntervalMS int64
	UnackedHeartbeats   int

	ReceivedPersistentIDs []string
}

// NewState seeds a State from a resume point (possibly zero-valued,
// for a first-ever connection).
func NewState(resume ResumeState) *State {
	ids := make([]string, len(resume.ReceivedPersistentIDs))
	copy(ids, resume.ReceivedPersistentIDs)
	return &State{
		Conn:                  StateConnecting,
		StreamIDReceived:      resume.LastStreamIDReceived,
		LastStreamIDAcked:     resume.LastStreamIDReceived,
		ReceivedPersistentIDs: ids,
	}
}

// NextStreamID advances and returns the id for a frame this client is
// about to send. MCS stream ids start at 1.
func (s *State) NextStreamID() int32 {
	s.StreamIDSent++
	return s.StreamIDSent
}

// ObserveIncoming records that a frame counting toward the stream id
// sequence was received.
func (s *State) ObserveIncoming() {
	s.StreamIDReceived++
}

// RecordPersistentID appends id to the received list, capped at
// MaxReceivedPersistentIDs, and reports whether id was new (the
// caller should only act on a DataMessageStanza the first time its
// persistent id is seen).
func (s *State) RecordPersistentID(id string) bool {
	if id == "" {
		return false
	}
	for _, existing := range s.ReceivedPersistentIDs {
		if existing == id {
			return false
		}
	}
	s.ReceivedPersistentIDs = append(s.ReceivedPersistentIDs, id)
	if len(s.ReceivedPersistentIDs) > MaxReceivedPersistentIDs {
		s.ReceivedPersistentIDs = s.ReceivedPersistentIDs[len(s.ReceivedPersistentIDs)-MaxReceivedPersistentIDs:]
	}
	return true
}

// Resume captures the fields a future reconnect needs to carry
// forward.
func (s *State) Resume(creds Credentials) ResumeState {
	ids := make([]string, len(s.ReceivedPersistentIDs))
	copy(ids, s.ReceivedPersistentIDs)
	return ResumeState{
		Credentials:           creds,
		ReceivedPersistentIDs: ids,
		LastStreamIDReceived:  s.StreamIDReceived,
	}
}
