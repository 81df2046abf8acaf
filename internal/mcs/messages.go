package mcs

// Setting is a name/value pair the server pushes down inside a
// LoginResponse (e.g. "new_vc" feature flags).
type Setting struct {
	Name  string
	Value string
}

// AppData is one key/value entry of a DataMessageStanza's payload.
type AppData struct {
	Key   string
	Value string
}

// ErrorInfo carries a login failure's code and message.
type ErrorInfo struct {
	Code    int32
	Message string
	Type    string
}

// HeartbeatConfig is the server's requested heartbeat interval,
// carried as an extension field on LoginResponse.
type HeartbeatConfig struct {
	IntervalMs int64
}

// LoginRequest is the first frame the client sends once the TLS
// connection to mtalk.google.com is established.
type LoginRequest struct {
	ID                    string
	Domain                string
	User                  string
	Resource              string
	AuthToken             string
	DeviceID              string
	LastRMQID             int64
	Settings              []Setting
	ReceivedPersistentIDs []string
	AdaptiveHeartbeat     bool
	UseRMQ2               bool
	AccountID             int64
	NetworkType           int32
}

// LoginResponse is the server's answer to LoginRequest. A non-nil
// Error means the login was rejected.
type LoginResponse struct {
	ID                    string
	JID                   string
	Error                 *ErrorInfo
	Settings              []Setting
	HeartbeatConfig       *HeartbeatConfig
	StreamID              int32
	LastStreamIDReceived  int32
	ServerTimestampMillis int64
}

// HeartbeatPing is sent by either peer to probe liveness.
type HeartbeatPing struct {
	StreamID             int32
	LastStreamIDReceived int32
	Status               int64
}

// HeartbeatAck answers a HeartbeatPing.
type HeartbeatAck struct {
	StreamID             int32
	LastStreamIDReceived int32
	Status               int64
}

// Close carries no fields; its presence on the wire is the signal.
type Close struct{}

// DataMessageStanza is a delivered push notification payload,
// typically followed by a Crypto Unwrap step over RawData.
type DataMessageStanza struct {
	ID                   string
	From                 string
	To                   string
	Category             string
	Token                string
	AppData              []AppData
	PersistentID         string
	StreamID             int32
	LastStreamIDReceived int32
	TTL                  int32
	Sent                 int64
	RawData              []byte
	ImmediateAck         bool
}
