package mcs

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers, one const block per message type, kept local to this
// file's encode/decode pair so the wire layout for each message lives
// next to the code that produces and consumes it.

const (
	loginReqID                = 1
	loginReqDomain            = 2
	loginReqUser              = 3
	loginReqResource          = 4
	loginReqAuthToken         = 5
	loginReqDeviceID          = 6
	loginReqLastRMQID         = 7
	loginReqSetting           = 10
	loginReqReceivedPersistID = 12
	loginReqAdaptiveHeartbeat = 14
	loginReqUseRMQ2           = 16
	loginReqAccountID         = 17
	loginReqNetworkType       = 19
)

const (
	loginRespID              = 1
	loginRespJID             = 2
	loginRespError           = 3
	loginRespSetting         = 5
	loginRespHeartbeatConfig = 6
	loginRespStreamID        = 7
	loginRespLastStreamID    = 8
	loginRespServerTimestamp = 9
)

const (
	settingName  = 1
	settingValue = 2
)

const (
	errorInfoCode    = 1
	errorInfoMessage = 2
	errorInfoType    = 3
)

const (
	heartbeatConfigIntervalMs = 1
)

const (
	heartbeatStreamID      = 1
	heartbeatLastStreamID  = 2
	heartbeatStatus        = 3
)

const (
	dataMsgID                   = 1
	dataMsgFrom                 = 2
	dataMsgTo                   = 3
	dataMsgCategory              = 4
	dataMsgToken                 = 5
	dataMsgAppData               = 6
	dataMsgPersistentID          = 8
	dataMsgStreamID              = 9
	dataMsgLastStreamIDReceived  = 10
	dataMsgTTL                   = 14
	dataMsgSent                  = 15
	dataMsgRawData               = 18
	dataMsgImmediateAck          = 19
)

const (
	appDataKey   = 1
	appDataValue = 2
)

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendMessage(b []byte, num protowire.Number, body []byte) []byte {
	if body == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, body)
}

func encodeSetting(s Setting) []byte {
	var b []byte
	b = appendString(b, settingName, s.Name)
	b = appendString(b, settingValue, s.Value)
	return b
}

func encodeAppData(a AppData) []byte {
	var b []byte
	b = appendString(b, appDataKey, a.Key)
	b = appendString(b, appDataValue, a.Value)
	return b
}

func encodeErrorInfo(e ErrorInfo) []byte {
	var b []byte
	b = appendVarint(b, errorInfoCode, uint64(uint32(e.Code)))
	b = appendString(b, errorInfoMessage, e.Message)
	b = appendString(b, errorInfoType, e.Type)
	return b
}

func encodeHeartbeatConfig(h HeartbeatConfig) []byte {
	var b []byte
	b = appendVarint(b, heartbeatConfigIntervalMs, uint64(h.IntervalMs))
	return b
}

// EncodeLoginRequest serializes req as an MCS LoginRequest body.
func EncodeLoginRequest(req LoginRequest) []byte {
	var b []byte
	b = appendString(b, loginReqID, req.ID)
	b = appendString(b, loginReqDomain, req.Domain)
	b = appendString(b, loginReqUser, req.User)
	b = appendString(b, loginReqResource, req.Resource)
	b = appendString(b, loginReqAuthToken, req.AuthToken)
	b = appendString(b, loginReqDeviceID, req.DeviceID)
	b = appendVarint(b, loginReqLastRMQID, uint64(req.LastRMQID))
	for _, s := range req.Settings {
		b = appendMessage(b, loginReqSetting, encodeSetting(s))
	}
	for _, id := range req.ReceivedPersistentIDs {
		b = appendString(b, loginReqReceivedPersistID, id)
	}
	b = appendBool(b, loginReqAdaptiveHeartbeat, req.AdaptiveHeartbeat)
	b = appendBool(b, loginReqUseRMQ2, req.UseRMQ2)
	b = appendVarint(b, loginReqAccountID, uint64(req.AccountID))
	b = appendVarint(b, loginReqNetworkType, uint64(uint32(req.NetworkType)))
	return b
}

// EncodeLoginResponse serializes resp as an MCS LoginResponse body.
func EncodeLoginResponse(resp LoginResponse) []byte {
	var b []byte
	b = appendString(b, loginRespID, resp.ID)
	b = appendString(b, loginRespJID, resp.JID)
	if resp.Error != nil {
		b = appendMessage(b, loginRespError, encodeErrorInfo(*resp.Error))
	}
	for _, s := range resp.Settings {
		b = appendMessage(b, loginRespSetting, encodeSetting(s))
	}
	if resp.HeartbeatConfig != nil {
		b = appendMessage(b, loginRespHeartbeatConfig, encodeHeartbeatConfig(*resp.HeartbeatConfig))
	}
	b = appendVarint(b, loginRespStreamID, uint64(uint32(resp.StreamID)))
	b = appendVarint(b, loginRespLastStreamID, uint64(uint32(resp.LastStreamIDReceived)))
	b = appendVarint(b, loginRespServerTimestamp, uint64(resp.ServerTimestampMillis))
	return b
}

// EncodeHeartbeatPing serializes p as an MCS HeartbeatPing body.
func EncodeHeartbeatPing(p HeartbeatPing) []byte {
	var b []byte
	b = appendVarint(b, heartbeatStreamID, uint64(uint32(p.StreamID)))
	b = appendVarint(b, heartbeatLastStreamID, uint64(uint32(p.LastStreamIDReceived)))
	b = appendVarint(b, heartbeatStatus, uint64(p.Status))
	return b
}

// EncodeHeartbeatAck serializes a as an MCS HeartbeatAck body.
func EncodeHeartbeatAck(a HeartbeatAck) []byte {
	var b []byte
	b = appendVarint(b, heartbeatStreamID, uint64(uint32(a.StreamID)))
	b = appendVarint(b, heartbeatLastStreamID, uint64(uint32(a.LastStreamIDReceived)))
	b = appendVarint(b, heartbeatStatus, uint64(a.Status))
	return b
}

// EncodeClose serializes the (empty) Close message.
func EncodeClose(Close) []byte {
	return []byte{}
}

// EncodeDataMessageStanza serializes m as an MCS DataMessageStanza body.
func EncodeDataMessageStanza(m DataMessageStanza) []byte {
	var b []byte
	b = appendString(b, dataMsgID, m.ID)
	b = appendString(b, dataMsgFrom, m.From)
	b = appendString(b, dataMsgTo, m.To)
	b = appendString(b, dataMsgCategory, m.Category)
	b = appendString(b, dataMsgToken, m.Token)
	for _, a := range m.AppData {
		b = appendMessage(b, dataMsgAppData, encodeAppData(a))
	}
	b = appendString(b, dataMsgPersistentID, m.PersistentID)
	b = appendVarint(b, dataMsgStreamID, uint64(uint32(m.StreamID)))
	b = appendVarint(b, dataMsgLastStreamIDReceived, uint64(uint32(m.LastStreamIDReceived)))
	b = appendVarint(b, dataMsgTTL, uint64(uint32(m.TTL)))
	b = appendVarint(b, dataMsgSent, uint64(m.Sent))
	b = appendBytes(b, dataMsgRawData, m.RawData)
	b = appendBool(b, dataMsgImmediateAck, m.ImmediateAck)
	return b
}
