package mcs

import "google.golang.org/protobuf/encoding/protowire"

// eachField walks b tag by tag, invoking fn with the field number, its
// wire type and the remaining bytes positioned just after the tag.
// fn returns how many bytes it consumed from that position; eachField
// advances past that and continues. A negative return from fn (or
// from the underlying protowire consume calls) aborts with
// ErrTruncated.
func eachField(b []byte, fn func(num protowire.Number, typ protowire.Type, rest []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ErrTruncated
		}
		b = b[n:]
		consumed, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if consumed < 0 || consumed > len(b) {
			return ErrTruncated
		}
		b = b[consumed:]
	}
	return nil
}

func skipField(typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return 0, ErrUnknownWireType
	}
	return n, nil
}

func consumeString(b []byte) (string, int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", 0, ErrTruncated
	}
	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, ErrTruncated
	}
	return v, n, nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, ErrTruncated
	}
	return v, n, nil
}

func decodeSetting(body []byte) (Setting, error) {
	var s Setting
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case settingName:
			v, n, err := consumeString(rest)
			s.Name = v
			return n, err
		case settingValue:
			v, n, err := consumeString(rest)
			s.Value = v
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return s, err
}

func decodeAppData(body []byte) (AppData, error) {
	var a AppData
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case appDataKey:
			v, n, err := consumeString(rest)
			a.Key = v
			return n, err
		case appDataValue:
			v, n, err := consumeString(rest)
			a.Value = v
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return a, err
}

func decodeErrorInfo(body []byte) (ErrorInfo, error) {
	var e ErrorInfo
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case errorInfoCode:
			v, n, err := consumeVarint(rest)
			e.Code = int32(v)
			return n, err
		case errorInfoMessage:
			v, n, err := consumeString(rest)
			e.Message = v
			return n, err
		case errorInfoType:
			v, n, err := consumeString(rest)
			e.Type = v
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return e, err
}

func decodeHeartbeatConfig(body []byte) (HeartbeatConfig, error) {
	var h HeartbeatConfig
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case heartbeatConfigIntervalMs:
			v, n, err := consumeVarint(rest)
			h.IntervalMs = int64(v)
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return h, err
}

// DecodeLoginRequest parses body as an MCS LoginRequest.
func DecodeLoginRequest(body []byte) (LoginRequest, error) {
	var req LoginRequest
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case loginReqID:
			v, n, err := consumeString(rest)
			req.ID = v
			return n, err
		case loginReqDomain:
			v, n, err := consumeString(rest)
			req.Domain = v
			return n, err
		case loginReqUser:
			v, n, err := consumeString(rest)
			req.User = v
			return n, err
		case loginReqResource:
			v, n, err := consumeString(rest)
			req.Resource = v
			return n, err
		case loginReqAuthToken:
			v, n, err := consumeString(rest)
			req.AuthToken = v
			return n, err
		case loginReqDeviceID:
			v, n, err := consumeString(rest)
			req.DeviceID = v
			return n, err
		case loginReqLastRMQID:
			v, n, err := consumeVarint(rest)
			req.LastRMQID = int64(v)
			return n, err
		case loginReqSetting:
			raw, n, err := consumeBytes(rest)
			if err != nil {
				return n, err
			}
			s, derr := decodeSetting(raw)
			if derr != nil {
				return n, derr
			}
			req.Settings = append(req.Settings, s)
			return n, nil
		case loginReqReceivedPersistID:
			v, n, err := consumeString(rest)
			req.ReceivedPersistentIDs = append(req.ReceivedPersistentIDs, v)
			return n, err
		case loginReqAdaptiveHeartbeat:
			v, n, err := consumeVarint(rest)
			req.AdaptiveHeartbeat = v != 0
			return n, err
		case loginReqUseRMQ2:
			v, n, err := consumeVarint(rest)
			req.UseRMQ2 = v != 0
			return n, err
		case loginReqAccountID:
			v, n, err := consumeVarint(rest)
			req.AccountID = int64(v)
			return n, err
		case loginReqNetworkType:
			v, n, err := consumeVarint(rest)
			req.NetworkType = int32(v)
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return req, err
}

// DecodeLoginResponse parses body as an MCS LoginResponse.
func DecodeLoginResponse(body []byte) (LoginResponse, error) {
	var resp LoginResponse
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case loginRespID:
			v, n, err := consumeString(rest)
			resp.ID = v
			return n, err
		case loginRespJID:
			v, n, err := consumeString(rest)
			resp.JID = v
			return n, err
		case loginRespError:
			raw, n, err := consumeBytes(rest)
			if err != nil {
				return n, err
			}
			e, derr := decodeErrorInfo(raw)
			if derr != nil {
				return n, derr
			}
			resp.Error = &e
			return n, nil
		case loginRespSetting:
			raw, n, err := consumeBytes(rest)
			if err != nil {
				return n, err
			}
			s, derr := decodeSetting(raw)
			if derr != nil {
				return n, derr
			}
			resp.Settings = append(resp.Settings, s)
			return n, nil
		case loginRespHeartbeatConfig:
			raw, n, err := consumeBytes(rest)
			if err != nil {
				return n, err
			}
			h, derr := decodeHeartbeatConfig(raw)
			if derr != nil {
				return n, derr
			}
			resp.HeartbeatConfig = &h
			return n, nil
		case loginRespStreamID:
			v, n, err := consumeVarint(rest)
			resp.StreamID = int32(v)
			return n, err
		case loginRespLastStreamID:
			v, n, err := consumeVarint(rest)
			resp.LastStreamIDReceived = int32(v)
			return n, err
		case loginRespServerTimestamp:
			v, n, err := consumeVarint(rest)
			resp.ServerTimestampMillis = int64(v)
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return resp, err
}

// DecodeHeartbeatPing parses body as an MCS HeartbeatPing.
func DecodeHeartbeatPing(body []byte) (HeartbeatPing, error) {
	var p HeartbeatPing
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case heartbeatStreamID:
			v, n, err := consumeVarint(rest)
			p.StreamID = int32(v)
			return n, err
		case heartbeatLastStreamID:
			v, n, err := consumeVarint(rest)
			p.LastStreamIDReceived = int32(v)
			return n, err
		case heartbeatStatus:
			v, n, err := consumeVarint(rest)
			p.Status = int64(v)
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return p, err
}

// DecodeHeartbeatAck parses body as an MCS HeartbeatAck.
func DecodeHeartbeatAck(body []byte) (HeartbeatAck, error) {
	var a HeartbeatAck
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case heartbeatStreamID:
			v, n, err := consumeVarint(rest)
			a.StreamID = int32(v)
			return n, err
		case heartbeatLastStreamID:
			v, n, err := consumeVarint(rest)
			a.LastStreamIDReceived = int32(v)
			return n, err
		case heartbeatStatus:
			v, n, err := consumeVarint(rest)
			a.Status = int64(v)
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return a, err
}

// DecodeClose parses body as an MCS Close. Close carries no fields;
// any bytes present are unknown fields and skipped.
func DecodeClose(body []byte) (Close, error) {
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		return skipField(typ, rest)
	})
	return Close{}, err
}

// DecodeDataMessageStanza parses body as an MCS DataMessageStanza.
func DecodeDataMessageStanza(body []byte) (DataMessageStanza, error) {
	var m DataMessageStanza
	err := eachField(body, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case dataMsgID:
			v, n, err := consumeString(rest)
			m.ID = v
			return n, err
		case dataMsgFrom:
			v, n, err := consumeString(rest)
			m.From = v
			return n, err
		case dataMsgTo:
			v, n, err := consumeString(rest)
			m.To = v
			return n, err
		case dataMsgCategory:
			v, n, err := consumeString(rest)
			m.Category = v
			return n, err
		case dataMsgToken:
			v, n, err := consumeString(rest)
			m.Token = v
			return n, err
		case dataMsgAppData:
			raw, n, err := consumeBytes(rest)
			if err != nil {
				return n, err
			}
			a, derr := decodeAppData(raw)
			if derr != nil {
				return n, derr
			}
			m.AppData = append(m.AppData, a)
			return n, nil
		case dataMsgPersistentID:
			v, n, err := consumeString(rest)
			m.PersistentID = v
			return n, err
		case dataMsgStreamID:
			v, n, err := consumeVarint(rest)
			m.StreamID = int32(v)
			return n, err
		case dataMsgLastStreamIDReceived:
			v, n, err := consumeVarint(rest)
			m.LastStreamIDReceived = int32(v)
			return n, err
		case dataMsgTTL:
			v, n, err := consumeVarint(rest)
			m.TTL = int32(v)
			return n, err
		case dataMsgSent:
			v, n, err := consumeVarint(rest)
			m.Sent = int64(v)
			return n, err
		case dataMsgRawData:
			v, n, err := consumeBytes(rest)
			m.RawData = v
			return n, err
		case dataMsgImmediateAck:
			v, n, err := consumeVarint(rest)
			m.ImmediateAck = v != 0
			return n, err
		default:
			return skipField(typ, rest)
		}
	})
	return m, err
}
