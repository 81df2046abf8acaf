package registration

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers for the subset of AndroidCheckinRequest/Response this
// client depends on: enough to identify the device as a Chrome-style
// GCM client and to receive back the android_id/security_token pair
// LoginRequest needs.
const (
	checkinReqID            = 2
	checkinReqSecurityToken = 5
	checkinReqVersion       = 6
	checkinReqFragment      = 8

	checkinRespID            = 7
	checkinRespSecurityToken = 8
)

type checkinRequest struct {
	AndroidID     int64 // 0 requests a new identity
	SecurityToken uint64
	Version       int32
}

func encodeCheckinRequest(req checkinRequest) []byte {
	var b []byte
	b = appendVarintField(b, checkinReqID, uint64(req.AndroidID))
	b = appendVarintField(b, checkinReqSecurityToken, req.SecurityToken)
	b = appendVarintField(b, checkinReqVersion, uint64(uint32(req.Version)))
	b = appendVarintField(b, checkinReqFragment, 0)
	return b
}

type checkinResponse struct {
	AndroidID     int64
	SecurityToken uint64
}

func decodeCheckinResponse(body []byte) (checkinResponse, error) {
	var resp checkinResponse
	b := body
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return checkinResponse{}, ErrCheckinFailed
		}
		b = b[n:]
		switch num {
		case checkinRespID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return checkinResponse{}, ErrCheckinFailed
			}
			resp.AndroidID = int64(v)
			b = b[n:]
		case checkinRespSecurityToken:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return checkinResponse{}, ErrCheckinFailed
			}
			resp.SecurityToken = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return checkinResponse{}, ErrCheckinFailed
			}
			b = b[n:]
		}
	}
	return resp, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
