package mcs

import "fmt"

// RequiredFieldError names the message and field that Validate found
// missing. Mirrors the shape of a schema validation failure: message
// kind plus the one field that was absent.
type RequiredFieldError struct {
	Message string
	Field   string
}

func (e RequiredFieldError) Error() string {
	return fmt.Sprintf("mcs: %s missing required field %q", e.Message, e.Field)
}

// Unwrap lets errors.Is match a RequiredFieldError against
// ErrMissingField.
func (e RequiredFieldError) Unwrap() error {
	return ErrMissingField
}

// ValidateLoginRequest enforces the fields the server rejects a login
// without: auth_token, device_id and the id that identifies the
// client must be present.
func ValidateLoginRequest(req LoginRequest) error {
	switch {
	case req.AuthToken == "":
		return RequiredFieldError{Message: "LoginRequest", Field: "auth_token"}
	case req.DeviceID == "":
		return RequiredFieldError{Message: "LoginRequest", Field: "device_id"}
	case req.ID == "":
		return RequiredFieldError{Message: "LoginRequest", Field: "id"}
	}
	return nil
}

// ValidateLoginResponse enforces that a successful LoginResponse (one
// with no Error) carries the fields the handshake driver depends on.
func ValidateLoginResponse(resp LoginResponse) error {
	if resp.Error != nil {
		return nil
	}
	if resp.ID == "" {
		return RequiredFieldError{Message: "LoginResponse", Field: "id"}
	}
	return nil
}

// ValidateDataMessageStanza enforces the fields the crypto-unwrap
// stage depends on to even attempt a decrypt. A missing persistent_id
// is not treated as a schema error here: spec §4.3 has the stream
// loop silently reject (not fail) a DataMessageStanza with no
// persistent_id, so that case is left to the caller's dedupe step.
func ValidateDataMessageStanza(m DataMessageStanza) error {
	if len(m.RawData) == 0 {
		return RequiredFieldError{Message: "DataMessageStanza", Field: "raw_data"}
	}
	return nil
}
