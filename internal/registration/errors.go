// Package registration drives the four sequential HTTPS calls that
// turn a bare device into something MTalk will let log in: an Android
// checkin (issuing android_id/security_token), a GCM registration
// (issuing a registration id), a Firebase installation (issuing the
// auth token for the next call), and an FCM registration (issuing the
// token messages are addressed to).
package registration

import "errors"

var (
	// ErrCheckinFailed wraps a non-2xx response from the checkin endpoint.
	ErrCheckinFailed = errors.New("registration: checkin request failed")
	// ErrGCMRegisterFailed wraps a non-2xx response from the GCM
	// register3 endpoint, or a response body missing "token=".
	ErrGCMRegisterFailed = errors.New("registration: gcm register failed")
	// ErrFCMInstallFailed wraps a failed call to the Firebase
	// installations endpoint or the FCM registrations endpoint.
	ErrFCMInstallFailed = errors.New("registration: fcm installation failed")
	// ErrMissingAndroidID means the checkin response carried no
	// android_id, which every later step depends on.
	ErrMissingAndroidID = errors.New("registration: checkin response missing android_id")
)
