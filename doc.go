// Package fcmreceiver implements a headless FCM/MTalk push client: it
// registers a synthetic Android device against Google's checkin/GCM/
// Firebase Installations endpoints, then holds a persistent MCS
// session to mtalk.google.com, decrypting each Web Push message
// (RFC 8188/8291) as it arrives and delivering it as an Event.
//
// A typical caller registers once, persists the returned Credentials,
// then calls Listen on every subsequent run:
//
//	creds, err := fcmreceiver.Register(ctx, fcmreceiver.Options{
//		SenderID:          "1234567890",
//		FirebaseProjectID: "my-project",
//		FirebaseAPIKey:    "AIza...",
//		FirebaseAppID:     "1:1234567890:web:abc123",
//	})
//	events := make(chan fcmreceiver.Event, 16)
//	err = fcmreceiver.Listen(ctx, creds, fcmreceiver.ResumeState{}, events)
package fcmreceiver
