package session

// Credentials is everything Register produces and Listen needs to
// open an MTalk session and decrypt the messages it receives:
// identity issued at checkin, the FCM token messages are addressed
// to, and the Web Push keypair/auth secret the sender encrypted
// against.
type Credentials struct {
	AndroidID         int64
	SecurityToken     int64
	GCMRegistrationID string
	FCMToken          string

	// WebPush key material, generated locally during Register and
	// never sent anywhere but the FCM registrations call (the public
	// key and auth secret) and the app server out of band (by the
	// caller).
	P256DHPrivateKey []byte // raw ECDH P-256 private scalar
	P256DHPublicKey  []byte // uncompressed point, sent as p256dh
	AuthSecret       []byte // 16 random bytes, sent as auth
}

// MaxReceivedPersistentIDs bounds how many persistent ids a ResumeState
// carries across reconnects; beyond this the server is expected to
// have long since stopped sending the oldest ones again.
const MaxReceivedPersistentIDs = 1000

// ResumeState lets Listen pick a session back up after a reconnect
// without redelivering messages the caller already saw.
type ResumeState struct {
	Credentials            Credentials
	ReceivedPersistentIDs  []string
	LastStreamIDReceived   int32
}

// AddPersistentID records id as received, dropping the oldest entry
// once the list reaches MaxReceivedPersistentIDs.
func (r *ResumeState) AddPersistentID(id string) {
	if id == "" {
		return
	}
	for _, existing := range r.ReceivedPersistentIDs {
		if existing == id {
			return
		}
	}
	r.ReceivedPersistentIDs = append(r.ReceivedPersistentIDs, id)
	if len(r.ReceivedPersistentIDs) > MaxReceivedPersistentIDs {
		r.ReceivedPersistentIDs = r.ReceivedPersistentIDs[len(r.ReceivedPersistentIDs)-MaxReceivedPersistentIDs:]
	}
}
