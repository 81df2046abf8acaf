package registration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quietpush/fcmreceiver/internal/observability"
	"github.com/quietpush/fcmreceiver/internal/session"
)

// These are vars rather than consts so tests can redirect them at a
// local httptest server.
var (
	checkinURL              = "https://android.clients.google.com/checkin"
	gcmRegisterURL          = "https://android.clients.google.com/c2dm/register3"
	firebaseInstallationURL = "https://firebaseinstallations.googleapis.com/v1/"
	fcmRegistrationURL      = "https://fcmregistrations.googleapis.com/v1/"
)

const (
	chromeVersion          = "63.0.3234.0"
	checkinAPIVersion int32 = 3
)

// Options names the FCM/GCM project this client is registering
// against. SenderID and FirebaseProjectID/APIKey/AppID come from the
// caller's Firebase project configuration — they are not secrets this
// package can derive on its own.
type Options struct {
	SenderID          string
	FirebaseProjectID string
	FirebaseAPIKey    string
	FirebaseAppID     string
	HTTPClient        *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

// Client drives the checkin/register/install sequence. It holds no
// state between calls; Register is safe to call concurrently for
// distinct Options.
type Client struct{}

// NewClient returns a registration Client. It exists mainly so future
// shared state (a connection-pooled *http.Client, a rate limiter) has
// somewhere to live without changing Register's signature.
func NewClient() *Client { return &Client{} }

// Register runs checkin, GCM registration, Firebase installation and
// FCM registration in sequence, generating a fresh Web Push keypair
// along the way, and
// returns the Credentials a Listen call needs.
func (c *Client) Register(ctx context.Context, opts Options) (session.Credentials, error) {
	httpClient := opts.httpClient()

	checkin, err := doCheckin(ctx, httpClient)
	if err != nil {
		return session.Credentials{}, err
	}
	if checkin.AndroidID == 0 {
		return session.Credentials{}, ErrMissingAndroidID
	}

	gcmToken, err := doGCMRegister(ctx, httpClient, checkin, opts)
	if err != nil {
		return session.Credentials{}, err
	}

	keys, err := generateWebPushKeyPair()
	if err != nil {
		return session.Credentials{}, err
	}

	installAuthToken, err := doFCMInstall(ctx, httpClient, opts)
	if err != nil {
		return session.Credentials{}, err
	}

	fcmToken, err := doFCMRegister(ctx, httpClient, opts, installAuthToken, gcmToken, keys)
	if err != nil {
		return session.Credentials{}, err
	}

	return session.Credentials{
		AndroidID:         checkin.AndroidID,
		SecurityToken:     int64(checkin.SecurityToken),
		GCMRegistrationID: gcmToken,
		FCMToken:          fcmToken,
		P256DHPrivateKey:  keys.PrivateKey,
		P256DHPublicKey:   keys.PublicKey,
		AuthSecret:        keys.AuthSecret,
	}, nil
}

func doCheckin(ctx context.Context, httpClient *http.Client) (checkinResponse, error) {
	body := encodeCheckinRequest(checkinRequest{Version: checkinAPIVersion})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, checkinURL, bytes.NewReader(body))
	if err != nil {
		return checkinResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-protobuffer")

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		observability.RecordRegistrationRequest("checkin", 0, time.Since(start))
		return checkinResponse{}, fmt.Errorf("%w: %v", ErrCheckinFailed, err)
	}
	defer resp.Body.Close()
	observability.RecordRegistrationRequest("checkin", resp.StatusCode, time.Since(start))
	if resp.StatusCode/100 != 2 {
		return checkinResponse{}, fmt.Errorf("%w: status %s", ErrCheckinFailed, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return checkinResponse{}, fmt.Errorf("%w: %v", ErrCheckinFailed, err)
	}
	return decodeCheckinResponse(buf.Bytes())
}

func doGCMRegister(ctx context.Context, httpClient *http.Client, checkin checkinResponse, opts Options) (string, error) {
	form := url.Values{}
	form.Set("app", "org.chromium.linux")
	form.Set("X-subtype", opts.SenderID)
	form.Set("sender", opts.SenderID)
	form.Set("device", fmt.Sprintf("%d", checkin.AndroidID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gcmRegisterURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", fmt.Sprintf("AidLogin %d:%d", checkin.AndroidID, checkin.SecurityToken))

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		observability.RecordRegistrationRequest("gcm_register", 0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrGCMRegisterFailed, err)
	}
	defer resp.Body.Close()
	observability.RecordRegistrationRequest("gcm_register", resp.StatusCode, time.Since(start))
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: status %s", ErrGCMRegisterFailed, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGCMRegisterFailed, err)
	}
	const prefix = "token="
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: unexpected response %q", ErrGCMRegisterFailed, line)
	}
	return strings.TrimPrefix(line, prefix), nil
}

type fcmInstallRequest struct {
	FID         string `json:"fid"`
	AppID       string `json:"appId"`
	AuthVersion string `json:"authVersion"`
	SDKVersion  string `json:"sdkVersion"`
}

type fcmInstallResponse struct {
	Name      string `json:"name"`
	FID       string `json:"fid"`
	AuthToken struct {
		Token string `json:"token"`
	} `json:"authToken"`
}

// doFCMInstall creates a Firebase installation for this app instance,
// returning the auth token that authenticates doFCMRegister's
// follow-up call. This is the first of the two calls spec.md §4.6
// point 3 requires — it proves the app instance exists but says
// nothing about the push endpoint yet.
func doFCMInstall(ctx context.Context, httpClient *http.Client, opts Options) (authToken string, err error) {
	reqBody := fcmInstallRequest{
		AppID:       opts.FirebaseAppID,
		AuthVersion: "FIS_v2",
		SDKVersion:  "w:" + chromeVersion,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := firebaseInstallationURL + "projects/" + opts.FirebaseProjectID + "/installations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", opts.FirebaseAPIKey)

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		observability.RecordRegistrationRequest("fcm_install", 0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrFCMInstallFailed, err)
	}
	defer resp.Body.Close()
	observability.RecordRegistrationRequest("fcm_install", resp.StatusCode, time.Since(start))
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: status %s", ErrFCMInstallFailed, resp.Status)
	}

	var out fcmInstallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFCMInstallFailed, err)
	}
	if out.AuthToken.Token == "" {
		return "", fmt.Errorf("%w: response missing authToken", ErrFCMInstallFailed)
	}
	return out.AuthToken.Token, nil
}

type fcmRegisterRequest struct {
	Web fcmRegisterWeb `json:"web"`
}

type fcmRegisterWeb struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

type fcmRegisterResponse struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// doFCMRegister is the second of spec.md §4.6 point 3's two calls: it
// hands the Firebase FCM registrations endpoint the GCM registration
// id (wrapped as a Web Push endpoint URL) and the receiver's P-256
// public key/auth_secret, so senders encrypting against that key reach
// this device. The response's token becomes Credentials.FCMToken, the
// token the caller's own push-sending code addresses.
func doFCMRegister(ctx context.Context, httpClient *http.Client, opts Options, installAuthToken, gcmToken string, keys webPushKeyPair) (string, error) {
	reqBody := fcmRegisterRequest{Web: fcmRegisterWeb{
		Endpoint: "https://fcm.googleapis.com/fcm/send/" + gcmToken,
		P256DH:   base64.RawURLEncoding.EncodeToString(keys.PublicKey),
		Auth:     base64.RawURLEncoding.EncodeToString(keys.AuthSecret),
	}}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fcmRegistrationURL + "projects/" + opts.FirebaseProjectID + "/registrations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", opts.FirebaseAPIKey)
	req.Header.Set("x-goog-firebase-installations-auth", "FIS_v2 "+installAuthToken)

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		observability.RecordRegistrationRequest("fcm_register", 0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrFCMInstallFailed, err)
	}
	defer resp.Body.Close()
	observability.RecordRegistrationRequest("fcm_register", resp.StatusCode, time.Since(start))
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: status %s", ErrFCMInstallFailed, resp.Status)
	}

	var out fcmRegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFCMInstallFailed, err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: response missing token", ErrFCMInstallFailed)
	}
	return out.Token, nil
}
