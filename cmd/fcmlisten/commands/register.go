package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietpush/fcmreceiver"
)

func registerCmd() *cobra.Command {
	var senderID, projectID, apiKey, appID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Run checkin/GCM-register/FCM-install once and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(home)
			if err != nil {
				return err
			}
			if senderID != "" {
				cfg.SenderID = senderID
			}
			if projectID != "" {
				cfg.FirebaseProjectID = projectID
			}
			if apiKey != "" {
				cfg.FirebaseAPIKey = apiKey
			}
			if appID != "" {
				cfg.FirebaseAppID = appID
			}
			if cfg.SenderID == "" || cfg.FirebaseProjectID == "" || cfg.FirebaseAPIKey == "" {
				return fmt.Errorf("sender id, firebase project id and api key are required (flags or %s)", configFilename)
			}
			if err := saveProjectConfig(home, cfg); err != nil {
				return err
			}

			creds, err := fcmreceiver.Register(cmd.Context(), fcmreceiver.Options{
				SenderID:          cfg.SenderID,
				FirebaseProjectID: cfg.FirebaseProjectID,
				FirebaseAPIKey:    cfg.FirebaseAPIKey,
				FirebaseAppID:     cfg.FirebaseAppID,
			})
			if err != nil {
				return err
			}

			if err := saveState(home, sessionState{Credentials: creds}); err != nil {
				return err
			}
			fmt.Printf("registered android_id=%d fcm_token=%s\n", creds.AndroidID, creds.FCMToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&senderID, "sender-id", "", "GCM/FCM sender ID")
	cmd.Flags().StringVar(&projectID, "firebase-project-id", "", "Firebase project ID")
	cmd.Flags().StringVar(&apiKey, "firebase-api-key", "", "Firebase web API key")
	cmd.Flags().StringVar(&appID, "firebase-app-id", "", "Firebase app ID")
	return cmd
}
