package commands

import (
	"encoding/base64"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quietpush/fcmreceiver"
)

func listenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Hold an MCS session open and print decrypted messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok, err := loadState(home)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no saved credentials in %s; run 'fcmlisten register' first", home)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			events := make(chan fcmreceiver.Event, 16)
			done := make(chan error, 1)
			go func() {
				done <- fcmreceiver.Listen(ctx, st.Credentials, st.Resume, events)
			}()

			for {
				select {
				case ev := <-events:
					handleEvent(ev)
				case err := <-done:
					return err
				case <-ctx.Done():
					return <-done
				}
			}
		},
	}
	return cmd
}

func handleEvent(ev fcmreceiver.Event) {
	switch e := ev.(type) {
	case fcmreceiver.MessageEvent:
		fmt.Printf("message from=%s category=%s payload=%s\n", e.From, e.Category, base64.StdEncoding.EncodeToString(e.Payload))
	case fcmreceiver.HeartbeatTickEvent:
		log.Debug().Time("at", e.At).Msg("heartbeat ack")
	case fcmreceiver.ReconnectingEvent:
		log.Warn().Int("attempt", e.Attempt).Dur("delay", e.Delay).Err(e.Cause).Msg("reconnecting")
	case fcmreceiver.AuthExpiredEvent:
		log.Error().Err(e.Cause).Msg("credentials rejected, run register again")
	case fcmreceiver.DecryptErrorEvent:
		log.Error().Str("persistent_id", e.PersistentID).Err(e.Cause).Msg("failed to decrypt message")
	}
}
