package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/core/lead"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/hub"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/wire"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow lead events live",
	Long: `Tail the audit trail and print lead events as JSON lines until
interrupted. Filters select which events this subscriber receives; a filtered
event is simply not delivered, there is no offline queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := actorContext()
		if err != nil {
			return err
		}

		workerIDs, _ := cmd.Flags().GetInt64Slice("worker")
		roles, _ := cmd.Flags().GetStringSlice("role")
		excludeRoles, _ := cmd.Flags().GetStringSlice("exclude-role")
		interval, _ := cmd.Flags().GetDuration("interval")

		events := wire.EventHub()
		connID := uuid.NewString()

		out := json.NewEncoder(os.Stdout)
		events.Subscribe(connID, cfg.ActorID, cfg.Role, func(event hub.Event) error {
			return out.Encode(event)
		})
		defer events.Unsubscribe(connID)

		// Remember where the trail ends now; only new entries are reported.
		lastSeq := int64(0)
		existing, err := wire.LeadService().Trail(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to read audit trail: %w", err)
		}
		if len(existing) > 0 {
			lastSeq = existing[len(existing)-1].Seq
		}

		filter := hub.Filter{WorkerIDs: workerIDs, Roles: roles, ExcludeRoles: excludeRoles}

		fmt.Fprintf(os.Stderr, "watching as worker %d (%s), Ctrl-C to stop\n", cfg.ActorID, cfg.Role)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return nil
			case <-ticker.C:
				entries, err := wire.LeadService().Trail(ctx, lastSeq)
				if err != nil {
					fmt.Fprintf(os.Stderr, "watch: %v\n", err)
					continue
				}
				for _, entry := range entries {
					lastSeq = entry.Seq
					events.Publish(eventTypeFor(entry.Action), entry, filter)
				}
			}
		}
	},
}

// eventTypeFor maps an audit action onto the published event type.
func eventTypeFor(action string) string {
	switch action {
	case lead.ActionCreate:
		return hub.EventLeadCreated
	case lead.ActionClaim:
		return hub.EventLeadClaimed
	case lead.ActionRelease:
		return hub.EventLeadReleased
	case lead.ActionDestroy:
		return hub.EventLeadDeleted
	default:
		return hub.EventLeadUpdated
	}
}

func init() {
	watchCmd.Flags().Int64Slice("worker", nil, "Deliver only to these worker IDs")
	watchCmd.Flags().StringSlice("role", nil, "Deliver only to these roles")
	watchCmd.Flags().StringSlice("exclude-role", nil, "Deliver to everyone except these roles")
	watchCmd.Flags().Duration("interval", time.Second, "Poll interval")
}

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	return watchCmd
}
