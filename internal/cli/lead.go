package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/wire"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Manage leads (candidate records)",
	Long:  "Create, claim, update, release, and inspect leads in the HRM pipeline",
}

var leadCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new unclaimed lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")
		source, _ := cmd.Flags().GetString("source")
		position, _ := cmd.Flags().GetString("position")
		notes, _ := cmd.Flags().GetString("notes")
		salary, _ := cmd.Flags().GetInt64("expected-salary")
		reason, _ := cmd.Flags().GetString("reason")

		resp, err := wire.LeadService().CreateLead(ctx, primary.CreateLeadRequest{
			Name:           args[0],
			Phone:          phone,
			Email:          email,
			Address:        address,
			Source:         source,
			Position:       position,
			Notes:          notes,
			ExpectedSalary: salary,
			Reason:         reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}

		fmt.Printf("✓ Created lead %d: %s [%s]\n", resp.LeadID, resp.Lead.Name, resp.Lead.Status)
		return nil
	},
}

var leadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		ownerID, _ := cmd.Flags().GetInt64("owner")
		unclaimed, _ := cmd.Flags().GetBool("unclaimed")
		limit, _ := cmd.Flags().GetInt("limit")

		leads, err := wire.LeadService().ListLeads(ctx, primary.LeadFilters{
			Status:    status,
			OwnerID:   ownerID,
			Unclaimed: unclaimed,
			Limit:     limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}

		if len(leads) == 0 {
			fmt.Println("No leads found.")
			return nil
		}

		fmt.Printf("Found %d lead(s):\n\n", len(leads))
		for _, lead := range leads {
			owner := "unclaimed"
			if lead.OwnerID != nil {
				owner = fmt.Sprintf("worker %d", *lead.OwnerID)
			}
			fmt.Printf("%d: %s %s (%s)\n", lead.ID, lead.Name, statusLabel(lead.Status), owner)
			if lead.Position != "" {
				fmt.Printf("   Position: %s\n", lead.Position)
			}
		}
		return nil
	},
}

var leadShowCmd = &cobra.Command{
	Use:   "show [lead-id]",
	Short: "Show lead details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}

		lead, err := wire.LeadService().GetLead(ctx, leadID)
		if err != nil {
			return fmt.Errorf("lead not found: %w", err)
		}

		fmt.Printf("Lead: %d\n", lead.ID)
		fmt.Printf("Name: %s\n", lead.Name)
		fmt.Printf("Status: %s\n", statusLabel(lead.Status))
		if lead.OwnerID != nil {
			fmt.Printf("Owner: worker %d\n", *lead.OwnerID)
		} else {
			fmt.Println("Owner: unclaimed")
		}
		if lead.Phone != "" {
			fmt.Printf("Phone: %s\n", lead.Phone)
		}
		if lead.Email != "" {
			fmt.Printf("Email: %s\n", lead.Email)
		}
		if lead.Address != "" {
			fmt.Printf("Address: %s\n", lead.Address)
		}
		if lead.Source != "" {
			fmt.Printf("Source: %s\n", lead.Source)
		}
		if lead.Position != "" {
			fmt.Printf("Position: %s\n", lead.Position)
		}
		if lead.ExpectedSalary != 0 {
			fmt.Printf("Expected salary: %d\n", lead.ExpectedSalary)
		}
		if lead.InterviewAt != "" {
			fmt.Printf("Interview: %s\n", lead.InterviewAt)
		}
		if lead.Notes != "" {
			fmt.Printf("Notes: %s\n", lead.Notes)
		}
		fmt.Printf("Created: %s\n", lead.CreatedAt)
		fmt.Printf("Updated: %s\n", lead.UpdatedAt)
		return nil
	},
}

var leadUpdateCmd = &cobra.Command{
	Use:   "update [lead-id]",
	Short: "Update lead fields",
	Long: `Update lead fields with --set field=value pairs. Setting status to
"completed" triggers the pool hand-off for telecaller and hr owned leads.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}

		pairs, _ := cmd.Flags().GetStringArray("set")
		reason, _ := cmd.Flags().GetString("reason")

		fields := map[string]string{}
		for _, pair := range pairs {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("invalid --set %q, expected field=value", pair)
			}
			fields[key] = value
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to update, pass at least one --set field=value")
		}

		lead, err := wire.LeadService().UpdateLead(ctx, primary.UpdateLeadRequest{
			LeadID: leadID,
			Fields: fields,
			Reason: reason,
		})
		if err != nil {
			return fmt.Errorf("failed to update lead: %w", err)
		}

		owner := "unclaimed"
		if lead.OwnerID != nil {
			owner = fmt.Sprintf("worker %d", *lead.OwnerID)
		}
		fmt.Printf("✓ Updated lead %d: %s (%s)\n", lead.ID, statusLabel(lead.Status), owner)
		return nil
	},
}

var leadClaimCmd = &cobra.Command{
	Use:   "claim [lead-id]",
	Short: "Claim an unclaimed lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}

		workerID, _ := cmd.Flags().GetInt64("worker")
		if workerID == 0 {
			workerID = cfg.ActorID
		}
		reason, _ := cmd.Flags().GetString("reason")

		lead, err := wire.OwnershipService().ClaimLead(ctx, primary.ClaimLeadRequest{
			LeadID:   leadID,
			WorkerID: workerID,
			Reason:   reason,
		})
		if err != nil {
			if primary.IsOwnerConflict(err) {
				return fmt.Errorf("lead %d was claimed by someone else first", leadID)
			}
			return fmt.Errorf("failed to claim lead: %w", err)
		}

		fmt.Printf("✓ Claimed lead %d for worker %d\n", lead.ID, workerID)
		return nil
	},
}

var leadReleaseCmd = &cobra.Command{
	Use:   "release [lead-id]",
	Short: "Release a lead back to the unclaimed pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		lead, err := wire.OwnershipService().ReleaseLead(ctx, primary.ReleaseLeadRequest{
			LeadID: leadID,
			Reason: reason,
		})
		if err != nil {
			return fmt.Errorf("failed to release lead: %w", err)
		}

		fmt.Printf("✓ Released lead %d, status reset to %s\n", lead.ID, lead.Status)
		return nil
	},
}

var leadReassignCmd = &cobra.Command{
	Use:   "reassign [lead-id] [worker-id]",
	Short: "Reassign a lead to another worker (manager only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}
		workerID, err := parseID(args[1])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		lead, err := wire.OwnershipService().ReassignLead(ctx, primary.ReassignLeadRequest{
			LeadID:     leadID,
			ToWorkerID: workerID,
			Reason:     reason,
		})
		if err != nil {
			return fmt.Errorf("failed to reassign lead: %w", err)
		}

		fmt.Printf("✓ Reassigned lead %d to worker %d\n", lead.ID, workerID)
		return nil
	},
}

var leadDestroyCmd = &cobra.Command{
	Use:   "destroy [lead-id]",
	Short: "Permanently remove a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		if err := wire.OwnershipService().DestroyLead(ctx, primary.DestroyLeadRequest{
			LeadID: leadID,
			Reason: reason,
		}); err != nil {
			return fmt.Errorf("failed to destroy lead: %w", err)
		}

		fmt.Printf("✓ Destroyed lead %d\n", leadID)
		return nil
	},
}

var leadHistoryCmd = &cobra.Command{
	Use:   "history [lead-id]",
	Short: "Show the audit trail of a lead, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		leadID, err := parseID(args[0])
		if err != nil {
			return err
		}

		entries, err := wire.LeadService().History(ctx, leadID)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No history.")
			return nil
		}

		for _, entry := range entries {
			printAuditEntry(entry)
		}
		return nil
	},
}

// printAuditEntry renders one audit entry as a single line plus optional
// change data detail.
func printAuditEntry(entry *primary.AuditEntry) {
	action := color.New(color.FgCyan).Sprintf("%-12s", entry.Action)

	transition := ""
	if entry.PreviousStatus != entry.NewStatus {
		transition = fmt.Sprintf(" %s→%s", entry.PreviousStatus, entry.NewStatus)
	}

	owners := ""
	if entry.FromOwnerID != nil || entry.ToOwnerID != nil {
		owners = fmt.Sprintf(" [%s → %s]", ownerLabel(entry.FromOwnerID), ownerLabel(entry.ToOwnerID))
	}

	fmt.Printf("#%d %s %s actor=%d%s%s\n", entry.Seq, entry.CreatedAt, action, entry.ActorID, transition, owners)
	if entry.Reason != "" {
		fmt.Printf("     reason: %s\n", entry.Reason)
	}
	if len(entry.ChangeData) > 0 {
		data, err := json.Marshal(entry.ChangeData)
		if err == nil {
			fmt.Printf("     %s\n", data)
		}
	}
}

func ownerLabel(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}

// statusLabel colors the workflow states the hand-off rules care about.
func statusLabel(status string) string {
	switch status {
	case "new":
		return color.New(color.FgHiBlue).Sprintf("[%s]", status)
	case "active":
		return color.New(color.FgYellow).Sprintf("[%s]", status)
	case "pending":
		return color.New(color.FgHiMagenta).Sprintf("[%s]", status)
	case "completed":
		return color.New(color.FgHiGreen).Sprintf("[%s]", status)
	default:
		return fmt.Sprintf("[%s]", status)
	}
}

func init() {
	leadCreateCmd.Flags().String("phone", "", "Phone number")
	leadCreateCmd.Flags().String("email", "", "Email address")
	leadCreateCmd.Flags().String("address", "", "Postal address")
	leadCreateCmd.Flags().String("source", "", "Where the lead came from")
	leadCreateCmd.Flags().String("position", "", "Position the lead applies for")
	leadCreateCmd.Flags().String("notes", "", "Free-form notes")
	leadCreateCmd.Flags().Int64("expected-salary", 0, "Expected salary")
	leadCreateCmd.Flags().String("reason", "", "Reason recorded in the audit trail")

	leadListCmd.Flags().String("status", "", "Filter by status")
	leadListCmd.Flags().Int64("owner", 0, "Filter by owner worker ID")
	leadListCmd.Flags().Bool("unclaimed", false, "Only unclaimed leads")
	leadListCmd.Flags().Int("limit", 0, "Limit the number of results")

	leadUpdateCmd.Flags().StringArray("set", nil, "Field to set, as field=value (repeatable)")
	leadUpdateCmd.Flags().String("reason", "", "Reason recorded in the audit trail")

	leadClaimCmd.Flags().Int64("worker", 0, "Worker to claim for (defaults to the actor)")
	leadClaimCmd.Flags().String("reason", "", "Reason recorded in the audit trail")

	leadReleaseCmd.Flags().String("reason", "", "Reason recorded in the audit trail")
	leadReassignCmd.Flags().String("reason", "", "Reason recorded in the audit trail")
	leadDestroyCmd.Flags().String("reason", "", "Reason recorded in the audit trail")

	leadCmd.AddCommand(leadCreateCmd)
	leadCmd.AddCommand(leadListCmd)
	leadCmd.AddCommand(leadShowCmd)
	leadCmd.AddCommand(leadUpdateCmd)
	leadCmd.AddCommand(leadClaimCmd)
	leadCmd.AddCommand(leadReleaseCmd)
	leadCmd.AddCommand(leadReassignCmd)
	leadCmd.AddCommand(leadDestroyCmd)
	leadCmd.AddCommand(leadHistoryCmd)
}

// LeadCmd returns the lead command
func LeadCmd() *cobra.Command {
	return leadCmd
}
