package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/wire"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage workers (pool members)",
	Long:  "Create, list, and activate/deactivate workers in the role pools",
}

var workerCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new worker (manager only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}
		role, _ := cmd.Flags().GetString("role")

		resp, err := wire.WorkerService().CreateWorker(ctx, primary.CreateWorkerRequest{
			Name: args[0],
			Role: role,
		})
		if err != nil {
			return fmt.Errorf("failed to create worker: %w", err)
		}

		fmt.Printf("✓ Created worker %d: %s (%s)\n", resp.WorkerID, resp.Worker.Name, resp.Worker.Role)
		return nil
	},
}

var workerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}
		role, _ := cmd.Flags().GetString("role")
		activeOnly, _ := cmd.Flags().GetBool("active")

		workers, err := wire.WorkerService().ListWorkers(ctx, primary.WorkerFilters{
			Role:       role,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			return fmt.Errorf("failed to list workers: %w", err)
		}

		if len(workers) == 0 {
			fmt.Println("No workers found.")
			return nil
		}

		for _, worker := range workers {
			state := "active"
			if !worker.Active {
				state = "inactive"
			}
			fmt.Printf("%d: %s (%s, %s)\n", worker.ID, worker.Name, worker.Role, state)
		}
		return nil
	},
}

var workerShowCmd = &cobra.Command{
	Use:   "show [worker-id]",
	Short: "Show worker details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := actorContext()
		if err != nil {
			return err
		}

		workerID, err := parseID(args[0])
		if err != nil {
			return err
		}

		worker, err := wire.WorkerService().GetWorker(ctx, workerID)
		if err != nil {
			return fmt.Errorf("worker not found: %w", err)
		}

		fmt.Printf("Worker: %d\n", worker.ID)
		fmt.Printf("Name: %s\n", worker.Name)
		fmt.Printf("Role: %s\n", worker.Role)
		fmt.Printf("Active: %v\n", worker.Active)
		fmt.Printf("Created: %s\n", worker.CreatedAt)
		return nil
	},
}

var workerActivateCmd = &cobra.Command{
	Use:   "activate [worker-id]",
	Short: "Activate a worker (manager only)",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setWorkerActive(args[0], true) },
}

var workerDeactivateCmd = &cobra.Command{
	Use:   "deactivate [worker-id]",
	Short: "Deactivate a worker, removing it from hand-off targets (manager only)",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setWorkerActive(args[0], false) },
}

func setWorkerActive(arg string, active bool) error {
	ctx, _, err := actorContext()
	if err != nil {
		return err
	}

	workerID, err := parseID(arg)
	if err != nil {
		return err
	}

	if err := wire.WorkerService().SetWorkerActive(ctx, workerID, active); err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}

	state := "activated"
	if !active {
		state = "deactivated"
	}
	fmt.Printf("✓ Worker %d %s\n", workerID, state)
	return nil
}

func init() {
	workerCreateCmd.Flags().String("role", "", "Pool role: telecaller, hr, sales or manager")
	workerCreateCmd.MarkFlagRequired("role")

	workerListCmd.Flags().String("role", "", "Filter by role")
	workerListCmd.Flags().Bool("active", false, "Only active workers")

	workerCmd.AddCommand(workerCreateCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerShowCmd)
	workerCmd.AddCommand(workerActivateCmd)
	workerCmd.AddCommand(workerDeactivateCmd)
}

// WorkerCmd returns the worker command
func WorkerCmd() *cobra.Command {
	return workerCmd
}
