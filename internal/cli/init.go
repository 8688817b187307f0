package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the HRM database and actor config",
		Long: `Initialize the HRM database and write .hrm/config.json with the local
actor identity. Every worker runs init once in their working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, _ := cmd.Flags().GetInt64("actor-id")
			role, _ := cmd.Flags().GetString("role")
			dbPath, _ := cmd.Flags().GetString("db")
			nickname, _ := cmd.Flags().GetString("nickname")

			if actorID <= 0 {
				return fmt.Errorf("--actor-id must be a positive worker ID")
			}
			if !config.ValidRole(role) {
				return fmt.Errorf("invalid role %q, expected telecaller, hr, sales or manager", role)
			}

			if dbPath == "" {
				var err error
				dbPath, err = db.DefaultPath()
				if err != nil {
					return fmt.Errorf("failed to resolve database path: %w", err)
				}
			}

			database, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			database.Close()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg := &config.Config{
				Version:  "1",
				ActorID:  actorID,
				Role:     role,
				DBPath:   dbPath,
				Nickname: nickname,
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Database initialized at %s\n", dbPath)
			fmt.Printf("✓ Actor config written: worker %d (%s)\n", actorID, role)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  hrm lead list --unclaimed")
			fmt.Println("  hrm lead claim <lead-id>")
			return nil
		},
	}

	cmd.Flags().Int64("actor-id", 0, "Worker ID of the local actor")
	cmd.Flags().String("role", "", "Role of the local actor: telecaller, hr, sales or manager")
	cmd.Flags().String("db", "", "Database path (defaults to ~/.hrm/hrm.db)")
	cmd.Flags().String("nickname", "", "Display nickname")
	cmd.MarkFlagRequired("actor-id")
	cmd.MarkFlagRequired("role")
	return cmd
}
