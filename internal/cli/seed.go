package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := ""
			if cwd, err := os.Getwd(); err == nil {
				if cfg, err := config.LoadConfig(cwd); err == nil {
					dbPath = cfg.DBPath
				}
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
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close()

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Seeded development fixtures")
			return nil
		},
	}
}
