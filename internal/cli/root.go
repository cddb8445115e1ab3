package cli

import (
	"fmt"

	"github.com/AbhishekPandey12/foodorderingapp/internal/config"
	"github.com/AbhishekPandey12/foodorderingapp/internal/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfgFile string
	cfg     *config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "foodctl",
	Short: "Admin tool for the food ordering API",
	Long: `foodctl manages the food ordering database: it applies the schema,
loads the item catalogue and checks connectivity.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "foodctl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "app.yml", "config file path")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedItemsCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(versionCmd)
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return rootCmd.Execute()
}

func Root() *cobra.Command {
	return rootCmd
}

// openDatabase opens the configured database with the schema in place
func openDatabase() (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
