package cmd

import (
	"log"

	"github.com/asakaze/photo-vault/config"
	"github.com/asakaze/photo-vault/database"
	"github.com/spf13/cobra"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long:  `Connect to the configured database and bring its schema up to date, without starting the API server.`,
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		log.Printf("Migrating database schema, database type: %s", cfg.DBType)
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}

		log.Println("Migration completed successfully")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
