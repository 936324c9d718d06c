package main

import (
	"github.com/spf13/cobra"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/gormdb"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "同步表结构(AutoMigrate)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// NewDB连接成功后会执行迁移
		_, cleanup, err := gormdb.NewDB(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		log.Info("表结构同步完成")
		return nil
	},
}
