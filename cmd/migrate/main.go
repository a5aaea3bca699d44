package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/config"
)

var errUnsupportedAction = errors.New("不支持的迁移操作")

func main() {
	migrationsDir := flag.String("dir", "migrations", "迁移文件所在目录")
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := runMigration(action, *migrationsDir, cfg.Database.DSN); err != nil {
		logger.Error("迁移失败", "action", action, "error", err)
		os.Exit(1)
	}

	logger.Info("迁移完成", "action", action)
}

// golang-migrate 的 pgx 驱动使用 pgx5:// 协议
func migrationDSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func runMigration(action, dir, dsn string) error {
	switch action {
	case "up", "down", "version":
	default:
		return fmt.Errorf("%w: %s", errUnsupportedAction, action)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("无法解析迁移目录 %s: %w", dir, err)
	}
	absDir = filepath.ToSlash(absDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", absDir), migrationDSN(dsn))
	if err != nil {
		return fmt.Errorf("无法创建迁移实例: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			slog.Info("尚未执行任何迁移")
			return nil
		}
		if err != nil {
			return err
		}
		slog.Info("当前迁移版本", "version", version, "dirty", dirty)
	}

	return nil
}
