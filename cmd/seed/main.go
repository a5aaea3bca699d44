package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var n int

	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if n <= 0 {
		logger.Error("请输入合法的员工数量")
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 直接写数据库，不会发布事件
	cnt := 0
	for i := 0; i < n; i++ {
		employee := domain.ToEntity(utils.GenerateRandomEmployee(cfg.Seed.EmailDomain))
		employee.PublicID = uuid.New()

		if _, err := repo.Save(context.Background(), employee); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				logger.Warn("邮箱重复，跳过", "email", employee.Email)
			} else {
				logger.Error("无法插入员工", "error", err)
			}
			continue
		}
		cnt++
	}

	logger.Info("插入随机员工完成", "success", cnt, "total", n)
}
