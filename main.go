package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"billsmith/config"
	"billsmith/database"
	"billsmith/middleware"
	"billsmith/router"
	"billsmith/service"

	"go.uber.org/zap"
)

// @title BillSmith API
// @version 1.0
// @description 个人账单管理：类别、账单、上传、导出和支出统计
// @host localhost:4242
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
	remind      bool
	issueToken  string
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 4242")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
	flag.BoolVar(&remind, "remind", false, "发送一次到期提醒邮件后退出")
	flag.StringVar(&issueToken, "issue-token", "", "为指定主体签发访问令牌后退出")
}

func setupLogger(mode string) {
	cfg := zap.NewProductionConfig()
	if mode != "release" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("BillSmith v%s\n", version)
		return
	}

	setupLogger(os.Getenv("GIN_MODE"))
	defer func() { _ = zap.L().Sync() }()

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		zap.L().Fatal("加载配置失败", zap.Error(err))
	}
	setupLogger(cfg.Server.Mode)

	// 命令行参数覆盖端口配置
	if port != "" {
		cfg.Server.Port = strings.TrimPrefix(port, ":")
		zap.L().Info("命令行指定端口", zap.String("port", cfg.Server.Port))
	}

	config.PrintConfig()

	if err := middleware.InitJWT(cfg); err != nil {
		zap.L().Fatal("JWT 初始化失败", zap.Error(err))
	}
	if issueToken != "" {
		token, err := middleware.GenerateToken(issueToken, cfg.Auth.ExpireTime)
		if err != nil {
			zap.L().Fatal("签发令牌失败", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	defer database.Close()

	if remind {
		if err := sendReminder(cfg, time.Now()); err != nil {
			zap.L().Fatal("发送到期提醒失败", zap.Error(err))
		}
		return
	}

	storage := service.NewStorage(context.Background(), cfg.Storage)
	r := router.SetupRouter(cfg, storage)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	zap.L().Info("BillSmith 已启动",
		zap.String("addr", srv.Addr),
		zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		zap.String("api", fmt.Sprintf("http://localhost:%s/api/v1/", cfg.Server.Port)),
	)

	gracefulShutdown(srv)
}

// sendReminder 查询即将到期的账单，启用邮件时发送提醒，否则只写日志
func sendReminder(cfg *config.Config, now time.Time) error {
	bills, err := service.DueSoon(database.DB, now, cfg.Reminder.Days)
	if err != nil {
		return err
	}
	zap.L().Info("即将到期的账单", zap.Int("count", len(bills)), zap.Int("days", cfg.Reminder.Days))
	if len(bills) == 0 {
		return nil
	}
	if !cfg.Email.Enabled {
		for _, b := range bills {
			zap.L().Info("到期账单",
				zap.Uint("id", b.ID),
				zap.String("vendor", b.Vendor),
				zap.Stringer("due_date", b.DueDate),
				zap.String("amount", b.AmountDue.String()),
			)
		}
		return nil
	}
	return service.NewEmailService(&cfg.Email).SendDueReminder(bills, cfg.Reminder.Days)
}

func gracefulShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("关闭服务器出错", zap.Error(err))
	}

	zap.L().Info("服务器已停止")
}
