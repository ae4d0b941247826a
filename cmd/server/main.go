package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/minigame-portal-backend/api"
	"github.com/SlpAus/minigame-portal-backend/internal/assistant"
	"github.com/SlpAus/minigame-portal-backend/internal/fortune"
	"github.com/SlpAus/minigame-portal-backend/internal/gateway"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/browser"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/messaging"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/scheduler"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/shutdown"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/startup"
	"github.com/SlpAus/minigame-portal-backend/internal/score"
	"github.com/SlpAus/minigame-portal-backend/internal/sports"
	"github.com/SlpAus/minigame-portal-backend/internal/trend"
	"github.com/SlpAus/minigame-portal-backend/internal/webscan"
	"github.com/SlpAus/minigame-portal-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置，必需的环境变量缺失时立刻失败
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}

	// 2. 建立外部客户端，进程生命周期内复用
	mongoDB := database.InitMongo(cfg.Mongo)

	aiClient, err := ai.NewClient(context.Background(), cfg.AI)
	if err != nil {
		panic(fmt.Sprintf("AI客户端初始化失败: %v", err))
	}

	notifier, err := messaging.NewDiscordNotifier(cfg.Messaging)
	if err != nil {
		panic(fmt.Sprintf("消息网关初始化失败: %v", err))
	}

	browserManager := browser.NewManager(cfg.Browser)

	// 3. 组装各业务模块，依赖显式注入而不是包级单例
	scoreHandler := score.SetupModule(mongoDB.DB)
	assistantHandler := assistant.SetupModule(aiClient, mongoDB.Audio)
	fortuneHandler, fortuneService := fortune.SetupModule(aiClient, mongoDB.DB)
	trendHandler, trendService := trend.SetupModule(browserManager, aiClient, cfg.Browser, mongoDB.DB)
	webscanHandler := webscan.SetupModule(cfg.Webscan, notifier)
	sportsHandler := sports.SetupModule(cfg.Sports)
	gatewayHandler := gateway.SetupModule(mongoDB.DB)

	// 4. 执行启动初始化
	if err := startup.InitializeApplication(fortuneService, mongoDB.DB); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 5. 启动整点调度器
	manager := lifecycle.NewManager()
	sched := scheduler.New(
		scheduler.Job{Name: "trend-scrape", Run: trendService.RunOnce},
		scheduler.Job{Name: "fortune-regenerate", Run: func(ctx context.Context) error {
			_, err := fortuneService.Regenerate(ctx)
			return err
		}},
	)
	schedHandle, err := manager.NewServiceHandle("scheduler")
	if err != nil {
		panic(err)
	}
	sched.Start(schedHandle)

	// 6. 配置Gin引擎与路由
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, api.Handlers{
		Score:     scoreHandler,
		Assistant: assistantHandler,
		Fortune:   fortuneHandler,
		Trend:     trendHandler,
		Webscan:   webscanHandler,
		Sports:    sportsHandler,
		Gateway:   gatewayHandler,
	})

	// 7. 启动服务器并等待停机信号
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(manager, sched, mongoDB)
	coordinator.ListenForSignalsAndShutdown(server)
}
