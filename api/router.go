package api

import (
	"github.com/SlpAus/minigame-portal-backend/internal/assistant"
	"github.com/SlpAus/minigame-portal-backend/internal/fortune"
	"github.com/SlpAus/minigame-portal-backend/internal/gateway"
	"github.com/SlpAus/minigame-portal-backend/internal/score"
	"github.com/SlpAus/minigame-portal-backend/internal/sports"
	"github.com/SlpAus/minigame-portal-backend/internal/trend"
	"github.com/SlpAus/minigame-portal-backend/internal/webscan"
	"github.com/gin-gonic/gin"
)

// Handlers 汇集各模块在启动时组装好的处理器
type Handlers struct {
	Score     *score.Handler
	Assistant *assistant.Handler
	Fortune   *fortune.Handler
	Trend     *trend.Handler
	Webscan   *webscan.Handler
	Sports    *sports.Handler
	Gateway   *gateway.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	// 成绩与排行榜
	router.POST("/saveScore", h.Score.SaveScore)

	// AI问答
	router.POST("/search", h.Assistant.Search)
	router.POST("/generate", h.Assistant.Generate)
	router.POST("/processAudio", h.Assistant.ProcessAudio)

	// 抓取与第三方数据
	router.POST("/scrapeSearch", h.Webscan.ScrapeSearch)
	router.GET("/sports", h.Sports.Fixtures)

	// 定时任务产出的只读视图
	router.GET("/fortune", h.Fortune.List)
	router.GET("/trend", h.Trend.Latest)

	// 运维更新网关
	router.POST("/ops/update", h.Gateway.Update)
}
