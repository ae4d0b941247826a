package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/scheduler"
	"github.com/SlpAus/minigame-portal-backend/pkg/lifecycle"
)

// Coordinator 负责编排应用程序的优雅停机流程。
// 它持有生命周期管理器、调度器和数据库句柄，按固定顺序收尾。
type Coordinator struct {
	Manager   *lifecycle.Manager
	Scheduler *scheduler.Scheduler
	Mongo     *database.Mongo
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(mgr *lifecycle.Manager, sched *scheduler.Scheduler, mongo *database.Mongo) *Coordinator {
	return &Coordinator{Manager: mgr, Scheduler: sched, Mongo: mongo}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 阻塞直到接收到停机信号
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 先停掉调度器，保证不再有新的抓取轮次启动
	c.Scheduler.Stop()

	// 关闭HTTP服务器，允许正在进行的请求完成
	httpTimeout := 15 * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Gin服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("Gin服务器已关闭。")
	}

	// 广播停机信号并等待后台服务退出。
	// 正在进行中的抓取轮次会因ctx取消而中断，浏览器会话在其defer中关闭。
	gracefulTimeout := 30 * time.Second
	fmt.Printf("等待最多 %v 以完成后台任务...\n", gracefulTimeout)
	c.Manager.Shutdown()

	remainingServices := c.Manager.WaitWithTimeout(gracefulTimeout)
	if len(remainingServices) == 0 {
		fmt.Println("所有后台服务已优雅关闭。")
	} else {
		fmt.Printf("以下服务未能在超时前退出，强制继续停机: %v\n", remainingServices)
	}

	// 最终步骤：断开数据库连接
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	c.Mongo.Close(closeCtx)

	fmt.Println("优雅停机完成。")
}
