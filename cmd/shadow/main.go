// Package main is the entry point for the shadow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/easeaico/shadow/internal/cli"
)

func main() {
	// 收到中断信号时取消进行中的模型与数据库调用
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetupLogging(os.Getenv("LOG_LEVEL"))
	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
