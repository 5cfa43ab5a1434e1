package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/config"
	"github.com/avocado-ai/avocado-web/internal/adminapi"
	"github.com/avocado-ai/avocado-web/internal/app"
	"github.com/avocado-ai/avocado-web/internal/proxy"
	"github.com/avocado-ai/avocado-web/internal/site"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

var (
	version = "develop"

	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the operation log tables")
	warmup   = flag.Bool("warmup", true, "load the admin collections at startup")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}
	if *h {
		flag.Usage()
		return
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init application:", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("operation log tables recreated")
		return
	}

	site.Init()
	proxy.Init()
	adminapi.Init()

	server, err := webserver.New(cfg, application)
	if err != nil {
		zap.S().Fatalf("build web server: %v", err)
	}

	if *warmup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			application.WarmUp(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	case sig := <-quit:
		zap.S().Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown web server: %v", err)
		}
	}
}
