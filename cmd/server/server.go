package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/muncher/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg := loadConfig()

	levels, err := server.LoadLevels(cfg.LevelsDir)
	if err != nil {
		log.Fatalf("cant load levels: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := levels.Watch(ctx); err != nil {
		log.Warnf("levels will not be reloaded: %v", err)
	}

	s := Server{
		GameServer: server.NewGameServer(levels, cfg.DefaultLevel),
	}
	go s.GameServer.Loop(ctx)
	s.routes()

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: s.router}
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		httpServer.Close()
	}()
	log.Infof("listening on :%s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalln(err)
	}
}
