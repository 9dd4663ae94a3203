package main

import (
	"context"
	"os"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/classify"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/config"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/debuglog"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/logger"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/pagination"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/session"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/transport"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/ui"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/viewer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration, using defaults", "error", err)
		cfg = config.Default()
	}
	logger.SetLevel(cfg.Log.Level)

	recorder := debuglog.New(nil)
	store := history.NewStore()
	classifier := classify.New(classify.Nesting(cfg.Endpoint.ResponseNesting))
	client := transport.NewClient(cfg.Endpoint)
	docs := viewer.NewController(cfg.Viewer.DocumentPathPrefix)

	console := ui.NewConsole(docs, recorder, store, os.Stdout)
	sess := session.New(client, store, classifier, recorder, console)
	console.BindPagination(pagination.NewController(sess, cfg.Session.AnnouncePageQueries))

	logger.L.Info("starting chat client", "endpoint", cfg.Endpoint.URL, "nesting", cfg.Endpoint.ResponseNesting)
	if err := console.Run(context.Background(), sess); err != nil {
		logger.L.Error("chat client exited with error", "error", err)
		os.Exit(1)
	}
}
