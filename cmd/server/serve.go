package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"evergraze/database"
	"evergraze/router"

	exportCtrlImp "evergraze/pkg/export/controllerImp"
	exportSvcImp "evergraze/pkg/export/serviceImp"
	"evergraze/pkg/export/sink"
	healthCtrlImp "evergraze/pkg/health/controllerImp"
	recordCtrlImp "evergraze/pkg/record/controllerImp"
	recordRepoImp "evergraze/pkg/record/repositoryImp"
	recordSvcImp "evergraze/pkg/record/serviceImp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) DB (sqlite) + schema normalization; a failed migration must not serve
	db, err := database.Bootstrap(cfg.DBPath)
	if err != nil {
		log.Fatalf("[migrate] %v", err)
	}

	// 2) Export sink
	out, err := sink.Open(ctx, cfg.Export)
	if err != nil {
		return err
	}

	// 3) Repos/Services/Controllers
	rRepo := recordRepoImp.New(db)
	rSvc := recordSvcImp.NewRecordService(rRepo, cfg.RecentLimit)
	xSvc := exportSvcImp.New(rRepo, out, exportSvcImp.Options{FarmName: cfg.FarmName, LogoPath: cfg.LogoPath, FontPath: cfg.FontPath})
	hCtrl := healthCtrlImp.NewHealthCtrl(db, out)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Static("/static", "static")
	if _, err := os.Stat(cfg.LogoPath); err != nil {
		log.Printf("WARN: logo %s not found, reports will have no logo", cfg.LogoPath)
	}
	r := router.New(e, recordCtrlImp.New(rSvc), exportCtrlImp.New(xSvc), hCtrl)

	// 5) Start
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Shutdown(shutdownCtx); err != nil {
			log.Printf("[http] shutdown: %v", err)
		}
	}()
	log.Printf("listening on :%s (export driver %s)", cfg.Port, out.Driver())
	if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
