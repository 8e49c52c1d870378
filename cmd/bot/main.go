package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/jwtauth/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/asadbek002/checkin-bot/internal/config"
	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	appHTTP "github.com/asadbek002/checkin-bot/internal/handler/http"
	"github.com/asadbek002/checkin-bot/internal/handler/telegram"
	"github.com/asadbek002/checkin-bot/internal/pkg/cron"
	"github.com/asadbek002/checkin-bot/internal/pkg/database"
	"github.com/asadbek002/checkin-bot/internal/pkg/geo"
	"github.com/asadbek002/checkin-bot/internal/pkg/workday"
	"github.com/asadbek002/checkin-bot/internal/repository/postgresql"
	"github.com/asadbek002/checkin-bot/internal/repository/sheets"
	attendanceService "github.com/asadbek002/checkin-bot/internal/service/attendance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store attendance.RecordStore
	switch cfg.Store.Backend {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer db.Close()
		store = postgresql.NewAttendanceStore(db)
	case "sheets":
		store, err = sheets.NewAttendanceStore(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.ReadRange)
		if err != nil {
			log.Fatal("Failed to initialize sheets store: ", err)
		}
	default:
		log.Fatal("Unsupported store backend: ", cfg.Store.Backend)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatal("Failed to create bot API client: ", err)
	}

	fence := geo.Geofence{
		Lat:          cfg.Office.Lat,
		Lon:          cfg.Office.Lon,
		RadiusMeters: cfg.Office.RadiusMeters,
	}
	clock := workday.NewClock(cfg.Workday.TZOffsetHours, cfg.Workday.CutoffHour, cfg.Workday.CutoffMinute)

	notifier := telegram.NewAdminNotifier(api, cfg.Bot.AdminChatID)
	checkInService := attendanceService.NewCheckInService(store, notifier, fence, clock, cfg.Workday.MonthlyLateQuota)

	scheduler := cron.NewScheduler()
	if ttl := cfg.Workday.PendingReasonTTL; ttl > 0 {
		scheduler.AddJob("sweep_pending_reasons", ttl, func(ctx context.Context) error {
			checkInService.SweepPending(ttl)
			return nil
		})
	}
	scheduler.Start()
	defer scheduler.Stop()

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Ops.JWTSecret), nil)
	attendanceHandler := appHTTP.NewAttendanceHandler(store)
	router := appHTTP.NewRouter(tokenAuth, attendanceHandler, cfg.App.Env)

	opsAddr := fmt.Sprintf(":%d", cfg.Ops.Port)
	opsServer := &http.Server{Addr: opsAddr, Handler: router}
	go func() {
		slog.Info("ops server listening", "addr", opsAddr)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ops server error", "error", err)
		}
	}()

	bot := telegram.NewBot(api, checkInService)
	bot.Run(ctx)

	if err := opsServer.Shutdown(context.Background()); err != nil {
		slog.Error("ops server shutdown error", "error", err)
	}
}
