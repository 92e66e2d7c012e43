package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("api", pflag.ExitOnError)
	flags.String("db", "", "archivo SQLite (DB_PATH)")
	flags.String("driver", "", "sqlite | postgres (DB_DRIVER)")
	flags.String("log-level", "", "trace, debug, info, warn, error (LOG_LEVEL)")
	flags.Int("port", 0, "puerto HTTP (HTTP_PORT)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.LogConf.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	docsFile := cfg.HTTP.DocsFile
	if _, err := os.Stat(docsFile); docsFile != "" && err != nil {
		log.Warn().Str("file", docsFile).Msg("swagger.json no encontrado; /docs deshabilitado")
		docsFile = ""
	}

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		Ledger:        st.Ledger(log, inventory.WithHistoryLimit(cfg.Ledger.HistoryLimit)),
		Replenishment: st.Replenishment(),
		Ping:          st.Ping,
		Log:           log,
		DocsFile:      docsFile,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
