// Command inventory es el cliente de línea de comandos del inventario doméstico.
//
//	inventory [--db archivo] [--driver sqlite|postgres] [--log-level nivel] <comando> [flags] [args]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/store"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cli estado compartido por los comandos.
type cli struct {
	cfg           *config.Config
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
	out           io.Writer
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"init":     {"init", "crea la base de datos y el esquema", runInit},
	"list":     {"list [--status estado] [--search texto] [--category cat] [--expired]", "lista los productos por nombre", runList},
	"show":     {"show <id>", "muestra un producto", runShow},
	"add":      {"add --name N --category C [flags]", "agrega un producto", runAdd},
	"update":   {"update <id> [flags]", "modifica datos del producto (no el stock)", runUpdate},
	"delete":   {"delete <id> --yes", "elimina el producto y su historial", runDelete},
	"purchase": {"purchase <id> <cantidad> [--memo m]", "registra una compra", runOperation("purchase")},
	"use":      {"use <id> <cantidad> [--memo m]", "registra un consumo (no baja de 0)", runOperation("use")},
	"adjust":   {"adjust <id> <cantidad> [--memo m]", "fija el stock a un valor", runOperation("adjust")},
	"history":  {"history [--product id] [--limit n]", "historial, más reciente primero", runHistory},
	"stats":    {"stats <id>", "estadísticas de operaciones de un producto", runStats},
	"shopping": {"shopping", "lista de compras sugerida", runShopping},
	"seed":     {"seed", "carga productos de ejemplo si el inventario está vacío", runSeed},
}

// errUsage error de uso; se responde con código de salida 2.
var errUsage = errors.New("uso incorrecto")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("inventory", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	global.String("db", "", "archivo SQLite (DB_PATH)")
	global.String("driver", "", "sqlite | postgres (DB_DRIVER)")
	global.String("log-level", "", "trace, debug, info, warn, error (LOG_LEVEL)")
	global.Usage = func() { printUsage(stderr, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if global.NArg() == 0 {
		printUsage(stderr, global)
		return 2
	}
	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "comando desconocido: %q\n", name)
		printUsage(stderr, global)
		return 2
	}

	cfg, err := config.LoadWithFlags(global)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.LogConf.Level, Output: stderr})

	st, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	c := &cli{
		cfg:           cfg,
		ledger:        st.Ledger(log, inventory.WithHistoryLimit(cfg.Ledger.HistoryLimit)),
		replenishment: st.Replenishment(),
		out:           stdout,
	}
	if err := cmd.run(ctx, c, global.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "uso: inventory", cmd.usage)
			return 2
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "uso: inventory [flags] <comando> [args]")
	fmt.Fprintln(w, "\nComandos:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-38s %s\n", commands[name].usage, commands[name].help)
	}
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, global.FlagUsages())
}
