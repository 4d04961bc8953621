// finctl comandos de operación del panel: consolidar, conciliar, verificar alertas, migrar y poblar datos demo.
//
// Uso:
//
//	finctl consolidate --periodo 2024-03 [--empresa 7]
//	finctl reconcile --empresa 7 --inicio 2024-03-01 --fim 2024-03-31
//	finctl alerts run
//	finctl migrate
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/internal/bootstrap"
	"github.com/jhoicas/painel-financeiro/pkg/config"
	"github.com/jhoicas/painel-financeiro/pkg/logger"
)

// env estado compartido por los subcomandos; el contenedor se construye al primer uso.
type env struct {
	out       io.Writer
	log       *logger.Logger
	cfg       *config.Config
	container *bootstrap.Container
}

func (e *env) open(ctx context.Context) (*bootstrap.Container, error) {
	if e.container != nil {
		return e.container, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e.cfg = cfg
	if e.log == nil {
		e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	}
	c, err := bootstrap.New(ctx, cfg, e.log)
	if err != nil {
		return nil, err
	}
	e.container = c
	return c, nil
}

func (e *env) close() {
	if e.container != nil {
		e.container.Close()
	}
}

// printJSON escribe v indentado en la salida del comando.
func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "finctl",
		Short:         "Operaciones del painel financeiro consolidado",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newConsolidateCmd(e),
		newReconcileCmd(e),
		newAlertsCmd(e),
		newMigrateCmd(e),
		newSeedCmd(e),
		newTokenCmd(e),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	e := &env{out: os.Stdout}

	err := newRootCmd(e).ExecuteContext(ctx)
	e.close()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
