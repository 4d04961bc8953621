package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Consolidation  *ConsolidationHandler
	Balances       *BalanceHandler
	Reconciliation *ReconciliationHandler
	Alerts         *AlertHandler
	Realtime       *RealtimeHandler
	Health         *HealthHandler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)

	cons := api.Group("/consolidacao")
	cons.Get("/:periodo", deps.Consolidation.Group)
	cons.Get("/:periodo/empresas/:id", deps.Consolidation.Company)
	cons.Get("/:periodo/relatorio.:formato", deps.Consolidation.Report)

	saldos := api.Group("/saldos")
	saldos.Get("/", deps.Balances.ByCompany)
	saldos.Get("/geral", deps.Balances.Overall)
	saldos.Get("/variacao", deps.Balances.Variation)

	rec := api.Group("/reconciliacao")
	rec.Post("/itens/:itemId/reconciliar", adminOnly, deps.Reconciliation.Mark)
	rec.Get("/:empresaId", deps.Reconciliation.Items)
	rec.Get("/:empresaId/resumo", deps.Reconciliation.Summary)

	alertas := api.Group("/alertas")
	alertas.Get("/", deps.Alerts.List)
	alertas.Patch("/:id/lido", deps.Alerts.MarkRead)
	alertas.Post("/verificar", adminOnly, deps.Alerts.RunCheck)

	if deps.Realtime != nil {
		api.Get("/realtime", deps.Realtime.Stream)
	}
}
