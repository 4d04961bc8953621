package ports

import "time"

// Canales de notificación en tiempo real.
const (
	ChannelAccounts  = "contas"
	ChannelCompanies = "empresas"
	ChannelKPIs      = "kpis"
	ChannelCashFlow  = "fluxoCaixa"
	ChannelTaxes     = "impostos"
	ChannelPayroll   = "funcionarios"
	ChannelAlerts    = "alertas"
	ChannelDashboard = "dashboard"
)

// Channels lista de canales válidos.
var Channels = []string{
	ChannelAccounts, ChannelCompanies, ChannelKPIs, ChannelCashFlow,
	ChannelTaxes, ChannelPayroll, ChannelAlerts, ChannelDashboard,
}

// Event cambio de datos entregado a los clientes suscritos al canal.
type Event struct {
	Channel   string    `json:"channel"`
	Type      string    `json:"type"` // created, updated, reconciled, check_completed...
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier puerto de salida hacia los clientes en vivo.
// Publish no bloquea ni falla: la entrega es best-effort y nunca afecta a la operación que la origina.
type Notifier interface {
	Publish(ev Event)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(Event) {}
