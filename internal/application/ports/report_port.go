package ports

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

// GroupReportRenderer genera un archivo (PDF, XLSX) a partir del resumen del grupo.
type GroupReportRenderer interface {
	Render(ctx context.Context, summary *dto.GroupSummaryDTO) ([]byte, error)
	ContentType() string
	Extension() string
}
