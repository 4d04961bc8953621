package docs_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/painel-financeiro/docs"
	apphttp "github.com/jhoicas/painel-financeiro/internal/interfaces/http"
)

type document struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDocument(t *testing.T) document {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestReadDoc_Registrado(t *testing.T) {
	doc := readDocument(t)
	assert.Equal(t, docs.SwaggerInfo.Title, doc.Info.Title)
	assert.Contains(t, doc.Definitions, "dto.ErrorResponse")
	assert.Contains(t, doc.Definitions, "dto.GroupSummaryDTO")
}

var paramRe = regexp.MustCompile(`:(\w+)`)

// Cada ruta registrada por el router debe estar documentada con su método.
func TestReadDoc_CubreTodasLasRutas(t *testing.T) {
	doc := readDocument(t)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Consolidation:  apphttp.NewConsolidationHandler(nil),
		Balances:       apphttp.NewBalanceHandler(nil),
		Reconciliation: apphttp.NewReconciliationHandler(nil, nil),
		Alerts:         apphttp.NewAlertHandler(nil, nil),
		Realtime:       apphttp.NewRealtimeHandler(nil, zerolog.Nop()),
		Health:         apphttp.NewHealthHandler(nil, nil),
		JWTSecret:      "x",
	})

	checked := 0
	for _, r := range app.GetRoutes(true) {
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPatch:
		default:
			continue
		}
		path := paramRe.ReplaceAllString(r.Path, "{$1}")
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "ruta sin documentar: %s %s", r.Method, path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(r.Method), path)
		checked++
	}
	assert.Equal(t, 14, checked)
}
