package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-financeiro/pkg/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := &env{out: &out, log: logger.Nop()}
	root := newRootCmd(e)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	assert.Nil(t, e.container, "las validaciones fallan antes de conectar")
	return out.String(), err
}

func TestConsolidate_PeriodoObligatorio(t *testing.T) {
	_, err := execute(t, "consolidate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodo")
}

func TestConsolidate_PeriodoInvalido(t *testing.T) {
	_, err := execute(t, "consolidate", "--periodo", "2024-13")
	assert.Error(t, err)
}

func TestReconcile_FlagsObligatorios(t *testing.T) {
	_, err := execute(t, "reconcile", "--empresa", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--inicio")
}

func TestReconcile_MarcarIDInvalido(t *testing.T) {
	_, err := execute(t, "reconcile", "--marcar", "caixa-1")
	assert.Error(t, err)
}

func TestRoot_Subcomandos(t *testing.T) {
	root := newRootCmd(&env{})
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"consolidate", "reconcile", "alerts", "migrate", "seed", "token"} {
		assert.True(t, names[want], want)
	}
}

func TestToken_RolInvalido(t *testing.T) {
	_, err := execute(t, "token", "--role", "root")
	assert.Error(t, err)
}

func TestToken_Emite(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	out, err := execute(t, "token", "--role", "admin", "--usuario", "ana")
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte(".")), "formato header.payload.firma")
}
