package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-financeiro/pkg/config"
)

func localDB() config.DBConfig {
	return config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "u", Password: "p", DBName: "fin", SSLMode: "disable",
		MaxConns: 12, MinConns: 3, MaxConnLifetimeMin: 45, MaxConnIdleMin: 10,
		ApplicationName: "painel-test", ForceIPv4: true,
	}
}

func TestPoolConfig_TamanoDesdeConfig(t *testing.T) {
	pc, err := poolConfig(localDB())
	require.NoError(t, err)

	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 45*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 10*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "painel-test", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_CerosUsanDefaultsDePgx(t *testing.T) {
	cfg := localDB()
	cfg.MaxConns, cfg.MinConns, cfg.MaxConnLifetimeMin, cfg.MaxConnIdleMin = 0, 0, 0, 0

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Positive(t, pc.MaxConns)
	assert.Positive(t, pc.MaxConnLifetime)
}

func TestPoolConfig_MinMayorQueMax(t *testing.T) {
	cfg := localDB()
	cfg.MinConns = 30
	_, err := poolConfig(cfg)
	assert.Error(t, err)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := localDB()
	cfg.DatabaseURL = "postgres://x:y@10.0.0.7:6543/otra?sslmode=disable"

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
}

func TestWithIPv4Host_SinCambiosCuandoNoAplica(t *testing.T) {
	for _, dsn := range []string{
		"postgres://u:p@127.0.0.1:5432/fin",
		"postgres://u:p@[::1]:5432/fin",
		"host=db user=u dbname=fin",
	} {
		assert.Equal(t, dsn, withIPv4Host(dsn), dsn)
	}
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.Error(t, err)
}
