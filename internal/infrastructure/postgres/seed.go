package postgres

import (
	"context"
	"fmt"
	"time"
)

// SeedDemo inserta un grupo de demostración (dos empresas con cuentas, caja, impuestos,
// nómina, bancos y KPIs) relativo a today. Pensado para ejecutarse dentro de TxRunner.Run.
func SeedDemo(ctx context.Context, q Querier, today time.Time) error {
	period := today.Format("2006-01")
	day := func(offset int) time.Time {
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	companies := []struct{ legal, trade, cnpj, city, state string }{
		{"Alfa Comércio Ltda", "Alfa", "11.222.333/0001-81", "São Paulo", "SP"},
		{"Beta Serviços S.A.", "Beta", "44.555.666/0001-02", "Curitiba", "PR"},
	}
	ids := make([]int64, 0, len(companies))
	for _, c := range companies {
		var id int64
		err := q.QueryRow(ctx, `
			INSERT INTO companies (legal_name, trade_name, cnpj, city, state, status)
			VALUES ($1, $2, $3, $4, $5, 'Aberto')
			ON CONFLICT (cnpj) DO UPDATE SET updated_at = now()
			RETURNING id`, c.legal, c.trade, c.cnpj, c.city, c.state).Scan(&id)
		if err != nil {
			return mapError("seed company "+c.trade, err)
		}
		ids = append(ids, id)
	}
	alfa, beta := ids[0], ids[1]

	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO accounts (company_id, type, description, category, amount, due_date, status, priority)
			VALUES ($1, 'Receber', 'Venda lote 42', 'Vendas', 15000.00, $2, 'Pendente', 'Alta')`, []any{alfa, day(5)}},
		{`INSERT INTO accounts (company_id, type, description, category, amount, due_date, status, priority)
			VALUES ($1, 'Pagar', 'Fornecedor XYZ', 'Insumos', 4200.50, $2, 'Pendente', 'Media')`, []any{alfa, day(-3)}},
		{`INSERT INTO accounts (company_id, type, description, category, amount, due_date, status, priority, paid_at)
			VALUES ($1, 'Pagar', 'Aluguel', 'Fixos', 8000.00, $2, 'Pago', 'Alta', $2)`, []any{beta, day(-1)}},
		{`INSERT INTO cash_flow_entries (company_id, entry_date, direction, description, category, amount, payment_method)
			VALUES ($1, $2, 'Entrada', 'Recebimento PIX', 'Vendas', 3200.00, 'PIX')`, []any{alfa, day(0)}},
		{`INSERT INTO cash_flow_entries (company_id, entry_date, direction, description, category, amount, payment_method)
			VALUES ($1, $2, 'Saida', 'Tarifa bancária', 'Bancos', 45.90, 'Débito')`, []any{beta, day(0)}},
		{`INSERT INTO tax_obligations (company_id, tax_type, period, base_amount, rate, due_date, status)
			VALUES ($1, 'ISS', $2, 20000.00, 5, $3, 'Pendente')`, []any{beta, period, day(4)}},
		{`INSERT INTO payroll_records (company_id, name, role, contract_type, base_salary, benefits, status, hired_at)
			VALUES ($1, 'Maria Souza', 'Analista', 'CLT', 5200.00, 800.00, 'Contratado', $2)`, []any{alfa, day(-400)}},
		{`INSERT INTO bank_accounts (company_id, name, bank, branch, number, current_balance, previous_balance, status, balance_at)
			VALUES ($1, 'Conta Movimento', 'Banco do Brasil', '1234', '56789-0', 25000.00, 24000.00, 'Ativa', $2)`, []any{alfa, day(0)}},
		{`INSERT INTO bank_accounts (company_id, name, bank, branch, number, current_balance, previous_balance, status, balance_at)
			VALUES ($1, 'Conta Principal', 'Itaú', '0001', '11111-1', 600.00, 1500.00, 'Ativa', $2)`, []any{beta, day(0)}},
		{`INSERT INTO kpi_records (company_id, period, gross_revenue, taxes, fixed_costs, variable_costs)
			VALUES ($1, $2, 50000.00, 6000.00, 12000.00, 9000.00)`, []any{alfa, period}},
		{`INSERT INTO kpi_records (company_id, period, gross_revenue, taxes, fixed_costs, variable_costs)
			VALUES ($1, $2, 10000.00, 1000.00, 14000.00, 2000.00)`, []any{beta, period}},
	}
	for i, s := range stmts {
		if _, err := q.Exec(ctx, s.sql, s.args...); err != nil {
			return mapError(fmt.Sprintf("seed stmt %d", i), err)
		}
	}
	return nil
}
