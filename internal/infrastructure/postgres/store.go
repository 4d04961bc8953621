package postgres

import "time"

// Store agrupa los adaptadores del almacén de registros sobre un mismo Querier.
type Store struct {
	Companies      *CompanyRepo
	Accounts       *AccountRepo
	CashFlow       *CashFlowRepo
	Taxes          *TaxRepo
	Payroll        *PayrollRepo
	BankAccounts   *BankAccountRepo
	KPIs           *KPIRepo
	Alerts         *AlertRepo
	Reconciliation *ReconciliationRepo
}

// NewStore construye todos los repositorios. timeout <= 0 desactiva el límite por consulta.
func NewStore(q Querier, timeout time.Duration) *Store {
	return &Store{
		Companies:      NewCompanyRepository(q, timeout),
		Accounts:       NewAccountRepository(q, timeout),
		CashFlow:       NewCashFlowRepository(q, timeout),
		Taxes:          NewTaxRepository(q, timeout),
		Payroll:        NewPayrollRepository(q, timeout),
		BankAccounts:   NewBankAccountRepository(q, timeout),
		KPIs:           NewKPIRepository(q, timeout),
		Alerts:         NewAlertRepository(q, timeout),
		Reconciliation: NewReconciliationRepository(q, timeout),
	}
}
