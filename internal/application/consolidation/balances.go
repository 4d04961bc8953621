package consolidation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
)

// daysPerMonth proyección lineal de la variación diaria al mes.
var daysPerMonth = decimal.NewFromInt(30)

// BalanceService saldos bancarios del grupo. Solo considera cuentas activas.
type BalanceService struct {
	banks repository.BankAccountRepository
	cache *cache.Service
}

// NewBalanceService construye el servicio. cache puede ser nil.
func NewBalanceService(banks repository.BankAccountRepository, c *cache.Service) *BalanceService {
	return &BalanceService{banks: banks, cache: c}
}

func (s *BalanceService) activeAccounts(ctx context.Context) ([]*entity.BankAccount, error) {
	all, err := s.banks.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	active := make([]*entity.BankAccount, 0, len(all))
	for _, a := range all {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return active, nil
}

// BalancesByCompany saldo por empresa, ordenado por id de empresa.
func (s *BalanceService) BalancesByCompany(ctx context.Context) ([]dto.CompanyBalanceDTO, error) {
	out, err := cache.GetOrSet(ctx, s.cache, cache.Key("saldos", "por_empresa"), cache.TTLBalances, func(ctx context.Context) ([]dto.CompanyBalanceDTO, error) {
		accounts, err := s.activeAccounts(ctx)
		if err != nil {
			return nil, err
		}
		byCompany := make(map[int64]*dto.CompanyBalanceDTO)
		for _, a := range accounts {
			b, ok := byCompany[a.CompanyID]
			if !ok {
				b = &dto.CompanyBalanceDTO{CompanyID: a.CompanyID}
				byCompany[a.CompanyID] = b
			}
			b.TotalBalance = b.TotalBalance.Add(a.CurrentBalance)
			b.AccountCount++
		}
		list := make([]dto.CompanyBalanceDTO, 0, len(byCompany))
		for _, b := range byCompany {
			list = append(list, *b)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].CompanyID < list[j].CompanyID })
		return list, nil
	})
	if err != nil {
		return nil, fmt.Errorf("consolidation.BalancesByCompany: %w", err)
	}
	return out, nil
}

// OverallBalance saldo total del grupo.
func (s *BalanceService) OverallBalance(ctx context.Context) (*dto.OverallBalanceDTO, error) {
	out, err := cache.GetOrSet(ctx, s.cache, cache.Key("saldos", "geral"), cache.TTLBalances, func(ctx context.Context) (*dto.OverallBalanceDTO, error) {
		accounts, err := s.activeAccounts(ctx)
		if err != nil {
			return nil, err
		}
		o := &dto.OverallBalanceDTO{}
		companies := make(map[int64]struct{})
		for _, a := range accounts {
			o.TotalBalance = o.TotalBalance.Add(a.CurrentBalance)
			o.AccountCount++
			companies[a.CompanyID] = struct{}{}
		}
		o.CompanyCount = len(companies)
		return o, nil
	})
	if err != nil {
		return nil, fmt.Errorf("consolidation.OverallBalance: %w", err)
	}
	return out, nil
}

// BalanceVariation variación del saldo actual frente al anterior.
// Porcentajes redondeados a 2 decimales; 0 si el saldo anterior es 0.
func (s *BalanceService) BalanceVariation(ctx context.Context) (*dto.BalanceVariationDTO, error) {
	out, err := cache.GetOrSet(ctx, s.cache, cache.Key("saldos", "variacao"), cache.TTLBalances, func(ctx context.Context) (*dto.BalanceVariationDTO, error) {
		accounts, err := s.activeAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return variation(accounts), nil
	})
	if err != nil {
		return nil, fmt.Errorf("consolidation.BalanceVariation: %w", err)
	}
	return out, nil
}

func variation(accounts []*entity.BankAccount) *dto.BalanceVariationDTO {
	v := &dto.BalanceVariationDTO{}
	for _, a := range accounts {
		v.CurrentTotal = v.CurrentTotal.Add(a.CurrentBalance)
		v.PreviousTotal = v.PreviousTotal.Add(a.PreviousBalance)
	}
	v.DailyVariation = v.CurrentTotal.Sub(v.PreviousTotal)
	daily := decimal.Zero
	if !v.PreviousTotal.IsZero() {
		daily = v.DailyVariation.Div(v.PreviousTotal).Mul(hundred)
	}
	v.MonthlyVariation = v.DailyVariation.Mul(daysPerMonth)
	v.DailyPercent = daily.Round(2)
	v.MonthlyPercent = daily.Mul(daysPerMonth).Round(2)
	return v
}
