package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// auditService implements the AuditService interface
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditService {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditService = (*auditService)(nil)

func (s *auditService) ComputeNetLiquidity(ctx context.Context) (decimal.Decimal, error) {
	liquidity, err := s.netLiquidity(ctx, s.auditRepo)
	if err != nil {
		return decimal.Zero, s.storeError(ctx, err, "failed to compute net liquidity")
	}
	return liquidity, nil
}

func (s *auditService) CheckTransactionBalance(ctx context.Context) (int, error) {
	count, err := s.auditRepo.CountOddEntryTransactions(ctx)
	if err != nil {
		return 0, s.storeError(ctx, err, "failed to count unbalanced transactions")
	}
	return count, nil
}

// IntegrityCheck reads both figures from one snapshot so a commit landing
// in between cannot skew the report.
func (s *auditService) IntegrityCheck(ctx context.Context) (*domain.IntegrityReport, error) {
	var liquidity decimal.Decimal
	var unbalanced int

	err := s.auditRepo.Snapshot(ctx, func(reader portsrepo.AuditReader) error {
		var err error
		if liquidity, err = s.netLiquidity(ctx, reader); err != nil {
			return err
		}
		unbalanced, err = reader.CountOddEntryTransactions(ctx)
		return err
	})
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to run integrity check")
	}

	report := domain.NewIntegrityReport(liquidity, unbalanced)
	s.LogInfo(ctx, "Integrity check completed",
		slog.String("total_system_liquidity", liquidity.StringFixed(domain.AmountScale)),
		slog.Int("unbalanced_transactions_count", unbalanced),
		slog.String("status", string(report.Status)))
	return &report, nil
}

func (s *auditService) netLiquidity(ctx context.Context, reader portsrepo.AuditReader) (decimal.Decimal, error) {
	credits, debits, err := reader.SumAllEntries(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.NetBalance(credits, debits), nil
}
