package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/api-sage/savings-account-processor/src/internal/security"
	"github.com/api-sage/savings-account-processor/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

// SavingsAccountTransactionService records deposits and withdrawals against a
// savings account. Each entry point runs the full workflow inside one unit of
// work: operation gate, pre-mutation transaction-id capture, balance movement,
// interest decision, persistence, journal posting and, for deposits, the
// guarantor fund release.
type SavingsAccountTransactionService struct {
	accountRepo      repo_interfaces.SavingsAccountRepository
	transactionRepo  repo_interfaces.SavingsAccountTransactionRepository
	loanRepo         repo_interfaces.LoanRepository
	txRunner         repo_interfaces.TxRunner
	configService    service_interfaces.ConfigurationService
	journalService   service_interfaces.JournalEntryService
	guarantorRelease service_interfaces.GuarantorReleaseService
}

func NewSavingsAccountTransactionService(
	accountRepo repo_interfaces.SavingsAccountRepository,
	transactionRepo repo_interfaces.SavingsAccountTransactionRepository,
	loanRepo repo_interfaces.LoanRepository,
	txRunner repo_interfaces.TxRunner,
	configService service_interfaces.ConfigurationService,
	journalService service_interfaces.JournalEntryService,
	guarantorRelease service_interfaces.GuarantorReleaseService,
) *SavingsAccountTransactionService {
	return &SavingsAccountTransactionService{
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		loanRepo:         loanRepo,
		txRunner:         txRunner,
		configService:    configService,
		journalService:   journalService,
		guarantorRelease: guarantorRelease,
	}
}

func (s *SavingsAccountTransactionService) RecordWithdrawal(
	ctx context.Context,
	account domain.SavingsAccount,
	transactionDate time.Time,
	transactionAmount decimal.Decimal,
	paymentDetail *domain.PaymentDetail,
	flags domain.SavingsTransactionFlags,
) (*domain.SavingsAccountTransaction, error) {
	logger.Info("transaction service withdrawal request", logger.Fields{
		"accountId": account.ID(),
		"amount":    transactionAmount.StringFixed(domain.MoneyScale),
		"valueDate": transactionDate.Format("2006-01-02"),
	})

	if flags.IsRegularTransaction && !account.AllowWithdrawal() {
		err := &domain.OperationNotAllowedError{AccountID: account.ID(), Action: "withdraw", Product: account.DepositAccountType()}
		logger.Error("transaction service withdrawal not allowed", err, logger.Fields{"accountId": account.ID()})
		return nil, err
	}

	user, _ := security.AppUserIfPresent(ctx)
	today := security.TenantDate(ctx)
	postingAtPeriodEnd := s.configService.IsInterestPostingAtPeriodEnd()
	financialYearStartMonth := s.configService.FinancialYearStartMonth()

	var withdrawal *domain.SavingsAccountTransaction
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		existingTransactionIDs := account.FindExistingTransactionIDs()
		existingReversedTransactionIDs := account.FindExistingReversedTransactionIDs()

		withdrawal = account.Withdraw(transactionDate, transactionAmount, paymentDetail, user, flags.IsApplyWithdrawFee)

		if account.IsBeforeLastPostingPeriod(transactionDate) {
			account.PostInterest(today, flags.IsInterestTransfer, postingAtPeriodEnd, financialYearStartMonth)
		} else {
			account.CalculateInterestUsing(today, flags.IsInterestTransfer, postingAtPeriodEnd, financialYearStartMonth)
		}

		if err := account.ValidateAccountBalanceDoesNotBecomeNegative(transactionAmount, flags.IsExceptionForBalanceCheck); err != nil {
			return err
		}

		if err := s.persistNewTransactions(ctx, account); err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return fmt.Errorf("save account: %w", err)
		}

		return s.postJournalEntries(ctx, account, existingTransactionIDs, existingReversedTransactionIDs, flags.IsAccountTransfer)
	})
	if err != nil {
		logger.Error("transaction service withdrawal failed", err, logger.Fields{"accountId": account.ID()})
		return nil, err
	}

	logger.Info("transaction service withdrawal recorded", logger.Fields{
		"accountId":     account.ID(),
		"transactionId": withdrawal.ID,
	})
	return withdrawal, nil
}

func (s *SavingsAccountTransactionService) RecordDeposit(
	ctx context.Context,
	account domain.SavingsAccount,
	transactionDate time.Time,
	transactionAmount decimal.Decimal,
	paymentDetail *domain.PaymentDetail,
	isAccountTransfer bool,
	isRegularTransaction bool,
) (*domain.SavingsAccountTransaction, error) {
	logger.Info("transaction service deposit request", logger.Fields{
		"accountId": account.ID(),
		"amount":    transactionAmount.StringFixed(domain.MoneyScale),
		"valueDate": transactionDate.Format("2006-01-02"),
	})

	if isRegularTransaction && !account.AllowDeposit() {
		err := &domain.OperationNotAllowedError{AccountID: account.ID(), Action: "deposit", Product: account.DepositAccountType()}
		logger.Error("transaction service deposit not allowed", err, logger.Fields{"accountId": account.ID()})
		return nil, err
	}

	user, _ := security.AppUserIfPresent(ctx)
	today := security.TenantDate(ctx)
	postingAtPeriodEnd := s.configService.IsInterestPostingAtPeriodEnd()
	financialYearStartMonth := s.configService.FinancialYearStartMonth()

	// Deposits are never interest transfers; the flag exists only for the
	// internal transfer path.
	const isInterestTransfer = false

	var deposit *domain.SavingsAccountTransaction
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		existingTransactionIDs := account.FindExistingTransactionIDs()
		existingReversedTransactionIDs := account.FindExistingReversedTransactionIDs()

		deposit = account.Deposit(transactionDate, transactionAmount, paymentDetail, user)

		if account.IsBeforeLastPostingPeriod(transactionDate) {
			account.PostInterest(today, isInterestTransfer, postingAtPeriodEnd, financialYearStartMonth)
		} else {
			account.CalculateInterestUsing(today, isInterestTransfer, postingAtPeriodEnd, financialYearStartMonth)
		}

		if err := s.persistNewTransactions(ctx, account); err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return fmt.Errorf("save account: %w", err)
		}

		if err := s.postJournalEntries(ctx, account, existingTransactionIDs, existingReversedTransactionIDs, isAccountTransfer); err != nil {
			return err
		}

		return s.releaseGuarantorFunds(ctx, account, deposit, transactionAmount)
	})
	if err != nil {
		logger.Error("transaction service deposit failed", err, logger.Fields{"accountId": account.ID()})
		return nil, err
	}

	logger.Info("transaction service deposit recorded", logger.Fields{
		"accountId":     account.ID(),
		"transactionId": deposit.ID,
	})
	return deposit, nil
}

// PostJournalEntries re-posts the account's journal diff outside a money
// movement, e.g. after a reversal initiated elsewhere.
func (s *SavingsAccountTransactionService) PostJournalEntries(ctx context.Context, account domain.SavingsAccount, existingTransactionIDs, existingReversedTransactionIDs []string) error {
	const isAccountTransfer = false
	return s.postJournalEntries(ctx, account, existingTransactionIDs, existingReversedTransactionIDs, isAccountTransfer)
}

// persistNewTransactions stamps durable identities onto every transaction
// appended during the unit of work: the primary movement, but also withdrawal
// fees and interest postings. All must be persisted before the journal diff
// is derived.
func (s *SavingsAccountTransactionService) persistNewTransactions(ctx context.Context, account domain.SavingsAccount) error {
	for _, transaction := range account.Transactions() {
		if transaction.ID != "" {
			continue
		}
		if err := s.transactionRepo.Save(ctx, transaction); err != nil {
			return fmt.Errorf("save savings account transaction: %w", err)
		}
	}
	return nil
}

func (s *SavingsAccountTransactionService) postJournalEntries(ctx context.Context, account domain.SavingsAccount, existingTransactionIDs, existingReversedTransactionIDs []string, isAccountTransfer bool) error {
	bridgeData := account.DeriveAccountingBridgeData(existingTransactionIDs, existingReversedTransactionIDs, isAccountTransfer)
	if err := s.journalService.CreateJournalEntriesForSavings(ctx, bridgeData); err != nil {
		return fmt.Errorf("post journal entries: %w", err)
	}
	return nil
}

// releaseGuarantorFunds triggers the guarantor release engine when the
// depositing account is flagged for it and its client has an active loan.
func (s *SavingsAccountTransactionService) releaseGuarantorFunds(ctx context.Context, account domain.SavingsAccount, deposit *domain.SavingsAccountTransaction, transactionAmount decimal.Decimal) error {
	if !account.IsReleaseGuarantor() {
		return nil
	}

	loanID, err := s.loanRepo.LoanIDForClient(ctx, account.ClientID())
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("resolve loan for client %s: %w", account.ClientID(), err)
	}

	amount := decimal.NewNullDecimal(transactionAmount)
	return s.guarantorRelease.ReleaseOnDeposit(ctx, loanID, deposit, amount)
}
