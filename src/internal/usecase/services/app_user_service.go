package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/savings-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/savings-account-processor/src/internal/commons"
	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// AppUserService manages the operator identities stamped onto savings
// transactions and verifies their transaction PINs.
type AppUserService struct {
	userRepo repo_interfaces.AppUserRepository
}

func NewAppUserService(userRepo repo_interfaces.AppUserRepository) *AppUserService {
	return &AppUserService{userRepo: userRepo}
}

func (s *AppUserService) CreateAppUser(ctx context.Context, username, firstName, lastName, transactionPin string) (commons.Response[domain.AppUser], error) {
	username = strings.TrimSpace(username)
	transactionPin = strings.TrimSpace(transactionPin)

	logger.Info("app user service create user request", logger.Fields{
		"username": username,
	})

	if username == "" {
		err := fmt.Errorf("username is required")
		return commons.ErrorResponse[domain.AppUser]("validation failed", err.Error()), err
	}
	if transactionPin == "" {
		err := fmt.Errorf("transactionPin is required")
		return commons.ErrorResponse[domain.AppUser]("validation failed", err.Error()), err
	}

	hashedPin, err := hashTransactionPin(transactionPin)
	if err != nil {
		logger.Error("app user service hash pin failed", err, nil)
		return commons.ErrorResponse[domain.AppUser]("failed to create user", "failed to hash transaction pin"), err
	}

	user := domain.AppUser{
		Username:           username,
		FirstName:          strings.TrimSpace(firstName),
		LastName:           strings.TrimSpace(lastName),
		TransactionPinHash: hashedPin,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("app user service create user repository failed", err, logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[domain.AppUser]("failed to create user", "Unable to create user right now"), err
	}

	logger.Info("app user service create user success", logger.Fields{
		"userId":   created.ID,
		"username": created.Username,
	})
	return commons.SuccessResponse("user created successfully", created), nil
}

func (s *AppUserService) GetAppUser(ctx context.Context, id string) (commons.Response[domain.AppUser], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[domain.AppUser]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("app user service get user failed", err, logger.Fields{
			"userId": id,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[domain.AppUser]("User not found"), err
		}
		return commons.ErrorResponse[domain.AppUser]("failed to get user", "Unable to fetch user right now"), err
	}

	return commons.SuccessResponse("user fetched successfully", user), nil
}

func (s *AppUserService) VerifyTransactionPin(ctx context.Context, username, pin string) (commons.Response[bool], error) {
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)

	if username == "" {
		err := fmt.Errorf("username is required")
		return commons.ErrorResponse[bool]("validation failed", err.Error()), err
	}
	if pin == "" {
		err := fmt.Errorf("pin is required")
		return commons.ErrorResponse[bool]("validation failed", err.Error()), err
	}

	storedPinHash, err := s.userRepo.GetTransactionPinHashByUsername(ctx, username)
	if err != nil {
		logger.Error("app user service verify pin lookup failed", err, logger.Fields{
			"username": username,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[bool]("User not found"), err
		}
		return commons.ErrorResponse[bool]("failed to verify pin", "Unable to verify pin right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPinHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("app user service verify pin mismatch", logger.Fields{
				"username": username,
			})
			return commons.ErrorResponse[bool]("invalid pin", "provided pin does not match"), fmt.Errorf("invalid pin")
		}
		wrappedErr := fmt.Errorf("verify transaction pin: %w", err)
		return commons.ErrorResponse[bool]("failed to verify pin", "Unable to verify pin right now"), wrappedErr
	}

	logger.Info("app user service verify pin success", logger.Fields{
		"username": username,
	})
	return commons.SuccessResponse("pin verified successfully", true), nil
}

func hashTransactionPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash transaction pin: %w", err)
	}
	return string(hashed), nil
}
