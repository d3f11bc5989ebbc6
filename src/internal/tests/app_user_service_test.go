package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

type appUserRepoStub struct {
	createFn           func(ctx context.Context, user domain.AppUser) (domain.AppUser, error)
	getByIDFn          func(ctx context.Context, id string) (domain.AppUser, error)
	getPinHashByUserFn func(ctx context.Context, username string) (string, error)
}

func (s appUserRepoStub) Create(ctx context.Context, user domain.AppUser) (domain.AppUser, error) {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return domain.AppUser{}, nil
}

func (s appUserRepoStub) GetByID(ctx context.Context, id string) (domain.AppUser, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.AppUser{}, nil
}

func (s appUserRepoStub) GetTransactionPinHashByUsername(ctx context.Context, username string) (string, error) {
	if s.getPinHashByUserFn != nil {
		return s.getPinHashByUserFn(ctx, username)
	}
	return "", domain.ErrRecordNotFound
}

func TestAppUserServiceCreateHashesPin(t *testing.T) {
	svc := services.NewAppUserService(appUserRepoStub{
		createFn: func(_ context.Context, user domain.AppUser) (domain.AppUser, error) {
			if user.TransactionPinHash == "" || user.TransactionPinHash == "1234" {
				t.Fatal("expected hashed transaction pin before persistence")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.TransactionPinHash), []byte("1234")); err != nil {
				t.Fatalf("expected a bcrypt hash of the pin, got %v", err)
			}
			user.ID = "u-1"
			user.CreatedAt = time.Now().UTC()
			user.UpdatedAt = time.Now().UTC()
			return user, nil
		},
	})

	resp, err := svc.CreateAppUser(context.Background(), "ada", "Ada", "Lovelace", "1234")
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID != "u-1" {
		t.Fatal("expected successful response carrying the created user")
	}
}

func TestAppUserServiceCreateValidationError(t *testing.T) {
	svc := services.NewAppUserService(appUserRepoStub{})

	if _, err := svc.CreateAppUser(context.Background(), " ", "Ada", "Lovelace", "1234"); err == nil {
		t.Fatal("expected validation error for blank username")
	}
	if _, err := svc.CreateAppUser(context.Background(), "ada", "Ada", "Lovelace", ""); err == nil {
		t.Fatal("expected validation error for missing pin")
	}
}

func TestAppUserServiceVerifyTransactionPin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	svc := services.NewAppUserService(appUserRepoStub{
		getPinHashByUserFn: func(_ context.Context, username string) (string, error) {
			if username != "ada" {
				t.Fatalf("expected lookup for ada, got %s", username)
			}
			return string(hash), nil
		},
	})

	resp, err := svc.VerifyTransactionPin(context.Background(), "ada", "1234")
	if err != nil {
		t.Fatalf("expected pin to verify, got %v", err)
	}
	if !resp.Success || resp.Data == nil || !*resp.Data {
		t.Fatal("expected successful verification response")
	}

	if _, err := svc.VerifyTransactionPin(context.Background(), "ada", "9999"); err == nil {
		t.Fatal("expected mismatching pin to fail verification")
	}
}
