package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cropbank/banking-system/internal/core/domain"
)

func duplicateKeyErr(msg string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: msg},
		},
	}
}

func TestDuplicateUserError_UsernameIndex(t *testing.T) {
	err := duplicateKeyErr(
		`E11000 duplicate key error collection: banking_system.users index: username_1 dup key: { username: "bob" }`)
	if !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("fixture must register as a duplicate-key error")
	}
	if got := duplicateUserError(err); !errors.Is(got, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for username index, got %v", got)
	}
}

func TestDuplicateUserError_EmailIndex(t *testing.T) {
	err := duplicateKeyErr(
		`E11000 duplicate key error collection: banking_system.users index: email_1 dup key: { email: "username@bank.example" }`)
	if got := duplicateUserError(err); !errors.Is(got, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists for email index, got %v", got)
	}
}
