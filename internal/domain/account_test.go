package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "Checking account should pass",
			account: Account{
				ID:      uuid.New(),
				OwnerID: "user-1",
				Name:    "Main Checking",
				Type:    AccountTypeChecking,
				Balance: decimal.NewFromInt(1000),
			},
			wantErr: false,
		},
		{
			name: "Credit account with negative balance should pass",
			account: Account{
				ID:      uuid.New(),
				OwnerID: "user-1",
				Name:    "Credit Card",
				Type:    AccountTypeCredit,
				Balance: decimal.NewFromInt(-250),
			},
			wantErr: false,
		},
		{
			name: "Account with empty name should fail",
			account: Account{
				ID:      uuid.New(),
				OwnerID: "user-1",
				Name:    "",
				Type:    AccountTypeSavings,
				Balance: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "account name cannot be empty",
		},
		{
			name: "Account with unknown type should fail",
			account: Account{
				ID:      uuid.New(),
				OwnerID: "user-1",
				Name:    "Mystery",
				Type:    AccountType("BROKERAGE"),
				Balance: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "account type must be",
		},
		{
			name: "Account without owner should fail",
			account: Account{
				ID:      uuid.New(),
				OwnerID: "",
				Name:    "Orphan",
				Type:    AccountTypeChecking,
				Balance: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountUpdate_ApplyTo(t *testing.T) {
	account := Account{
		ID:      uuid.New(),
		OwnerID: "user-1",
		Name:    "Old Name",
		Type:    AccountTypeChecking,
		Balance: decimal.NewFromInt(100),
	}

	newName := "New Name"
	newBalance := decimal.NewFromInt(9999)

	AccountUpdate{Name: &newName, Balance: &newBalance}.ApplyTo(&account)

	assert.Equal(t, "New Name", account.Name)
	assert.Equal(t, AccountTypeChecking, account.Type, "unsupplied field must stay untouched")
	assert.True(t, newBalance.Equal(account.Balance))
}
