package billing

import (
	"context"
	"fmt"
	"strings"
)

// CreditLedger applies credit grants to user balances.
type CreditLedger struct {
	repo Repository
}

func NewCreditLedger(repo Repository) *CreditLedger {
	return &CreditLedger{repo: repo}
}

// Grant adds credits to the user registered under externalID and returns the
// new balance. The increment happens in a single statement, so concurrent
// grants for the same user never lose updates.
func (l *CreditLedger) Grant(ctx context.Context, externalID string, credits int) (int, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return 0, ErrMissingCustomerReference
	}
	if credits < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeGrant, credits)
	}

	balance, err := l.repo.IncrementUserCredits(ctx, externalID, credits)
	if err != nil {
		return 0, fmt.Errorf("grant %d credits to %s: %w", credits, externalID, err)
	}
	return balance, nil
}
