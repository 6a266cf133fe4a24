package transfer

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

func TestConfirmLinkUseCase_LinksValidPair(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-100.00", testDay(0)),
		testTx(2, savingsAccount, "102.00", testDay(1)),
	)
	uc := NewConfirmLinkUseCase(repo, valueobject.DefaultMatchingConfig())

	output, err := uc.Execute(context.Background(), ConfirmLinkInput{
		SourceID: txID(1),
		TargetID: txID(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.MatchType != valueobject.MatchTypeManual {
		t.Errorf("expected manual match type, got %s", output.MatchType)
	}
	if output.HasMismatch {
		t.Error("2%% difference is inside the review tolerance")
	}
	if repo.transactions[txID(1)].ReimbursementID == nil {
		t.Error("link was not persisted")
	}
}

func TestConfirmLinkUseCase_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeTransferRepository)
		input   ConfirmLinkInput
		wantErr error
	}{
		{
			name:    "missing leg",
			input:   ConfirmLinkInput{SourceID: txID(1), TargetID: txID(99)},
			wantErr: domainerror.ErrTransferLegNotFound,
		},
		{
			name:    "self link",
			input:   ConfirmLinkInput{SourceID: txID(1), TargetID: txID(1)},
			wantErr: domainerror.ErrTransferLegNotFound,
		},
		{
			name: "already linked",
			setup: func(r *fakeTransferRepository) {
				other := txID(99)
				r.transactions[txID(2)].ReimbursementID = &other
			},
			input:   ConfirmLinkInput{SourceID: txID(1), TargetID: txID(2)},
			wantErr: domainerror.ErrAlreadyLinked,
		},
		{
			name:    "same account",
			input:   ConfirmLinkInput{SourceID: txID(1), TargetID: txID(3)},
			wantErr: domainerror.ErrSameAccount,
		},
		{
			name:    "same sign",
			input:   ConfirmLinkInput{SourceID: txID(2), TargetID: txID(4)},
			wantErr: domainerror.ErrSameSign,
		},
		{
			name:    "outside tolerance without force",
			input:   ConfirmLinkInput{SourceID: txID(1), TargetID: txID(5)},
			wantErr: domainerror.ErrAmountOutsideTolerance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransferRepository(
				testTx(1, checkingAccount, "-100.00", testDay(0)),
				testTx(2, savingsAccount, "100.00", testDay(0)),
				testTx(3, checkingAccount, "100.00", testDay(0)),
				testTx(4, checkingAccount, "25.00", testDay(0)),
				testTx(5, savingsAccount, "150.00", testDay(0)),
			)
			if tt.setup != nil {
				tt.setup(repo)
			}
			uc := NewConfirmLinkUseCase(repo, valueobject.DefaultMatchingConfig())

			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfirmLinkUseCase_ForceOverridesTolerance(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-100.00", testDay(0)),
		testTx(2, savingsAccount, "150.00", testDay(0)),
	)
	uc := NewConfirmLinkUseCase(repo, valueobject.DefaultMatchingConfig())

	output, err := uc.Execute(context.Background(), ConfirmLinkInput{
		SourceID: txID(1),
		TargetID: txID(2),
		Force:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.HasMismatch {
		t.Error("expected mismatch to be reported even when forced")
	}
}

func TestConfirmLinkUseCase_ForceNeverRelaxesSignConstraint(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "25.00", testDay(0)),
		testTx(2, savingsAccount, "25.00", testDay(0)),
	)
	uc := NewConfirmLinkUseCase(repo, valueobject.DefaultMatchingConfig())

	_, err := uc.Execute(context.Background(), ConfirmLinkInput{
		SourceID: txID(1),
		TargetID: txID(2),
		Force:    true,
	})
	if !errors.Is(err, domainerror.ErrSameSign) {
		t.Errorf("expected ErrSameSign even with force, got %v", err)
	}
}

func TestUnlinkUseCase(t *testing.T) {
	a := testTx(1, checkingAccount, "-10.00", testDay(0))
	b := testTx(2, savingsAccount, "10.00", testDay(0))
	a.ReimbursementID = &b.ID
	b.ReimbursementID = &a.ID
	repo := newFakeTransferRepository(a, b, testTx(3, savingsAccount, "5.00", testDay(0)))
	uc := NewUnlinkUseCase(repo)

	t.Run("clears both legs", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), UnlinkInput{TransactionID: txID(1)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success {
			t.Error("expected success")
		}
		if repo.transactions[txID(1)].ReimbursementID != nil || repo.transactions[txID(2)].ReimbursementID != nil {
			t.Error("expected both legs unlinked")
		}
	})

	t.Run("not linked", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UnlinkInput{TransactionID: txID(3)})
		if !errors.Is(err, domainerror.ErrNotLinked) {
			t.Errorf("expected ErrNotLinked, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UnlinkInput{TransactionID: txID(42)})
		if !errors.Is(err, domainerror.ErrTransferLegNotFound) {
			t.Errorf("expected ErrTransferLegNotFound, got %v", err)
		}
	})
}
