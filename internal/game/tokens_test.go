package game

import "testing"

// TestDebitToken проверяет списание токена и пол баланса на нуле.
func TestDebitToken(t *testing.T) {
	cases := []struct {
		balance int
		want    int
		ok      bool
	}{
		{5, 4, true},
		{1, 0, true},
		{0, 0, false},
		{-3, -3, false},
	}

	for _, tc := range cases {
		got, ok := DebitToken(tc.balance)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("DebitToken(%d): expected (%d, %v), got (%d, %v)", tc.balance, tc.want, tc.ok, got, ok)
		}
	}
}

// TestDebitTokenNeverGoesNegative проверяет, что последовательные
// списания останавливаются на нуле.
func TestDebitTokenNeverGoesNegative(t *testing.T) {
	balance := 3
	for i := 0; i < 10; i++ {
		next, ok := DebitToken(balance)
		if next < 0 {
			t.Fatalf("balance went negative: %d", next)
		}
		if !ok && next != balance {
			t.Fatalf("rejected debit changed balance: %d -> %d", balance, next)
		}
		balance = next
	}

	if balance != 0 {
		t.Fatalf("expected balance drained to 0, got %d", balance)
	}
}
