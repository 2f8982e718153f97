package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/store"
)

func seededStore(b *testing.B, perDay int) *store.DB {
	b.Helper()
	ctx := context.Background()
	db, err := store.Open(ctx, filepath.Join(b.TempDir(), store.DefaultFileName))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = db.Close() })

	ym := model.YearMonth{Year: 2026, Month: 2}
	for day := 1; day <= ym.Days(); day++ {
		for i := 0; i < perDay; i++ {
			cat := model.ExpenseCategories[(day+i)%len(model.ExpenseCategories)]
			_, err := db.InsertTransaction(ctx, model.Transaction{
				Date:          ym.Date(day),
				Amount:        int64(1000 * (i + 1)),
				Type:          model.Expense,
				MainCategory:  cat,
				PaymentMethod: model.ExpensePaymentMethods[i%len(model.ExpensePaymentMethods)],
				Memo:          fmt.Sprintf("bench %d", i),
			})
			if err != nil {
				b.Fatal(err)
			}
		}
	}
	return db
}

func BenchmarkHome(b *testing.B) {
	db := seededStore(b, 10)
	l := NewLoader(db, WithNow(func() time.Time { return time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC) }))
	ym := model.YearMonth{Year: 2026, Month: 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := l.Home(context.Background(), ym); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSummary(b *testing.B) {
	db := seededStore(b, 10)
	l := NewLoader(db)
	ym := model.YearMonth{Year: 2026, Month: 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := l.Summary(context.Background(), ym); err != nil {
			b.Fatal(err)
		}
	}
}
