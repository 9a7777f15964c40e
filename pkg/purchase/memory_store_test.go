package purchase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventaro/storefront/pkg/purchase"
	"github.com/ventaro/storefront/pkg/validator"
)

func newPurchase(session, txn, product, email string) *purchase.Purchase {
	return &purchase.Purchase{
		SessionID:     session,
		TransactionID: txn,
		ProductID:     product,
		Email:         email,
	}
}

func TestMemoryStore_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := purchase.NewMemoryStore()

	p := newPurchase("sess_1", "txn_1", "prod_a", "  Buyer@Example.com ")
	require.NoError(t, s.Create(ctx, p))

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, "buyer@example.com", p.Email)

	err := s.Create(ctx, newPurchase("sess_1", "txn_1", "prod_a", "buyer@example.com"))
	assert.ErrorIs(t, err, purchase.ErrDuplicate)

	require.NoError(t, s.Create(ctx, newPurchase("sess_1", "txn_1", "prod_b", "buyer@example.com")))
}

func TestMemoryStore_CreateInvalid(t *testing.T) {
	t.Parallel()

	s := purchase.NewMemoryStore()
	for _, p := range []*purchase.Purchase{
		newPurchase("", "txn", "prod", "a@b.co"),
		newPurchase("sess", "", "prod", "a@b.co"),
		newPurchase("sess", "txn", " ", "a@b.co"),
		newPurchase("sess", "txn", "prod", ""),
		newPurchase("sess", "txn", "prod", "not-an-address"),
	} {
		err := s.Create(context.Background(), p)
		assert.ErrorIs(t, err, purchase.ErrInvalid)
		assert.True(t, validator.IsValidationError(err))
	}
}

func TestMemoryStore_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := purchase.NewMemoryStore()
	require.NoError(t, s.Create(ctx, newPurchase("sess_1", "txn_1", "prod_a", "a@b.co")))
	require.NoError(t, s.Create(ctx, newPurchase("sess_1", "txn_1", "prod_b", "a@b.co")))
	require.NoError(t, s.Create(ctx, newPurchase("sess_2", "txn_2", "prod_c", "a@b.co")))
	require.NoError(t, s.Create(ctx, newPurchase("sess_1", "txn_3", "prod_d", "other@b.co")))

	got, err := s.ListBySession(ctx, "sess_1", "A@B.CO")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "prod_a", got[0].ProductID)
	assert.Equal(t, "prod_b", got[1].ProductID)

	got, err = s.ListBySession(ctx, "sess_1", "nobody@b.co")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
