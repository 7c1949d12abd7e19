package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/estate-crm/internal/kvstore"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestFromOperation_Sale(t *testing.T) {
	c := FromOperation("c1", OperationSummary{
		Sale: true, PropertyType: "Appartamento", Location: "Udine",
		Price: "€ 250.000", SellerName: "Mario", BuyerName: "Anna",
	}, now)

	assert.Equal(t, TypeSale, c.Type)
	assert.Equal(t, StatusToRegister, c.Status)
	assert.Equal(t, "Sale contract - Appartamento in Udine", c.Description)
	assert.Equal(t, map[string]string{"seller": "Mario", "buyer": "Anna"}, c.Parties)
	assert.Equal(t, 250000.0, c.Amount)
	require.NotNil(t, c.RegistrationExpiryDate)
	assert.Equal(t, now.AddDate(0, 0, 30), *c.RegistrationExpiryDate)
}

func TestFromOperation_Lease(t *testing.T) {
	c := FromOperation("c2", OperationSummary{PropertyType: "Villa", Location: "Trieste", Price: "n/d", SellerName: "L", BuyerName: "T"}, now)

	assert.Equal(t, TypeRent, c.Type)
	assert.Equal(t, "Lease contract - Villa in Trieste", c.Description)
	assert.Equal(t, map[string]string{"landlord": "L", "tenant": "T"}, c.Parties)
	assert.Zero(t, c.Amount)
}

func TestDeadlines(t *testing.T) {
	at := func(d time.Duration) *time.Time { v := now.Add(d); return &v }
	cs := []Contract{
		{ID: "past", Status: StatusToRegister, RegistrationExpiryDate: at(-48 * time.Hour)},
		{ID: "today", Status: StatusToRegister, RegistrationExpiryDate: at(0)},
		{ID: "in3", Status: StatusRegistered, RegistrationExpiryDate: at(60 * time.Hour)},
		{ID: "in10", Status: StatusToRegister, RegistrationExpiryDate: at(10 * 24 * time.Hour)},
		{ID: "none", Status: StatusToRegister},
	}

	ids := func(cs []Contract) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}
	assert.Equal(t, []string{"today", "in3", "in10"}, ids(UpcomingDeadlines(cs, 14, now)))
	assert.Equal(t, []string{"today", "in3"}, ids(CriticalDeadlines(cs, now)))
	assert.Equal(t, []string{"past", "today", "in10", "none"}, ids(ToRegister(cs)))

	d, ok := cs[2].DaysUntilExpiry(now)
	assert.True(t, ok)
	assert.Equal(t, 3, d)
	_, ok = cs[4].DaysUntilExpiry(now)
	assert.False(t, ok)
}

func newTestService() *Service {
	s := NewService(kvstore.NewMemoryBackend())
	s.now = func() time.Time { return now }
	n := 0
	s.newID = func() string {
		n++
		return "c" + string(rune('0'+n))
	}
	return s
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	first, err := s.CreateFromOperation(ctx, "u1", OperationSummary{Sale: true, PropertyType: "Casa", Location: "Udine", Price: "100.000"})
	require.NoError(t, err)
	assert.Equal(t, "c1", first.ID)

	typ := TypePreliminary
	second, err := s.Create(ctx, "u1", Input{Type: &typ})
	require.NoError(t, err)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	other, err := s.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	registered, err := s.Register(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, registered.Status)
	require.NotNil(t, registered.RegistrationDate)

	pending, err := s.ToRegister(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	amount := 1200.0
	updated, err := s.Update(ctx, "u1", second.ID, Input{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, updated.Amount)
	assert.Equal(t, TypePreliminary, updated.Type)

	require.NoError(t, s.Delete(ctx, "u1", first.ID))
	assert.ErrorIs(t, s.Delete(ctx, "u1", first.ID), ErrNotFound)
	_, err = s.Get(ctx, "u1", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Validation(t *testing.T) {
	s := newTestService()
	_, err := s.Create(context.Background(), "u1", Input{})
	assert.ErrorIs(t, err, ErrInvalid)

	bad := Type("lease")
	_, err = s.Create(context.Background(), "u1", Input{Type: &bad})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "type")
}
