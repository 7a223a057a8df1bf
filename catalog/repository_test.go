package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducts(t *testing.T) {
	products := seed(t)

	first := products[0]
	assert.Equal(t, "cyber-punk-hoodie", first.Slug)
	assert.Equal(t, "129.99", first.Price.StringFixed(2))
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, "159.99", first.OriginalPrice.StringFixed(2))
	assert.Equal(t, "30.00", first.Savings().StringFixed(2))
	assert.True(t, first.IsNew)
	assert.True(t, first.IsOnSale)

	sneakers := products[2]
	assert.Equal(t, []string{"7", "8", "9", "10", "11"}, sneakers.Sizes)
	assert.Nil(t, sneakers.OriginalPrice)
	assert.True(t, sneakers.Savings().IsZero())

	assert.False(t, products[3].InStock)
}

func TestParseSeed_RejectsBadPrices(t *testing.T) {
	_, err := ParseSeed([]byte(`products:
  - id: "x"
    price: "cheap"
`))
	assert.Error(t, err)

	_, err = ParseSeed([]byte(`products: [oops`))
	assert.Error(t, err)
}

func TestStaticRepository(t *testing.T) {
	repo := NewStaticRepository(seed(t))
	ctx := context.Background()

	p, err := repo.GetBySlug(ctx, "tech-backpack")
	require.NoError(t, err)
	assert.Equal(t, "4", p.ID)

	p, err = repo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Retro Windbreaker", p.Name)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, ErrProductNotFound))
	_, err = repo.GetByID(ctx, "99")
	assert.True(t, errors.Is(err, ErrProductNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Name = "changed"
	again, _ := repo.List(ctx)
	assert.Equal(t, "Cyber Punk Hoodie", again[0].Name)
}
