package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	svc := newService()
	req := validRequest()
	req.CouponCode = "SAVE20"
	conf, err := svc.PlaceOrder(context.Background(), filledCart(), req)
	require.NoError(t, err)

	pdf, err := RenderReceipt(conf)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}
