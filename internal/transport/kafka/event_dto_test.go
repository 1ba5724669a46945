package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	dto := kafka.EventDTO{
		CustomerID: "  cust_1 ",
		AddressID:  " addr_1",
		Contact:    " +923001234567 ",
		TotalCents: 45000,
		Items: []kafka.ItemDTO{
			{ProductID: " sku_1 ", Quantity: 2, PriceCents: 22500},
		},
	}

	got := kafka.ToDomain(dto)

	require.Equal(t, "cust_1", got.CustomerID)
	require.Equal(t, "addr_1", got.AddressID)
	require.Equal(t, "+923001234567", got.Contact)
	require.Equal(t, int64(45000), got.TotalCents)
	require.Len(t, got.Items, 1)
	require.Equal(t, "sku_1", got.Items[0].ProductID)
	require.Equal(t, 2, got.Items[0].Quantity)
	require.Equal(t, int64(22500), got.Items[0].PriceCents)
}

func TestToDomain_EmptyItems(t *testing.T) {
	t.Parallel()

	got := kafka.ToDomain(kafka.EventDTO{CustomerID: "cust_1"})
	require.Empty(t, got.Items)
}
