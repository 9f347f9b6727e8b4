package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"
)

func TestNewGetOrderByNumberQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderByNumberQuery("ORD-000042")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "ORD-000042", query.OrderNumber())
}

func TestNewGetOrderByNumberQuery_EmptyNumber(t *testing.T) {
	_, err := queries.NewGetOrderByNumberQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrderByNumberQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderByNumberQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderByNumberQueryIsNotConstructed)
}
