package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
)

type fakeExtractor struct {
	resp Response
	err  error
}

func (f *fakeExtractor) ExtractItems(context.Context, entity.RawDocument) (Response, []byte, error) {
	return f.resp, nil, f.err
}

func TestAdapterExtract(t *testing.T) {
	a := NewAdapter(&fakeExtractor{resp: Response{
		Items: []Item{
			{
				Name:       "Flow Sensor",
				PartNumber: "VSBM25 SI",
				Category:   "Sensors",
				Price:      "95.50",
				Currency:   "USD",
				Quantity:   2,
				Confidence: 0.9,
			},
			{
				Name:     "Contactor",
				Price:    "450",
				Currency: "ILS",
			},
		},
	}}, nil)

	res, err := a.Extract(context.Background(), entity.RawDocument{Filename: "quote.jpg"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Candidates, 2)

	first := res.Candidates[0]
	assert.Equal(t, "Flow Sensor", first.Name)
	assert.Equal(t, "VSBM25 SI", first.ManufacturerPartNumber)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, float32(0.9), first.Confidence)
	require.NotNil(t, first.UnitPrice)
	assert.InDelta(t, 95.5, first.UnitPrice.Amount, 1e-9)
	assert.Equal(t, entity.USD, first.UnitPrice.Currency)

	second := res.Candidates[1]
	// no per-item score from the service
	assert.Equal(t, float32(defaultItemConfidence), second.Confidence)
	require.NotNil(t, second.UnitPrice)
	assert.Equal(t, entity.NIS, second.UnitPrice.Currency)

	assert.Equal(t, constants.Image, res.Metadata.DocumentType)
	assert.Equal(t, constants.MethodAI, res.Metadata.ExtractionMethod)
	assert.Equal(t, 1, res.Metadata.RowOrPageCount)
}

func TestAdapterZeroPriceIsAbsent(t *testing.T) {
	a := NewAdapter(&fakeExtractor{resp: Response{
		Items: []Item{{Name: "Sample", Price: "0"}},
	}}, nil)

	res, err := a.Extract(context.Background(), entity.RawDocument{})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	assert.Nil(t, res.Candidates[0].UnitPrice)
}

func TestAdapterServiceFailure(t *testing.T) {
	a := NewAdapter(&fakeExtractor{err: errors.New("status 503")}, nil)

	_, err := a.Extract(context.Background(), entity.RawDocument{Filename: "quote.jpg"})
	require.Error(t, err)
	assert.Equal(t, common.CodeExternalService, common.CodeOf(err))
	assert.Contains(t, err.Error(), "status 503")
}

func TestAdapterName(t *testing.T) {
	a := NewAdapter(&fakeExtractor{}, nil)
	assert.Equal(t, "ai-vision", a.Name())
}
