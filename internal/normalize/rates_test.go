package normalize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbh/quotex/internal/entity"
)

func TestNewRatesFillsDerivedRate(t *testing.T) {
	r := NewRates(3.7, 4.0, 0)
	assert.InDelta(t, 3.7, r.USDToILS, 1e-9)
	assert.InDelta(t, 4.0, r.EURToILS, 1e-9)
	assert.InDelta(t, 4.0/3.7, r.EURToUSD, 1e-9)

	// explicit cross rate is kept as given
	r = NewRates(3.7, 4.0, 1.1)
	assert.InDelta(t, 1.1, r.EURToUSD, 1e-9)
}

func TestNewRatesFallsBackToDefaults(t *testing.T) {
	def := DefaultRates()
	r := NewRates(0, 0, 0)
	assert.Equal(t, def, r)
}

func TestDeriveExcludesSourceCurrency(t *testing.T) {
	r := DefaultRates()
	for _, cur := range []entity.Currency{entity.USD, entity.NIS, entity.EUR} {
		out := r.Derive(entity.Money{Amount: 100, Currency: cur})
		assert.NotContains(t, out, cur)
		assert.Len(t, out, 2)
	}
}

func TestDeriveAmounts(t *testing.T) {
	r := NewRates(3.7, 4.0, 0)

	tests := []struct {
		name string
		in   entity.Money
		want map[entity.Currency]float64
	}{
		{
			name: "from usd",
			in:   entity.Money{Amount: 2500, Currency: entity.USD},
			want: map[entity.Currency]float64{entity.NIS: 9250, entity.EUR: 2312.5},
		},
		{
			name: "from nis",
			in:   entity.Money{Amount: 370, Currency: entity.NIS},
			want: map[entity.Currency]float64{entity.USD: 100, entity.EUR: 92.5},
		},
		{
			name: "from eur",
			in:   entity.Money{Amount: 100, Currency: entity.EUR},
			want: map[entity.Currency]float64{entity.NIS: 400, entity.USD: 100 * 4.0 / 3.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Derive(tt.in)
			require.Len(t, out, len(tt.want))
			for cur, want := range tt.want {
				assert.InDelta(t, want, out[cur], 1e-9, "currency %s", cur)
			}
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	r := DefaultRates()
	m := entity.Money{Amount: 123.45, Currency: entity.USD}
	first := r.Derive(m)
	second := r.Derive(m)
	assert.Equal(t, first, second)
}

func TestLoadRatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("usd_to_ils: 3.5\neur_to_ils: 3.9\n"), 0o600))

	r, err := LoadRatesFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, r.USDToILS, 1e-9)
	assert.InDelta(t, 3.9, r.EURToILS, 1e-9)
	assert.InDelta(t, 3.9/3.5, r.EURToUSD, 1e-9)

	_, err = LoadRatesFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
