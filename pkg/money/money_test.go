package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewFromCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cents   int64
		wantErr bool
	}{
		{name: "positive amount", cents: 47280, wantErr: false},
		{name: "zero", cents: 0, wantErr: false},
		{name: "negative amount", cents: -1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewFromCents(tt.cents)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.cents, m.Cents())
			}
		})
	}
}

func TestNewFromFloat_Rounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     float64
		wantCents int64
	}{
		{name: "exact cents", value: 5000.00, wantCents: 500000},
		{name: "rounds half up", value: 0.005, wantCents: 1},
		{name: "rounds down below half", value: 0.004, wantCents: 0},
		{name: "three decimal places", value: 472.798, wantCents: 47280},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewFromFloat(tt.value)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCents, m.Cents())
		})
	}
}

func TestNewFromFloat_Negative(t *testing.T) {
	t.Parallel()

	_, err := NewFromFloat(-0.01)
	assert.Error(t, err)
}

func TestNewFromDecimal(t *testing.T) {
	t.Parallel()

	m, err := NewFromDecimal(decimal.NewFromFloat(1234.565))
	assert.NoError(t, err)
	assert.Equal(t, int64(123457), m.Cents())

	_, err = NewFromDecimal(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Parallel()

	a, _ := NewFromCents(1000)
	b, _ := NewFromCents(250)

	assert.Equal(t, int64(1250), a.Add(b).Cents())

	diff, err := a.Sub(b)
	assert.NoError(t, err)
	assert.Equal(t, int64(750), diff.Cents())

	_, err = b.Sub(a)
	assert.Error(t, err, "subtraction below zero must fail")

	tripled, err := a.MulInt(3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3000), tripled.Cents())

	scaled, err := a.Mul(0.125)
	assert.NoError(t, err)
	assert.Equal(t, int64(125), scaled.Cents())

	_, err = a.Mul(-1)
	assert.Error(t, err)

	half, err := a.Div(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), half.Cents())

	_, err = a.Div(0)
	assert.Error(t, err)
	_, err = a.Div(-2)
	assert.Error(t, err)
}

func TestMoney_Comparisons(t *testing.T) {
	t.Parallel()

	a, _ := NewFromCents(100)
	b, _ := NewFromCents(200)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, b.GreaterThanOrEqual(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.True(t, Zero.IsZero())
}

func TestMoney_String(t *testing.T) {
	t.Parallel()

	m, _ := NewFromCents(567684)
	assert.Equal(t, "R$ 5676.84", m.String())
}

func TestMoney_JSON(t *testing.T) {
	t.Parallel()

	m, _ := NewFromCents(567684)
	data, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, "5676.84", string(data))

	var parsed Money
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equal(parsed))

	assert.NoError(t, json.Unmarshal([]byte(`"123.45"`), &parsed))
	assert.Equal(t, int64(12345), parsed.Cents())

	assert.Error(t, json.Unmarshal([]byte(`-1`), &parsed))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &parsed))
}
