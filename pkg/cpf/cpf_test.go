package cpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid cpf", input: "11144477735", wantErr: false},
		{name: "valid formatted cpf", input: "111.444.777-35", wantErr: false},
		{name: "bad checksum", input: "12345678900", wantErr: true},
		{name: "repeated digits", input: "00000000000", wantErr: true},
		{name: "repeated digits all nines", input: "99999999999", wantErr: true},
		{name: "too short", input: "1114447773", wantErr: true},
		{name: "too long", input: "111444777355", wantErr: true},
		{name: "letters", input: "1114447773a", wantErr: true},
		{name: "letter with closing check digits", input: "a0000000051", wantErr: true},
		{name: "letter inside formatted value", input: "111.444.77x-35", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "11144477735", c.String())
			}
		})
	}
}

func TestNewWithSandboxFixtures(t *testing.T) {
	t.Parallel()

	// Fixture bypasses the checksum only in sandbox mode.
	_, err := New("12345678900")
	assert.Error(t, err)

	c, err := NewWithSandboxFixtures("12345678900")
	assert.NoError(t, err)
	assert.Equal(t, "12345678900", c.String())

	// Non-fixture values still go through full validation.
	_, err = NewWithSandboxFixtures("12345678901")
	assert.Error(t, err)

	c, err = NewWithSandboxFixtures("11144477735")
	assert.NoError(t, err)
	assert.Equal(t, "11144477735", c.String())
}

func TestCPF_Formatted(t *testing.T) {
	t.Parallel()

	c, err := New("11144477735")
	assert.NoError(t, err)
	assert.Equal(t, "111.444.777-35", c.Formatted())
}
