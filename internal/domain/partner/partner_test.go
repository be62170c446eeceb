package partner

import (
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIVACondition(t *testing.T) {
	tests := []struct {
		raw     string
		want    IVACondition
		wantErr bool
	}{
		{"", IVAConsumidorFinal, false},
		{"Monotributista", IVAMonotributista, false},
		{" Responsable Inscripto ", IVAResponsableInscripto, false},
		{"Exento", IVAExento, false},
		{"Ninguno", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIVACondition(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Update(t *testing.T) {
	client, err := NewClient(uuid.New(), " Club Atlético ", "30-1")
	require.NoError(t, err)
	assert.Equal(t, "Club Atlético", client.Name)
	assert.Equal(t, IVAConsumidorFinal, client.IVACondition)

	require.NoError(t, client.Update("Club Atlético Sur", "30-2", IVAExento))
	assert.Equal(t, "Club Atlético Sur", client.Name)
	assert.Equal(t, IVAExento, client.IVACondition)

	assert.ErrorIs(t, client.Update(" ", "", IVAExento), shared.ErrValidation)
	assert.Equal(t, "Club Atlético Sur", client.Name)
}

func TestSupplier_Update(t *testing.T) {
	_, err := NewSupplier(uuid.New(), "", "")
	assert.ErrorIs(t, err, shared.ErrValidation)

	supplier, err := NewSupplier(uuid.New(), "Hilados SA", "30-3")
	require.NoError(t, err)
	require.NoError(t, supplier.Update("Hilados del Sur SA", "30-4", "011-555", "ventas@hilados.com", "Av. Siempre Viva 1"))
	assert.Equal(t, "Hilados del Sur SA", supplier.Name)
	assert.Equal(t, "ventas@hilados.com", supplier.Email)
}
