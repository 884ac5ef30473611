package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

func TestFakeDoctors_DistinctLastNames(t *testing.T) {
	doctors := fakeDoctors(50)
	require.Len(t, doctors, 50)

	seen := make(map[string]bool)
	for _, d := range doctors {
		assert.NotEmpty(t, d.FirstName)
		assert.Contains(t, specialties, d.Specialty)
		assert.False(t, seen[d.LastName], "duplicate last name %q", d.LastName)
		seen[d.LastName] = true
	}
}

func TestFakePatients_AreActive(t *testing.T) {
	patients := fakePatients(10)
	require.Len(t, patients, 10)
	for _, p := range patients {
		assert.Equal(t, domain.PatientActive, p.State)
		assert.GreaterOrEqual(t, p.Phone, int64(600000000))
	}
}

func TestFakeClinics_Count(t *testing.T) {
	assert.Empty(t, fakeClinics(0))
	for _, c := range fakeClinics(3) {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Address)
	}
}
