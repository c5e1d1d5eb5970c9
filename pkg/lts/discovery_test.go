package lts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_FiltersByFamilyPrefix(t *testing.T) {
	backend := &fakeBackend{
		serials: []string{"45123456", "83000001", "45999999", "27000123"},
		device:  newFakeDevice(),
	}

	serials, err := Discover(backend)
	require.NoError(t, err)
	assert.Equal(t, []string{"45123456", "45999999"}, serials)
	assert.Equal(t, 1, backend.buildCalls)
}

func TestDiscover_BuildFails(t *testing.T) {
	backend := &fakeBackend{buildErr: errors.New("sdk not loaded")}

	_, err := Discover(backend)
	assert.Error(t, err)
}

func TestDiscover_ListFails(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("enumeration failed")}

	_, err := Discover(backend)
	assert.Error(t, err)
}

func TestDiscover_NoDevices(t *testing.T) {
	backend := &fakeBackend{serials: []string{"83000001"}}

	serials, err := Discover(backend)
	require.NoError(t, err)
	assert.Empty(t, serials)
}
