package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-inventory/internal/dto"
	apperrors "school-inventory/pkg/errors"
)

func TestDecodePeripheralsGroupsByIndex(t *testing.T) {
	form := url.Values{
		"peripherals[3][kind]":   {"Keyboard"},
		"peripherals[3][serial]": {"KB-1"},
		"peripherals[0][kind]":   {" Mouse "},
		"peripherals[0][brand]":  {"Logitech"},
		"peripherals[1][brand]":  {"Без типа"},
		"peripherals[2][kind]":   {""},
		"peripherals[2][model]":  {"X"},
		"peripherals[x][kind]":   {"Мусор"},
		"code":                   {"PC-001"},
	}

	got := decodePeripherals(form)

	assert.Equal(t, []dto.PeripheralDTO{
		{Kind: "Mouse", Brand: "Logitech"},
		{Kind: "Keyboard", Serial: "KB-1"},
	}, got)
}

func TestDecodePeripheralsEmpty(t *testing.T) {
	got := decodePeripherals(url.Values{"code": {"PC-001"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeComposition(t *testing.T) {
	form := url.Values{
		"detail[ram_gb]":     {"16"},
		"detail[processor]":  {"i5-10400"},
		"detail[storage_gb]": {""},
		"graphics[brand]":    {"NVIDIA"},
		"graphics[vram_gb]":  {"4"},
	}

	got, err := decodeComposition(form)
	require.NoError(t, err)

	require.NotNil(t, got.Detail)
	assert.Equal(t, 16, got.Detail.RamGB.Int)
	assert.False(t, got.Detail.StorageGB.Valid)
	assert.Equal(t, "i5-10400", got.Detail.Processor.String)
	require.NotNil(t, got.Graphics)
	assert.Equal(t, 4, got.Graphics.VramGB.Int)
	assert.False(t, got.Graphics.Model.Valid)
}

func TestDecodeCompositionRejectsBadNumber(t *testing.T) {
	_, err := decodeComposition(url.Values{"detail[ram_gb]": {"много"}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
