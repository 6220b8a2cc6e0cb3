package brdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCPF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "52998224725", "529.982.247-25"},
		{"already formatted", "529.982.247-25", "529.982.247-25"},
		{"too short", "5299822472", "5299822472"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCPF(tt.in))
		})
	}
}

func TestValidCPF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"bad check digit", "52998224726", false},
		{"all same digits", "11111111111", false},
		{"short", "1234567890", false},
		{"letters", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCPF(tt.in))
		})
	}
}

func TestFormatTelefone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"celular 11 digits", "11987654321", "(11) 98765-4321"},
		{"fixo 10 digits", "1138765432", "(11) 3876-5432"},
		{"already formatted", "(11) 98765-4321", "(11) 98765-4321"},
		{"garbage length", "12345", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTelefone(tt.in))
		})
	}
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", FormatCEP("01310100"))
	assert.Equal(t, "01310-100", FormatCEP("01310-100"))
	assert.Equal(t, "123", FormatCEP("123"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "11987654321", DigitsOnly("(11) 98765-4321"))
	assert.Equal(t, "", DigitsOnly("abc"))
}
