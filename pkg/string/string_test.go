package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "business_reg", ToSnakeCase("BusinessReg"))
	assert.Equal(t, "local_company", ToSnakeCase("LocalCompany"))
	assert.Equal(t, "uen_value", ToSnakeCase("UENValue"))
	assert.Equal(t, "value", ToSnakeCase("value"))
}

func TestTrimStrings(t *testing.T) {
	a, b := "  12345678A ", "\tT19LL0001K\n"
	TrimStrings(&a, &b)
	assert.Equal(t, "12345678A", a)
	assert.Equal(t, "T19LL0001K", b)
}
