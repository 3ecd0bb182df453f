package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryVehicle))
	assert.True(t, ValidCategory(CategoryLife))
	assert.False(t, ValidCategory("spaceship"))
	assert.False(t, ValidCategory(""))
}

func TestValidSubcategory(t *testing.T) {
	auto := "auto"
	renters := "renters"
	pet := "pet"

	assert.True(t, ValidSubcategory(CategoryVehicle, &auto))
	assert.True(t, ValidSubcategory(CategoryProperty, &renters))
	assert.True(t, ValidSubcategory(CategoryOther, &pet))

	// Wrong pairing
	assert.False(t, ValidSubcategory(CategoryVehicle, &renters))

	// Categories with subcategories require one
	assert.False(t, ValidSubcategory(CategoryVehicle, nil))

	// Categories without subcategories forbid one
	assert.True(t, ValidSubcategory(CategoryLife, nil))
	assert.True(t, ValidSubcategory(CategoryBusiness, nil))
	assert.True(t, ValidSubcategory(CategoryIdentityProtection, nil))
	assert.False(t, ValidSubcategory(CategoryLife, &auto))

	assert.False(t, ValidSubcategory("spaceship", nil))
}
