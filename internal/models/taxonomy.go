package models

// CategoryTaxonomy maps each insurance category to its allowed
// subcategories. A nil slice means the category takes no subcategory.
var CategoryTaxonomy = map[string][]string{
	CategoryVehicle: {
		"auto", "motorcycle", "atv_off_road", "roadside",
		"snowmobile", "boat", "rv", "vehicle_protection",
	},
	CategoryProperty: {
		"homeowners", "renters", "condo", "landlord", "mobile_home",
	},
	CategoryLife:               nil,
	CategoryBusiness:           nil,
	CategoryIdentityProtection: nil,
	CategoryOther: {
		"personal_umbrella_policy", "individual_health", "pet",
		"event", "travel", "jewelry", "collectibles",
	},
}

// Insurance categories
const (
	CategoryVehicle            = "vehicle"
	CategoryProperty           = "property"
	CategoryLife               = "life"
	CategoryBusiness           = "business"
	CategoryIdentityProtection = "identity_protection"
	CategoryOther              = "other"
)

// ValidCategory reports whether the category exists in the taxonomy
func ValidCategory(category string) bool {
	_, ok := CategoryTaxonomy[category]
	return ok
}

// ValidSubcategory reports whether the subcategory is allowed for the
// category. Categories with no subcategories require sub to be nil.
func ValidSubcategory(category string, sub *string) bool {
	allowed, ok := CategoryTaxonomy[category]
	if !ok {
		return false
	}
	if allowed == nil {
		return sub == nil
	}
	if sub == nil {
		return false
	}
	for _, s := range allowed {
		if s == *sub {
			return true
		}
	}
	return false
}
