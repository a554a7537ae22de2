package enums

import "fmt"

// Category represents the catalog categories carried by the storefront.
type Category string

const (
	CategoryFlower       Category = "flower"
	CategoryVapes        Category = "vapes"
	CategoryEdibles      Category = "edibles"
	CategoryConcentrates Category = "concentrates"
	CategoryPreRolls     Category = "pre-rolls"
)

var validCategories = []Category{
	CategoryFlower,
	CategoryVapes,
	CategoryEdibles,
	CategoryConcentrates,
	CategoryPreRolls,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// Classifier tags an item's effect or strain family. The delivery catalog uses
// terpene-effect values, the wholesale catalog uses strain families; both share
// one enum because they occupy the same filtering dimension.
type Classifier string

const (
	ClassifierRelaxed  Classifier = "relaxed"
	ClassifierEuphoric Classifier = "euphoric"
	ClassifierCreative Classifier = "creative"
	ClassifierHeavy    Classifier = "heavy"
	ClassifierIndica   Classifier = "indica"
	ClassifierSativa   Classifier = "sativa"
	ClassifierHybrid   Classifier = "hybrid"
)

var validClassifiers = []Classifier{
	ClassifierRelaxed,
	ClassifierEuphoric,
	ClassifierCreative,
	ClassifierHeavy,
	ClassifierIndica,
	ClassifierSativa,
	ClassifierHybrid,
}

// String implements fmt.Stringer.
func (c Classifier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Classifier.
func (c Classifier) IsValid() bool {
	for _, candidate := range validClassifiers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseClassifier converts raw input into a Classifier.
func ParseClassifier(value string) (Classifier, error) {
	for _, candidate := range validClassifiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid classifier %q", value)
}

// Weight is a weight code in an item's weight price table.
type Weight string

const (
	WeightEighth  Weight = "eighth"
	WeightQuarter Weight = "q"
	WeightHalf    Weight = "h"
	WeightOunce   Weight = "oz"
)

var validWeights = []Weight{
	WeightEighth,
	WeightQuarter,
	WeightHalf,
	WeightOunce,
}

// String implements fmt.Stringer.
func (w Weight) String() string {
	return string(w)
}

// IsValid reports whether the value is a known Weight.
func (w Weight) IsValid() bool {
	for _, candidate := range validWeights {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWeight converts raw input into a Weight.
func ParseWeight(value string) (Weight, error) {
	for _, candidate := range validWeights {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight %q", value)
}

// Label returns the human-readable weight label used on order summaries.
func (w Weight) Label() string {
	switch w {
	case WeightEighth:
		return "1/8 oz"
	case WeightQuarter:
		return "1/4 oz"
	case WeightHalf:
		return "1/2 oz"
	case WeightOunce:
		return "1 oz"
	}
	return string(w)
}
