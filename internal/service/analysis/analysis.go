// Package analysis maps self-reported skin issues to a skin type and the
// ingredients worth looking for in the catalog.
package analysis

// Issue tags as submitted by the quiz.
const (
	IssueOiliness  = "oiliness"
	IssueDryness   = "dryness"
	IssueAcne      = "acne"
	IssueDarkSpots = "dark-spots"
	IssueWrinkles  = "wrinkles"
)

// SkinType is the headline result of the quiz.
type SkinType string

const (
	SkinOily        SkinType = "oily"
	SkinDry         SkinType = "dry"
	SkinCombination SkinType = "combination"
)

var skinTypeLabels = map[SkinType]string{
	SkinOily:        "دهنية",
	SkinDry:         "جافة",
	SkinCombination: "مختلطة",
}

// Label returns the Arabic display name.
func (s SkinType) Label() string {
	if l, ok := skinTypeLabels[s]; ok {
		return l
	}
	return string(s)
}

// Ingredient is a recommended treatment. Keyword is matched against product
// names as a case-sensitive substring.
type Ingredient struct {
	Tag     string `json:"tag"`
	Keyword string `json:"keyword"`
}

var (
	salicylicAcid  = Ingredient{Tag: "salicylic-acid", Keyword: "Salicylic Acid"}
	teaTreeOil     = Ingredient{Tag: "tea-tree-oil", Keyword: "TTO (Tea Tree Oil)"}
	vitaminCSerum  = Ingredient{Tag: "vitamin-c-serum", Keyword: "Vitamin C Serum"}
	liquorice      = Ingredient{Tag: "liquorice-lotion", Keyword: "Liquorice Lotion"}
	hyaluronicAcid = Ingredient{Tag: "hyaluronic-acid-serum", Keyword: "Hyaluronic Acid Serum"}
	bodyLotion     = Ingredient{Tag: "body-lotion", Keyword: "Body Lotion"}
)

// rules is walked in order; that order fixes the order of the ingredients.
var rules = []struct {
	issue       string
	ingredients []Ingredient
}{
	{IssueOiliness, []Ingredient{salicylicAcid, teaTreeOil}},
	{IssueDryness, []Ingredient{hyaluronicAcid, bodyLotion}},
	{IssueAcne, []Ingredient{salicylicAcid, teaTreeOil}},
	{IssueDarkSpots, []Ingredient{vitaminCSerum, liquorice}},
	{IssueWrinkles, []Ingredient{vitaminCSerum, hyaluronicAcid}},
}

// Result is the outcome of Analyze.
type Result struct {
	SkinType    SkinType     `json:"skinType"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Keywords returns the product-name keywords of the recommended ingredients.
func (r Result) Keywords() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		out = append(out, in.Keyword)
	}
	return out
}

// Tags returns the ingredient tags in recommendation order.
func (r Result) Tags() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		out = append(out, in.Tag)
	}
	return out
}

// Analyze applies the rule table. Oiliness wins over dryness for the skin
// type; ingredients accumulate across every reported issue. Unknown tags are
// ignored.
func Analyze(issues []string) Result {
	reported := make(map[string]bool, len(issues))
	for _, issue := range issues {
		reported[issue] = true
	}

	skin := SkinCombination
	if reported[IssueOiliness] {
		skin = SkinOily
	} else if reported[IssueDryness] {
		skin = SkinDry
	}

	seen := make(map[string]bool)
	ingredients := []Ingredient{}
	for _, rule := range rules {
		if !reported[rule.issue] {
			continue
		}
		for _, in := range rule.ingredients {
			if seen[in.Tag] {
				continue
			}
			seen[in.Tag] = true
			ingredients = append(ingredients, in)
		}
	}

	return Result{SkinType: skin, Ingredients: ingredients}
}
