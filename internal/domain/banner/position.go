package banner

import "fmt"

// Position is a named ad slot on the site. The set is closed: parsing an
// unknown key is an error rather than a silent fallback, so configuration
// mistakes surface immediately instead of being billed at the wrong rate.
type Position string

const (
	PositionHomepageHero           Position = "homepage_hero"
	PositionHomepageSidebar        Position = "homepage_sidebar"
	PositionExploreTop             Position = "explore_top"
	PositionExploreSidebar         Position = "explore_sidebar"
	PositionCategoryTop            Position = "category_top"
	PositionExploreBottom          Position = "explore_bottom"
	PositionCategoriesBottom       Position = "categories_bottom"
	PositionHomepageCategoryBottom Position = "homepage_category_bottom"
	PositionServiceDetail          Position = "service_detail"
)

// RenderFormat decides how the public ad server renders a creative.
type RenderFormat string

const (
	FormatBanner  RenderFormat = "banner"
	FormatCard    RenderFormat = "card"
	FormatArticle RenderFormat = "article"
)

func (f RenderFormat) String() string {
	return string(f)
}

// positionSpec is one row of the static position catalog.
type positionSpec struct {
	costPerDay      int
	format          RenderFormat
	recommendedSize string
}

var catalog = map[Position]positionSpec{
	PositionHomepageHero:           {costPerDay: 3, format: FormatBanner, recommendedSize: "1200x300"},
	PositionHomepageSidebar:        {costPerDay: 2, format: FormatCard, recommendedSize: "300x250"},
	PositionExploreTop:             {costPerDay: 2, format: FormatBanner, recommendedSize: "970x90"},
	PositionExploreSidebar:         {costPerDay: 1, format: FormatCard, recommendedSize: "300x250"},
	PositionCategoryTop:            {costPerDay: 1, format: FormatBanner, recommendedSize: "970x90"},
	PositionExploreBottom:          {costPerDay: 1, format: FormatBanner, recommendedSize: "970x90"},
	PositionCategoriesBottom:       {costPerDay: 1, format: FormatBanner, recommendedSize: "970x90"},
	PositionHomepageCategoryBottom: {costPerDay: 1, format: FormatBanner, recommendedSize: "970x90"},
	PositionServiceDetail:          {costPerDay: 1, format: FormatArticle, recommendedSize: "800x418"},
}

// AllPositions returns every known position key.
func AllPositions() []Position {
	return []Position{
		PositionHomepageHero,
		PositionHomepageSidebar,
		PositionExploreTop,
		PositionExploreSidebar,
		PositionCategoryTop,
		PositionExploreBottom,
		PositionCategoriesBottom,
		PositionHomepageCategoryBottom,
		PositionServiceDetail,
	}
}

// ParsePosition validates a raw position key.
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if _, ok := catalog[p]; !ok {
		return "", ErrUnknownPosition(s)
	}
	return p, nil
}

func (p Position) String() string {
	return string(p)
}

func (p Position) IsValid() bool {
	_, ok := catalog[p]
	return ok
}

// CostPerDay returns the credit price of one day in this slot.
func (p Position) CostPerDay() int {
	spec, ok := catalog[p]
	if !ok {
		// Unreachable for values built through ParsePosition; a loud panic
		// beats billing an unknown slot at a default rate.
		panic(fmt.Sprintf("banner: unknown position %q", string(p)))
	}
	return spec.costPerDay
}

// Format returns the render format declared for this slot.
func (p Position) Format() RenderFormat {
	spec, ok := catalog[p]
	if !ok {
		panic(fmt.Sprintf("banner: unknown position %q", string(p)))
	}
	return spec.format
}

// RecommendedSize returns the suggested creative dimensions, "WxH" in pixels.
func (p Position) RecommendedSize() string {
	spec, ok := catalog[p]
	if !ok {
		panic(fmt.Sprintf("banner: unknown position %q", string(p)))
	}
	return spec.recommendedSize
}
