package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition_KnownKeys(t *testing.T) {
	for _, p := range AllPositions() {
		parsed, err := ParsePosition(p.String())
		require.NoError(t, err, "position %s", p)
		assert.Equal(t, p, parsed)
		assert.True(t, parsed.IsValid())
	}
}

func TestParsePosition_UnknownKey(t *testing.T) {
	_, err := ParsePosition("homepage_footer")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "homepage_footer")
}

func TestPosition_CostTable(t *testing.T) {
	tests := []struct {
		position Position
		cost     int
	}{
		{PositionHomepageHero, 3},
		{PositionHomepageSidebar, 2},
		{PositionExploreTop, 2},
		{PositionExploreSidebar, 1},
		{PositionCategoryTop, 1},
		{PositionExploreBottom, 1},
		{PositionCategoriesBottom, 1},
		{PositionHomepageCategoryBottom, 1},
		{PositionServiceDetail, 1},
	}

	for _, tc := range tests {
		t.Run(tc.position.String(), func(t *testing.T) {
			assert.Equal(t, tc.cost, tc.position.CostPerDay())
		})
	}
}

func TestPosition_Formats(t *testing.T) {
	assert.Equal(t, FormatBanner, PositionHomepageHero.Format())
	assert.Equal(t, FormatCard, PositionHomepageSidebar.Format())
	assert.Equal(t, FormatCard, PositionExploreSidebar.Format())
	assert.Equal(t, FormatArticle, PositionServiceDetail.Format())
}

func TestPosition_CatalogIsTotal(t *testing.T) {
	for _, p := range AllPositions() {
		assert.Positive(t, p.CostPerDay(), "position %s", p)
		assert.NotEmpty(t, p.Format().String(), "position %s", p)
		assert.NotEmpty(t, p.RecommendedSize(), "position %s", p)
	}
}

func TestPosition_UnknownKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		Position("sidebar_v2").CostPerDay()
	})
}
