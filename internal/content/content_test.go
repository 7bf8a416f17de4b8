package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/rollerup-site/internal/leads"
)

func TestDefaultCatalogue(t *testing.T) {
	c := Default("")

	assert.Equal(t, "Roller Up", c.Brand)
	assert.Len(t, c.Features, 6)
	assert.Len(t, c.FAQs, 4)
	assert.Len(t, c.Clips, 3)
	assert.Len(t, c.Logos, 4)
	require.Len(t, c.Tiers, 3)
	assert.True(t, c.Tiers[1].Featured)
	assert.Equal(t, DefaultSalesEmail, c.Form.SalesEmail)
	assert.Equal(t, leads.AcknowledgeMessage, c.Form.Acknowledgment)
	assert.Equal(t, leads.SiteOptions, c.Form.SiteOptions)
	assert.Equal(t, leads.InterestOptions, c.Form.InterestOptions)
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default("")
	a.Form.SiteOptions[0] = "nope"
	a.Tiers[0].Perks[0] = "nope"

	b := Default("")
	assert.Equal(t, leads.Sites1To5, b.Form.SiteOptions[0])
	assert.Equal(t, "LPR for up to 2 lanes", b.Tiers[0].Perks[0])
	assert.Equal(t, leads.Sites1To5, leads.SiteOptions[0])
}

func TestSalesEmailOverride(t *testing.T) {
	c := Default("demo@example.com")
	assert.Equal(t, "demo@example.com", c.Form.SalesEmail)
	assert.Contains(t, c.Form.FollowUp, "demo@example.com")
}

func TestCatalogueJSONKeys(t *testing.T) {
	data, err := json.Marshal(Default(""))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"brand", "nav", "hero", "features", "integrations", "logos", "reel", "clips", "tiers", "faqs", "form"} {
		assert.Contains(t, decoded, key)
	}
	features := decoded["features"].([]any)
	assert.Contains(t, features[0], "desc")
}
