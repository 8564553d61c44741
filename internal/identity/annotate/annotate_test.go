package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custid/internal/identity/aggregate"
	"custid/internal/identity/models"
)

func frag(sys models.SourceSystem, recordID, email, phone string) models.RawIdentityFragment {
	return models.RawIdentityFragment{Email: email, Phone: phone, SourceSystem: sys, SourceRecordID: recordID}
}

func single(t *testing.T, fragments ...models.RawIdentityFragment) aggregate.Group {
	t.Helper()
	groups := aggregate.Groups(fragments)
	require.Len(t, groups, 1)
	return groups[0]
}

func TestAnnotateSingleSource(t *testing.T) {
	status, priv := Annotate(single(t, frag(models.SourceStorefront, "ord-1", "a@x.com", "")), DefaultCapabilities())

	assert.False(t, status.IsFragmented)
	assert.Equal(t, models.FragmentationNone, status.Level)
	assert.True(t, status.CanMerge)
	assert.Equal(t, []models.SourceSystem{models.SourceStorefront}, status.LinkedSystems)
	assert.Empty(t, status.UnlinkableSystems)

	assert.True(t, priv.CanFullyErase)
	assert.False(t, priv.CrossSystemLinkable)
	assert.Equal(t, models.ConsentUnknown, priv.ConsentStatus)
	assert.True(t, priv.RightToPortability)
	require.NotNil(t, priv.PortabilityFormat)
	assert.Equal(t, models.PortabilityJSON, *priv.PortabilityFormat)
	require.NotNil(t, priv.RetentionDays)
	assert.Equal(t, 2555, *priv.RetentionDays)
}

func TestAnnotatePhoneOnlySystemJoinedToEmailBucket(t *testing.T) {
	g := single(t,
		frag(models.SourceSupport, "t-1", "", "+2348033333333"),
		frag(models.SourceStorefront, "ord-1", "a@x.com", "+2348033333333"),
	)
	status, priv := Annotate(g, DefaultCapabilities())

	assert.True(t, status.IsFragmented)
	assert.GreaterOrEqual(t, status.Level.Severity(), models.FragmentationMedium.Severity())
	assert.False(t, status.CanMerge)
	assert.Equal(t, []models.SourceSystem{models.SourceSupport}, status.UnlinkableSystems)
	assert.Equal(t, []models.SourceSystem{models.SourceStorefront}, status.LinkedSystems)
	assert.NotEmpty(t, status.MergeBlockers)

	assert.False(t, priv.CanFullyErase)
	require.Len(t, priv.ErasureBlockers, 1)
	assert.Contains(t, priv.ErasureBlockers[0], "support")
	assert.False(t, priv.CrossSystemLinkable)
	assert.False(t, priv.RightToPortability, "support declares no export format")
	assert.Nil(t, priv.PortabilityFormat)
	assert.Equal(t, 2555, *priv.RetentionDays)
}

func TestAnnotateLevels(t *testing.T) {
	tests := []struct {
		name      string
		fragments []models.RawIdentityFragment
		level     models.FragmentationLevel
		canMerge  bool
	}{
		{
			name: "two sources agreeing",
			fragments: []models.RawIdentityFragment{
				frag(models.SourceStorefront, "ord-1", "a@x.com", "+2348011111111"),
				frag(models.SourceBookings, "bk-1", "a@x.com", "08011111111"),
			},
			level:    models.FragmentationLow,
			canMerge: true,
		},
		{
			name: "two conflicting phones",
			fragments: []models.RawIdentityFragment{
				frag(models.SourceStorefront, "ord-1", "a@x.com", "+2348011111111"),
				frag(models.SourceBookings, "bk-1", "a@x.com", "+2348022222222"),
			},
			level: models.FragmentationMedium,
		},
		{
			name: "three conflicting phones",
			fragments: []models.RawIdentityFragment{
				frag(models.SourceStorefront, "ord-1", "a@x.com", "+2348011111111"),
				frag(models.SourceStorefront, "ord-2", "a@x.com", "+2348033333333"),
				frag(models.SourceBookings, "bk-1", "a@x.com", "+2348022222222"),
			},
			level: models.FragmentationHigh,
		},
		{
			name: "single source with conflicts",
			fragments: []models.RawIdentityFragment{
				frag(models.SourceStorefront, "ord-1", "a@x.com", "+2348011111111"),
				frag(models.SourceStorefront, "ord-2", "a@x.com", "+2348022222222"),
			},
			level: models.FragmentationNone,
		},
		{
			name: "phone bucket across all sources",
			fragments: []models.RawIdentityFragment{
				frag(models.SourceSupport, "t-1", "", "+2348011111111"),
				frag(models.SourceBookings, "bk-1", "", "08011111111"),
			},
			level:    models.FragmentationLow,
			canMerge: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := Annotate(single(t, tt.fragments...), DefaultCapabilities())
			assert.Equal(t, tt.level, status.Level)
			assert.Equal(t, tt.canMerge, status.CanMerge)
		})
	}
}

func TestAnnotatePrivacyAcrossSources(t *testing.T) {
	g := single(t,
		frag(models.SourceStorefront, "ord-1", "a@x.com", ""),
		frag(models.SourceBookings, "bk-1", "a@x.com", ""),
	)
	caps := DefaultCapabilities()
	bookings := caps[models.SourceBookings]
	bookings.Consent = models.ConsentExplicit
	bookings.Erasable = false
	caps[models.SourceBookings] = bookings
	storefront := caps[models.SourceStorefront]
	storefront.Consent = models.ConsentImplicit
	caps[models.SourceStorefront] = storefront

	_, priv := Annotate(g, caps)

	assert.True(t, priv.CrossSystemLinkable)
	assert.False(t, priv.CanFullyErase)
	assert.Equal(t, []string{"bookings: erasure not supported"}, priv.ErasureBlockers)
	assert.Equal(t, models.ConsentImplicit, priv.ConsentStatus, "weakest consent wins")
	assert.Equal(t, 2555, *priv.RetentionDays, "longest retention wins")
	assert.True(t, priv.RightToPortability)
	assert.Equal(t, models.PortabilityJSON, *priv.PortabilityFormat, "mixed formats export as JSON")
}

func TestAnnotateUnknownSystem(t *testing.T) {
	g := single(t, frag(models.SourceSystem("legacy"), "x-1", "a@x.com", ""))
	status, priv := Annotate(g, DefaultCapabilities())

	assert.True(t, status.IsFragmented)
	assert.False(t, status.CanMerge)
	assert.False(t, priv.CanFullyErase)
	assert.False(t, priv.RightToPortability)
}

func TestApplySetsBlocks(t *testing.T) {
	groups := aggregate.Groups([]models.RawIdentityFragment{
		frag(models.SourceStorefront, "ord-1", "a@x.com", ""),
		frag(models.SourceBookings, "bk-1", "b@x.com", ""),
	})
	customers := Apply(groups, DefaultCapabilities())

	require.Len(t, customers, 2)
	for _, c := range customers {
		assert.Equal(t, models.FragmentationNone, c.Fragmentation.Level)
		assert.True(t, c.Privacy.CanFullyErase)
	}
}

func TestLoadCapabilities(t *testing.T) {
	t.Run("overrides named systems only", func(t *testing.T) {
		caps, err := LoadCapabilities(strings.NewReader(`
sources:
  support:
    identifiers: [phone]
    export_format: CSV
    retention_days: 90
    erasable: false
    consent: EXPLICIT
`))
		require.NoError(t, err)

		support := caps.For(models.SourceSupport)
		assert.Equal(t, models.PortabilityCSV, *support.ExportFormat)
		assert.Equal(t, 90, *support.RetentionDays)
		assert.False(t, support.Erasable)
		assert.Equal(t, models.ConsentExplicit, support.Consent)

		assert.Equal(t, DefaultCapabilities()[models.SourceStorefront], caps.For(models.SourceStorefront))
	})

	t.Run("repeated and padded identifiers collapse", func(t *testing.T) {
		caps, err := LoadCapabilities(strings.NewReader(`
sources:
  bookings:
    identifiers: [" phone", email, phone, ""]
    erasable: true
`))
		require.NoError(t, err)
		assert.Equal(t,
			[]models.IdentifierType{models.IdentifierPhone, models.IdentifierEmail},
			caps.For(models.SourceBookings).Identifiers)
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		caps, err := LoadCapabilities(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultCapabilities(), caps)
	})

	invalid := map[string]string{
		"unknown system":     "sources:\n  crm:\n    identifiers: [email]\n",
		"unknown identifier": "sources:\n  support:\n    identifiers: [fax]\n",
		"unknown format":     "sources:\n  support:\n    export_format: XML\n",
		"unknown consent":    "sources:\n  support:\n    consent: MAYBE\n",
		"negative retention": "sources:\n  support:\n    retention_days: -1\n",
		"unknown field":      "sources:\n  support:\n    colour: blue\n",
	}
	for name, doc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCapabilities(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadCapabilitiesFileWithoutPath(t *testing.T) {
	caps, err := LoadCapabilitiesFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCapabilities(), caps)
}
