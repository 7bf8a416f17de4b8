package leads

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func TestNewDraftDefaults(t *testing.T) {
	draft := NewDraft(fixedNow)

	assert.Equal(t, Sites1To5, draft.Sites)
	assert.Equal(t, "United States", draft.Country)
	assert.Equal(t, []Interest{InterestLPR, InterestMemberships}, draft.Interests)
	assert.Equal(t, Source, draft.Source)
	assert.True(t, draft.TS.Equal(fixedNow))
	assert.Empty(t, draft.FirstName)
}

func TestLeadJSONFieldOrder(t *testing.T) {
	draft := NewDraft(fixedNow)
	data, err := json.Marshal(draft)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(data))
	_, err = dec.Token() // {
	require.NoError(t, err)
	var keys []Field
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, Field(tok.(string)))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	assert.Equal(t, FieldOrder, keys)
}

func TestLeadTimestampIsMillisecondsEverywhere(t *testing.T) {
	draft := NewDraft(time.Date(2026, 3, 14, 9, 26, 53, 500_123_456, time.FixedZone("EST", -5*60*60)))
	assert.Equal(t, 500_000_000, draft.TS.Nanosecond())

	data, err := json.Marshal(draft)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2026-03-14T14:26:53.500Z", raw["ts"])
	assert.Equal(t, raw["ts"], draft.Value(FieldTS))

	var decoded Lead
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.TS.Equal(draft.TS))
	assert.Equal(t, draft.Interests, decoded.Interests)
}

func TestValidateRequiresTrimmedFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Lead)
		missing []Field
	}{
		{"all present", func(l *Lead) {}, nil},
		{"blank first name", func(l *Lead) { l.FirstName = "   " }, []Field{FieldFirstName}},
		{"missing email", func(l *Lead) { l.Email = "" }, []Field{FieldEmail}},
		{"missing company", func(l *Lead) { l.Company = "\t" }, []Field{FieldCompany}},
		{"everything missing", func(l *Lead) { *l = NewDraft(fixedNow) }, []Field{FieldFirstName, FieldEmail, FieldCompany}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := NewDraft(fixedNow)
			lead.FirstName = "Jane"
			lead.Email = "not-an-email"
			lead.Company = "Acme"
			tc.mutate(&lead)

			err := lead.Validate()
			if tc.missing == nil {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.missing, verr.Missing)
			assert.True(t, errors.Is(err, ErrMissingRequired))
		})
	}
}

func TestLeadValue(t *testing.T) {
	lead := NewDraft(fixedNow)
	lead.FirstName = "Jane"

	assert.Equal(t, "Jane", lead.Value(FieldFirstName))
	assert.Equal(t, "1-5", lead.Value(FieldSites))
	assert.Equal(t, []string{"LPR", "Memberships"}, lead.Value(FieldInterests))
	assert.Equal(t, "2026-03-14T09:26:53.589Z", lead.Value(FieldTS))
	assert.Nil(t, lead.Value(Field("favoriteColor")))
}

func TestCloneDoesNotShareInterests(t *testing.T) {
	lead := NewDraft(fixedNow)
	clone := lead.Clone()
	clone.Interests[0] = InterestAPIs

	assert.Equal(t, InterestLPR, lead.Interests[0])
}

func TestVocabularies(t *testing.T) {
	for _, s := range SiteOptions {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Sites("2-3").Valid())
	for _, tag := range InterestOptions {
		assert.True(t, tag.Valid(), tag)
	}
	assert.False(t, Interest("Blockchain").Valid())
}
