package leads

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Source tags every lead captured by the marketing site form.
const Source = "rollerup_marketing_site"

// TimestampLayout renders ts the way browsers print ISO timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Sites is the operator size bracket picked in the form.
type Sites string

const (
	Sites1To5    Sites = "1-5"
	Sites6To15   Sites = "6-15"
	Sites16To40  Sites = "16-40"
	Sites41To100 Sites = "41-100"
	Sites100Plus Sites = "100+"
)

// SiteOptions lists the brackets in display order.
var SiteOptions = []Sites{Sites1To5, Sites6To15, Sites16To40, Sites41To100, Sites100Plus}

// Valid reports whether s is one of SiteOptions.
func (s Sites) Valid() bool {
	return slices.Contains(SiteOptions, s)
}

// Interest is a product area tag.
type Interest string

const (
	InterestLPR           Interest = "LPR"
	InterestMemberships   Interest = "Memberships"
	InterestPOS           Interest = "POS"
	InterestAnalytics     Interest = "Analytics"
	InterestAPIs          Interest = "APIs"
	InterestInternational Interest = "International"
)

// InterestOptions is the fixed tag vocabulary in display order.
var InterestOptions = []Interest{
	InterestLPR,
	InterestMemberships,
	InterestPOS,
	InterestAnalytics,
	InterestAPIs,
	InterestInternational,
}

// Valid reports whether i belongs to the vocabulary.
func (i Interest) Valid() bool {
	return slices.Contains(InterestOptions, i)
}

// Lead is one demo request captured by the form. Field order matches the
// persisted JSON and the export header.
type Lead struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	Role      string     `json:"role"`
	Sites     Sites      `json:"sites"`
	Country   string     `json:"country"`
	Interests []Interest `json:"interests"`
	Message   string     `json:"message"`
	Source    string     `json:"source"`
	TS        time.Time  `json:"ts"`
}

// MarshalJSON writes ts in TimestampLayout so the posted body, the persisted
// list and the export all carry the same millisecond timestamp.
func (l Lead) MarshalJSON() ([]byte, error) {
	type plain Lead
	return json.Marshal(struct {
		plain
		TS string `json:"ts"`
	}{plain: plain(l), TS: l.TS.UTC().Format(TimestampLayout)})
}

// NewDraft returns an empty lead carrying the form defaults, stamped with now
// at millisecond precision.
func NewDraft(now time.Time) Lead {
	return Lead{
		Sites:     Sites1To5,
		Country:   "United States",
		Interests: []Interest{InterestLPR, InterestMemberships},
		Source:    Source,
		TS:        now.UTC().Truncate(time.Millisecond),
	}
}

// Clone returns a copy that shares no slices with l.
func (l Lead) Clone() Lead {
	out := l
	if l.Interests != nil {
		out.Interests = append([]Interest(nil), l.Interests...)
	}
	return out
}

// HasInterest reports whether tag is selected.
func (l Lead) HasInterest(tag Interest) bool {
	return slices.Contains(l.Interests, tag)
}

// Validate checks the fields required before the form may be sent.
func (l Lead) Validate() error {
	var missing []Field
	if strings.TrimSpace(l.FirstName) == "" {
		missing = append(missing, FieldFirstName)
	}
	if strings.TrimSpace(l.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if strings.TrimSpace(l.Company) == "" {
		missing = append(missing, FieldCompany)
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}

// Field names a lead attribute by its JSON key.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldCompany   Field = "company"
	FieldRole      Field = "role"
	FieldSites     Field = "sites"
	FieldCountry   Field = "country"
	FieldInterests Field = "interests"
	FieldMessage   Field = "message"
	FieldSource    Field = "source"
	FieldTS        Field = "ts"
)

// FieldOrder is the natural key order of a Lead.
var FieldOrder = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldCompany,
	FieldRole,
	FieldSites,
	FieldCountry,
	FieldInterests,
	FieldMessage,
	FieldSource,
	FieldTS,
}

// Value returns the attribute named by f, nil for unknown names.
// Interests come back as []string and ts as a formatted string.
func (l Lead) Value(f Field) any {
	switch f {
	case FieldFirstName:
		return l.FirstName
	case FieldLastName:
		return l.LastName
	case FieldEmail:
		return l.Email
	case FieldPhone:
		return l.Phone
	case FieldCompany:
		return l.Company
	case FieldRole:
		return l.Role
	case FieldSites:
		return string(l.Sites)
	case FieldCountry:
		return l.Country
	case FieldInterests:
		tags := make([]string, len(l.Interests))
		for i, tag := range l.Interests {
			tags[i] = string(tag)
		}
		return tags
	case FieldMessage:
		return l.Message
	case FieldSource:
		return l.Source
	case FieldTS:
		if l.TS.IsZero() {
			return ""
		}
		return l.TS.UTC().Format(TimestampLayout)
	default:
		return nil
	}
}

// with returns a copy of l with the text field f replaced.
func (l Lead) with(f Field, value string) (Lead, error) {
	out := l.Clone()
	switch f {
	case FieldFirstName:
		out.FirstName = value
	case FieldLastName:
		out.LastName = value
	case FieldEmail:
		out.Email = value
	case FieldPhone:
		out.Phone = value
	case FieldCompany:
		out.Company = value
	case FieldRole:
		out.Role = value
	case FieldSites:
		sites := Sites(value)
		if !sites.Valid() {
			return l, ErrInvalidSites
		}
		out.Sites = sites
	case FieldCountry:
		out.Country = value
	case FieldMessage:
		out.Message = value
	case FieldSource, FieldTS, FieldInterests:
		return l, ErrReadOnlyField
	default:
		return l, ErrUnknownField
	}
	return out, nil
}

// toggled returns a copy of l with tag added or removed.
func (l Lead) toggled(tag Interest) Lead {
	out := l.Clone()
	if idx := slices.Index(out.Interests, tag); idx >= 0 {
		out.Interests = slices.Delete(out.Interests, idx, idx+1)
		return out
	}
	out.Interests = append(out.Interests, tag)
	return out
}
