// Package content holds the static copy of the Roller Up marketing site.
// The page renders from this catalogue; there is exactly one version of it.
package content

import "github.com/wolfman30/rollerup-site/internal/leads"

// Feature is a product feature card.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
}

// FAQ is one question and its answer.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Tier is a pricing plan.
type Tier struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Tagline  string   `json:"tagline"`
	Perks    []string `json:"perks"`
	Featured bool     `json:"featured,omitempty"`
}

// Logo is an integration partner mark.
type Logo struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// Clip is a product video in the reel.
type Clip struct {
	Title  string `json:"title"`
	Src    string `json:"src"`
	Poster string `json:"poster"`
}

// NavLink is a header anchor.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Hero is the top-of-page banner.
type Hero struct {
	Badge       string `json:"badge"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	VideoSrc    string `json:"videoSrc"`
	VideoPoster string `json:"videoPoster"`
	PrimaryCTA  string `json:"primaryCta"`
	TrustLine   string `json:"trustLine"`
}

// Section is a titled block with a short intro line.
type Section struct {
	Title string `json:"title"`
	Intro string `json:"intro"`
}

// FormCopy is the lead form vocabulary and messaging.
type FormCopy struct {
	SiteOptions     []leads.Sites    `json:"siteOptions"`
	InterestOptions []leads.Interest `json:"interestOptions"`
	Acknowledgment  string           `json:"acknowledgment"`
	FollowUp        string           `json:"followUp"`
	SalesEmail      string           `json:"salesEmail"`
	SubmitLabel     string           `json:"submitLabel"`
	SubmittingLabel string           `json:"submittingLabel"`
}

// Catalogue is everything the page needs to render.
type Catalogue struct {
	Brand        string    `json:"brand"`
	Nav          []NavLink `json:"nav"`
	Hero         Hero      `json:"hero"`
	Features     []Feature `json:"features"`
	Integrations Section   `json:"integrations"`
	Logos        []Logo    `json:"logos"`
	Reel         Section   `json:"reel"`
	Clips        []Clip    `json:"clips"`
	Tiers        []Tier    `json:"tiers"`
	FAQs         []FAQ     `json:"faqs"`
	Form         FormCopy  `json:"form"`
}

// DefaultSalesEmail is the published sales inbox.
const DefaultSalesEmail = "sales@rollerup.com"

// Default returns a fresh copy of the site catalogue. salesEmail overrides
// the published sales inbox when non-empty.
func Default(salesEmail string) Catalogue {
	if salesEmail == "" {
		salesEmail = DefaultSalesEmail
	}
	return Catalogue{
		Brand: "Roller Up",
		Nav: []NavLink{
			{Label: "Features", Href: "#features"},
			{Label: "Integrations", Href: "#integrations"},
			{Label: "Video", Href: "#reel"},
			{Label: "Pricing", Href: "#pricing"},
			{Label: "Get a demo", Href: "#demo"},
		},
		Hero: Hero{
			Badge:       "Live at high-volume sites today",
			Headline:    "The car wash POS built for memberships and speed",
			Description: "Roller Up unifies LPR, POS, and analytics so your lanes move fast, your members are happy, and your revenue keeps climbing.",
			VideoSrc:    "/videos/hero.mp4",
			VideoPoster: "/videos/hero.jpg",
			PrimaryCTA:  "Get a demo",
			TrustLine:   "Trusted by forward-thinking operators",
		},
		Features: []Feature{
			{Title: "Instant LPR Memberships", Description: "License plate recognition turns your lanes into membership scanners—no stickers required."},
			{Title: "Blazing-Fast POS", Description: "Stripe S700 handhelds and our optimized workflows get cars moving and cash flowing."},
			{Title: "Real-Time Sync", Description: "Two-way sync with legacy systems (DRB, more) so ops never miss a beat."},
			{Title: "Open APIs", Description: "Integrate with ERPs, CRMs, analytics, and data lakes with clean, well-documented endpoints."},
			{Title: "Enterprise-Grade Uptime", Description: "Multi-region cloud with 5G failover options for bulletproof availability."},
			{Title: "Analytics that Matter", Description: "From conversion funnels to churn prevention—actionable dashboards out of the box."},
		},
		Integrations: Section{
			Title: "Integrations your ops team will love",
			Intro: "Axis cameras with Rekor for LPR, AWID RFID, Stripe for payments, plus DRB sync. Bring your stack—we’ll meet you there.",
		},
		Logos: []Logo{
			{Name: "Stripe", Src: "https://upload.wikimedia.org/wikipedia/commons/3/3f/Stripe_Logo%2C_revised_2016.svg"},
			{Name: "Axis", Src: "https://upload.wikimedia.org/wikipedia/commons/3/3b/Axis_Communications_logo.svg"},
			{Name: "Rekor", Src: "https://upload.wikimedia.org/wikipedia/commons/8/8f/Rekor_Systems_logo.svg"},
			{Name: "DRB", Src: "https://upload.wikimedia.org/wikipedia/commons/9/97/DRB_Systems_logo.png"},
		},
		Reel: Section{
			Title: "See it in action",
			Intro: "Swipe through the clips—LPR recognition, POS speed, and real-time analytics.",
		},
		Clips: []Clip{
			{Title: "LPR catches plate in <300ms", Src: "/videos/lpr.mp4", Poster: "/videos/lpr.jpg"},
			{Title: "Blazing-fast POS flow", Src: "/videos/pos.mp4", Poster: "/videos/pos.jpg"},
			{Title: "Churn & cohort analytics", Src: "/videos/analytics.mp4", Poster: "/videos/analytics.jpg"},
		},
		Tiers: []Tier{
			{Name: "Starter", Price: "Custom", Tagline: "Single-site operators", Perks: []string{"LPR for up to 2 lanes", "Stripe S700 support", "Standard analytics", "Email support"}},
			{Name: "Growth", Price: "Custom", Tagline: "Regional & multi-site", Perks: []string{"Advanced memberships", "Priority support", "API access", "Churn insights"}, Featured: true},
			{Name: "Enterprise", Price: "Custom", Tagline: "National & international", Perks: []string{"SLA & SSO", "Custom integrations", "Dedicated CSM", "Data residency options"}},
		},
		FAQs: []FAQ{
			{Question: "Can Roller Up work with our existing tunnel controller?", Answer: "Yes. We support common controllers and provide an integration path when one doesn’t exist yet."},
			{Question: "How fast is deployment?", Answer: "Pilot sites can be live in weeks. Hardware and network readiness are the main variables."},
			{Question: "Do you support multi-site operators?", Answer: "Absolutely. Role-based access, org hierarchies, and site-level overrides are built in."},
			{Question: "Where is data hosted?", Answer: "U.S. by default, with EU options available for international operators."},
		},
		Form: FormCopy{
			SiteOptions:     append([]leads.Sites(nil), leads.SiteOptions...),
			InterestOptions: append([]leads.Interest(nil), leads.InterestOptions...),
			Acknowledgment:  leads.AcknowledgeMessage,
			FollowUp:        "We'll reach out shortly. Want a faster reply? Email " + salesEmail + ".",
			SalesEmail:      salesEmail,
			SubmitLabel:     "Get a demo",
			SubmittingLabel: "Submitting...",
		},
	}
}
