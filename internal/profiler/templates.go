package profiler

import "github.com/BerylCAtieno/icp-generator/internal/models"

// Template returns an independent copy of the profile stored under key.
// Unknown keys, including TemplateExternal, report false.
func Template(key models.TemplateKey) (models.CustomerProfile, bool) {
	profile, ok := templates[key]
	if !ok {
		return models.CustomerProfile{}, false
	}
	return profile.Clone(), true
}

var templates = map[models.TemplateKey]models.CustomerProfile{
	models.TemplateLinkedInOutreach: linkedInOutreachProfile,
	models.TemplateB2BSaaS:          b2bSaaSProfile,
	models.TemplateDefault:          defaultProfile,
}

var linkedInOutreachProfile = models.CustomerProfile{
	Personas: []models.Persona{
		{
			Title:        "Startup Founder / CEO",
			JobTitles:    []string{"Founder", "Co-Founder", "CEO", "Chief Executive Officer"},
			CompanyStage: "Pre-seed to Series A",
			Industry:     []string{"SaaS", "Tech", "B2B Software", "Fintech"},
			TeamSize:     "1-50",
			Region:       []string{"US", "UK", "Western Europe", "Canada"},
			PainPoints: []string{
				"Struggling with lead generation and pipeline building",
				"Wants to scale outbound but lacks experienced SDR team",
				"Wasting time on manual cold outreach with low response rates",
				"Need to prove ROI on sales activities to investors",
			},
			GrowthSignals: []string{
				"Recently raised funding or participating in accelerator programs",
				"Hiring sales development representatives or account executives",
				"Actively using LinkedIn Sales Navigator or similar tools",
				"Posting about sales challenges or hiring on social media",
			},
		},
		{
			Title:        "Head of Sales / Sales Manager",
			JobTitles:    []string{"Head of Sales", "VP Sales", "Sales Director", "Sales Development Manager"},
			CompanyStage: "Series A to Series B",
			Industry:     []string{"SaaS", "B2B Software", "Professional Services"},
			TeamSize:     "25-200",
			Region:       []string{"US", "UK", "Western Europe", "Australia"},
			PainPoints: []string{
				"Sales team underperforming on outbound prospecting metrics",
				"Need better lead-to-meeting conversion rates",
				"Looking to automate and scale initial outreach processes",
				"Pressure to increase pipeline velocity and deal size",
			},
			GrowthSignals: []string{
				"Recent expansion of sales team or new sales hiring",
				"Investment in new sales tools or technology stack",
				"Attending sales conferences or posting about sales enablement",
				"Company showing signs of rapid growth or recent funding",
			},
		},
	},
	FilterLogic: models.FilterLogic{
		{Name: "job_title_contains", Value: models.List("founder", "ceo", "head of sales", "vp sales", "sales director", "sales development")},
		{Name: "company_size_range", Value: models.Single("1-200")},
		{Name: "industry_keywords", Value: models.List("SaaS", "B2B software", "Software", "Technology", "AI tools")},
		{Name: "geography", Value: models.List("United States", "United Kingdom", "Germany", "France", "Netherlands", "Canada", "Australia")},
		{Name: "company_growth_stage", Value: models.List("Seed", "Series A", "Series B", "Early Stage")},
	},
	SampleKeywords: []string{"linkedin outreach", "cold email", "sales prospecting", "AI sales assistant", "lead generation", "sales automation"},
	IntentSignals: []string{
		"Using tools like Outreach.io, SalesLoft, or Apollo.io",
		"Recently posted job openings for SDRs or sales roles",
		"Subscribes to sales-focused content or newsletters",
		"Engages with sales methodology content on LinkedIn",
		"Company has recent funding announcements or growth milestones",
	},
}

var b2bSaaSProfile = models.CustomerProfile{
	Personas: []models.Persona{
		{
			Title:        "SaaS Founder / Product Leader",
			JobTitles:    []string{"Founder", "CEO", "Product Manager", "Head of Product"},
			CompanyStage: "Seed to Series B",
			Industry:     []string{"SaaS", "Software", "B2B Technology"},
			TeamSize:     "5-100",
			Region:       []string{"US", "Europe", "Canada"},
			PainPoints: []string{
				"Need to accelerate product-market fit validation",
				"Struggling with user acquisition and retention",
				"Looking for ways to improve product adoption metrics",
				"Need better customer feedback and insights",
			},
			GrowthSignals: []string{
				"Recently launched product or major feature updates",
				"Actively hiring product or engineering teams",
				"Participating in product management communities",
				"Seeking customer development and user research tools",
			},
		},
		{
			Title:        "Marketing Director / Growth Lead",
			JobTitles:    []string{"Marketing Director", "Head of Growth", "VP Marketing", "Growth Manager"},
			CompanyStage: "Series A to Series C",
			Industry:     []string{"SaaS", "Technology", "Digital Services"},
			TeamSize:     "20-500",
			Region:       []string{"US", "UK", "EU", "Australia"},
			PainPoints: []string{
				"Need to scale marketing efforts and improve CAC/LTV",
				"Looking for better attribution and analytics tools",
				"Struggling with multi-channel campaign management",
				"Need to prove marketing ROI to executive team",
			},
			GrowthSignals: []string{
				"Increasing marketing budget or team expansion",
				"Testing new marketing channels and strategies",
				"Attending growth and marketing conferences",
				"Recently implemented new marketing tech stack",
			},
		},
	},
	FilterLogic: models.FilterLogic{
		{Name: "job_title_contains", Value: models.List("founder", "ceo", "product manager", "marketing director", "head of growth")},
		{Name: "company_size_range", Value: models.Single("5-500")},
		{Name: "industry_keywords", Value: models.List("SaaS", "Software", "B2B", "Technology", "Digital")},
		{Name: "geography", Value: models.List("United States", "United Kingdom", "Germany", "Canada", "Australia", "France")},
		{Name: "company_type", Value: models.List("Private", "Startup", "Scale-up")},
	},
	SampleKeywords: []string{"B2B SaaS", "product analytics", "growth hacking", "customer success", "SaaS metrics"},
	IntentSignals: []string{
		"Using analytics tools like Mixpanel, Amplitude, or Google Analytics",
		"Active in product management or growth communities",
		"Recently published content about product development",
		"Company showing rapid user growth or feature releases",
		"Attending SaaS or product conferences",
	},
}

var defaultProfile = models.CustomerProfile{
	Personas: []models.Persona{
		{
			Title:        "Business Decision Maker",
			JobTitles:    []string{"CEO", "Founder", "Director", "VP", "Manager"},
			CompanyStage: "Growth stage",
			Industry:     []string{"Technology", "Professional Services", "B2B"},
			TeamSize:     "10-200",
			Region:       []string{"US", "Europe"},
			PainPoints: []string{
				"Need to improve operational efficiency",
				"Looking for scalable business solutions",
				"Seeking competitive advantages in the market",
				"Want to reduce costs while maintaining quality",
			},
			GrowthSignals: []string{
				"Recent funding or business expansion",
				"New leadership appointments",
				"Investment in new technology or tools",
				"Active hiring and team growth",
			},
		},
	},
	FilterLogic: models.FilterLogic{
		{Name: "job_title_contains", Value: models.List("ceo", "founder", "director", "vp", "manager", "head of")},
		{Name: "company_size_range", Value: models.Single("10-200")},
		{Name: "industry_keywords", Value: models.List("Technology", "Software", "Professional Services", "B2B")},
		{Name: "geography", Value: models.List("United States", "United Kingdom", "Germany", "Canada")},
		{Name: "company_growth_indicators", Value: models.List("Funding", "Hiring", "Expansion")},
	},
	SampleKeywords: []string{"business solution", "enterprise software", "automation", "efficiency"},
	IntentSignals: []string{
		"Recently posted about business challenges",
		"Active in industry-specific communities",
		"Company showing signs of growth or change",
		"Investment in new business tools or processes",
	},
}
