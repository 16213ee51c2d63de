package taxonomy

import "github.com/story-radar/backend/internal/models"

// Default returns the built-in registry. A YAML override file can replace
// individual sections (see Load).
func Default() Registry {
	return Registry{
		Active: []models.Country{models.CountryUK, models.CountryUS},
		Countries: []CountryConfig{
			{
				Code:     models.CountryUK,
				Name:     "United Kingdom",
				Flag:     "🇬🇧",
				Timezone: "Europe/London",
				LocalTopics: []Topic{
					{Name: "NHS", Keywords: []string{"nhs", "national health service", "hospital waiting", "gp appointment"}},
					{Name: "Brexit", Keywords: []string{"brexit", "northern ireland protocol", "windsor framework"}},
					{Name: "UK Politics", Keywords: []string{"downing street", "westminster", "parliament", "prime minister"}},
					{Name: "UK Cost of Living", Keywords: []string{"council tax", "tv licence", "ofgem", "energy price cap"}},
				},
				Politicians: []Entity{
					{Name: "Keir Starmer", Aliases: []string{"keir starmer", "starmer"}},
					{Name: "Nigel Farage", Aliases: []string{"nigel farage", "farage"}},
					{Name: "Rishi Sunak", Aliases: []string{"rishi sunak", "sunak"}},
					{Name: "Lee Anderson", Aliases: []string{"lee anderson"}},
				},
			},
			{
				Code:     models.CountryUS,
				Name:     "United States",
				Flag:     "🇺🇸",
				Timezone: "America/New_York",
				LocalTopics: []Topic{
					{Name: "US Healthcare", Keywords: []string{"medicare", "medicaid", "health insurance", "obamacare", "aca"}},
					{Name: "Immigration", Keywords: []string{"border", "immigration", "deportation", "asylum", "migrants"}},
					{Name: "Gun Control", Keywords: []string{"gun control", "second amendment", "shooting", "firearms"}},
					{Name: "US Politics", Keywords: []string{"white house", "congress", "senate", "house of representatives"}},
					{Name: "US Cost of Living", Keywords: []string{"401k", "student debt", "medical bills", "insurance premium"}},
				},
				Politicians: []Entity{
					{Name: "Donald Trump", Aliases: []string{"donald trump", "trump"}},
					{Name: "Joe Biden", Aliases: []string{"joe biden", "biden", "president biden"}},
					{Name: "Ron DeSantis", Aliases: []string{"ron desantis", "desantis"}},
					{Name: "AOC", Aliases: []string{"alexandria ocasio-cortez", "ocasio-cortez", "aoc"}},
				},
			},
		},
		GlobalTopics: []Topic{
			{Name: "Climate", Keywords: []string{"climate change", "global warming", "carbon emissions", "net zero", "renewable energy"}},
			{Name: "Tech", Keywords: []string{"artificial intelligence", "ai", "chatgpt", "openai", "meta", "google", "apple"}},
			{Name: "International", Keywords: []string{"ukraine", "russia", "china", "middle east", "israel", "gaza"}},
			{Name: "Royal Family", Keywords: []string{"king charles", "prince william", "kate middleton", "prince harry", "meghan markle"}},
			{Name: "Entertainment", Keywords: []string{"celebrity", "hollywood", "netflix", "disney", "streaming"}},
			{Name: "Science", Keywords: []string{"nasa", "space", "research", "study finds", "scientists"}},
		},
		ViralTopics: []Topic{
			{Name: "Cost of Living", Children: []Topic{
				{Name: "Energy Bills", Keywords: []string{"energy bill", "gas bill", "electricity", "heating costs", "energy price"}},
				{Name: "Food Prices", Keywords: []string{"food price", "grocery", "tesco", "sainsbury", "weekly shop", "supermarket"}},
				{Name: "Petrol", Keywords: []string{"petrol price", "diesel price", "fuel cost", "gas price"}},
				{Name: "Rent & Housing", Keywords: []string{"rent", "house price", "mortgage", "landlord", "housing crisis"}},
				{Name: "Wages", Keywords: []string{"wage", "salary", "pay rise", "minimum wage", "layoff", "redundancy"}},
			}},
			{Name: "Corporate Drama", Children: []Topic{
				{Name: "Collapses", Keywords: []string{"bankruptcy", "collapse", "administration", "goes bust", "liquidation"}},
				{Name: "Scandals", Keywords: []string{"ceo fired", "fraud", "scandal", "investigation", "lawsuit"}},
				{Name: "Layoffs", Keywords: []string{"layoff", "job cuts", "redundancy", "closing", "mass layoffs"}},
				{Name: "Greed", Keywords: []string{"record profit", "ceo pay", "bonus", "windfall profit", "shareholder"}},
			}},
			{Name: "Tech Entertainment", Children: []Topic{
				{Name: "AI Controversy", Keywords: []string{"chatgpt", "ai", "openai", "artificial intelligence", "ai regulation"}},
				{Name: "Crypto", Keywords: []string{"bitcoin", "crypto crash", "ftx", "cryptocurrency", "blockchain"}},
				{Name: "Big Tech", Keywords: []string{"antitrust", "monopoly", "tech regulation", "data privacy"}},
			}},
			{Name: "Labor", Children: []Topic{
				{Name: "Strikes", Keywords: []string{"strike", "industrial action", "union", "walkout", "picket"}},
				{Name: "Conditions", Keywords: []string{"amazon warehouse", "gig economy", "zero hours", "worker rights"}},
			}},
			{Name: FallbackCategory, Children: []Topic{
				{Name: "Sport", Keywords: []string{"premier league", "champions league", "world cup", "super bowl", "olympics"}},
				{Name: "Weather", Keywords: []string{"heatwave", "storm", "flooding", "snow warning", "met office"}},
			}},
		},
		ViralPeople: []EntityGroup{
			{Name: "Tech Billionaires", Entities: []Entity{
				{Name: "Elon Musk", Aliases: []string{"elon musk", "musk", "tesla", "spacex", "twitter", "x corp"}},
				{Name: "Mark Zuckerberg", Aliases: []string{"mark zuckerberg", "zuckerberg", "meta", "facebook"}},
				{Name: "Jeff Bezos", Aliases: []string{"jeff bezos", "bezos", "amazon", "blue origin"}},
				{Name: "Sam Altman", Aliases: []string{"sam altman", "altman", "openai"}},
				{Name: "Larry Ellison", Aliases: []string{"larry ellison", "ellison", "oracle"}},
			}},
			{Name: "Controversial Influencers", Entities: []Entity{
				{Name: "MrBeast", Aliases: []string{"mrbeast", "jimmy donaldson", "beast games"}},
				{Name: "Andrew Tate", Aliases: []string{"andrew tate", "tate"}},
				{Name: "Kim Kardashian", Aliases: []string{"kim kardashian"}},
				{Name: "Kylie Jenner", Aliases: []string{"kylie jenner"}},
				{Name: "Hasan Piker", Aliases: []string{"hasan piker", "hasanabi"}},
			}},
			{Name: "Royal Drama", Entities: []Entity{
				{Name: "Prince Harry", Aliases: []string{"prince harry", "harry"}},
				{Name: "Meghan Markle", Aliases: []string{"meghan markle", "duchess of sussex"}},
				{Name: "King Charles", Aliases: []string{"king charles"}},
				{Name: "Prince William", Aliases: []string{"prince william"}},
				{Name: "Kate Middleton", Aliases: []string{"kate middleton", "princess of wales", "princess kate"}},
			}},
			{Name: "Celebrities", Entities: []Entity{
				{Name: "Beyoncé", Aliases: []string{"beyonce", "beyoncé"}},
				{Name: "Rihanna", Aliases: []string{"rihanna"}},
				{Name: "Taylor Swift", Aliases: []string{"taylor swift"}},
				{Name: "Billie Eilish", Aliases: []string{"billie eilish"}},
				{Name: "Lana Del Rey", Aliases: []string{"lana del rey"}},
				{Name: "Cardi B", Aliases: []string{"cardi b"}},
			}},
		},
		Weights: map[string]int{
			"Cost of Living":     10,
			"Corporate Drama":    8,
			"Tech Entertainment": 7,
			"Labor":              6,
			"Climate":            5,
			"International":      4,
			"Royal Family":       3,
			FallbackCategory:     1,
		},
	}
}
