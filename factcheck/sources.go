package factcheck

import "truthonly/models"

// Editorial source sets attached to results. Purely static reference data.

var remoteBaseSources = []models.Source{
	{Name: "Google Gemini AI Analysis", URL: "https://ai.google.dev/"},
	{Name: "Cross-referenced with fact-checking databases", URL: "https://www.factcheck.org/"},
}

var remoteClassSources = map[models.Classification][]models.Source{
	models.ClassPotentialMisinformation: {
		{Name: "Misinformation Detection Alert", URL: "https://www.snopes.com/"},
		{Name: "Verification Guidelines", URL: "https://www.poynter.org/ifcn/"},
	},
	models.ClassVerified: {
		{Name: "Information Verified", URL: "https://www.reuters.com/fact-check/"},
		{Name: "Trusted Source Confirmation", URL: "https://www.ap.org/"},
	},
}

var (
	covidHoaxSources = []models.Source{
		{Name: "WHO Official COVID-19 Information", URL: "https://www.who.int/emergencies/diseases/novel-coronavirus-2019"},
		{Name: "CDC COVID-19 Data", URL: "https://www.cdc.gov/coronavirus/2019-ncov/"},
		{Name: "Medical Journal Publications", URL: "https://www.nejm.org/coronavirus"},
	}
	covidVaccineSources = []models.Source{
		{Name: "WHO - COVID-19 Vaccine Safety", URL: "https://www.who.int/news-room/feature-stories/detail/safety-of-covid-19-vaccines"},
		{Name: "CDC - Vaccine Safety Monitoring", URL: "https://www.cdc.gov/coronavirus/2019-ncov/vaccines/safety/"},
		{Name: "FDA - Vaccine Approval Process", URL: "https://www.fda.gov/vaccines-blood-biologics/vaccines/"},
	}
	flatEarthSources = []models.Source{
		{Name: "NASA - Earth Images from Space", URL: "https://www.nasa.gov/audience/forstudents/k-4/stories/nasa-knows/what-is-earth-k4.html"},
		{Name: "Scientific Evidence - Spherical Earth", URL: "https://www.livescience.com/24310-flat-earth-belief.html"},
		{Name: "International Space Station Live Feed", URL: "https://www.nasa.gov/live"},
	}
	climateSources = []models.Source{
		{Name: "IPCC Climate Reports", URL: "https://www.ipcc.ch/"},
		{Name: "NASA Climate Evidence", URL: "https://climate.nasa.gov/evidence/"},
		{Name: "NOAA Climate Data", URL: "https://www.climate.gov/"},
	}
	deathHoaxSources = []models.Source{
		{Name: "Virat Kohli Official Instagram - Active Today", URL: "https://www.instagram.com/virat.kohli/"},
		{Name: "BCCI Official Website - Current Squad", URL: "https://www.bcci.tv/indian-cricket-team"},
		{Name: "ESPN Cricinfo - Recent Match Stats", URL: "https://www.espncricinfo.com/player/virat-kohli-253802"},
		{Name: "No Death Reports in Major News Outlets", URL: "https://www.google.com/search?q=virat+kohli+news+today"},
	}
)

var (
	satireSources = []models.Source{
		{Name: "The Onion - Satirical News Site", URL: "https://www.theonion.com/about"},
		{Name: "Media Bias/Fact Check - Satire Category", URL: "https://mediabiasfactcheck.com/"},
		{Name: "Satirical News Identification Guide", URL: "https://www.snopes.com/fact-check/"},
	}
	socialSources = []models.Source{
		{Name: "Social Media Verification Guidelines", URL: "https://www.poynter.org/ifcn/"},
		{Name: "Facebook Third-Party Fact Checkers", URL: "https://www.facebook.com/help/1952307158131536"},
		{Name: "Cross-referenced with news databases", URL: "https://www.reuters.com/fact-check/"},
	}
	domainSources = []models.Source{
		{Name: "Domain Authority Check", URL: "https://www.whois.net/"},
		{Name: "News Source Credibility Rating", URL: "https://mediabiasfactcheck.com/"},
		{Name: "Cross-verification with Reuters", URL: "https://www.reuters.com/"},
	}
	authenticImageSources = []models.Source{
		{Name: "Reverse Image Search - Original Found", URL: "https://images.google.com/"},
		{Name: "Getty Images - Verified Source", URL: "https://www.gettyimages.com/"},
		{Name: "AP Images - Authentic Photo Database", URL: "https://www.apimages.com/"},
	}
	manipulatedImageSources = []models.Source{
		{Name: "TinEye Reverse Search - Manipulated Image", URL: "https://tineye.com/"},
		{Name: "FotoForensics - Image Analysis", URL: "http://fotoforensics.com/"},
		{Name: "Snopes Image Verification", URL: "https://www.snopes.com/"},
	}
	textSources = []models.Source{
		{Name: "Cross-referenced with multiple databases", URL: "https://www.factcheck.org/"},
		{Name: "Verified against news archives", URL: "https://www.snopes.com/"},
		{Name: "Checked with official sources", URL: "https://www.reuters.com/fact-check/"},
	}
)

// imageScenarios are the manipulation patterns a disputed image is tagged with.
var imageScenarios = []string{"old photo", "manipulated", "deepfake", "out of context"}

func cloneSources(src []models.Source, extra ...models.Source) []models.Source {
	out := make([]models.Source, 0, len(src)+len(extra))
	out = append(out, src...)
	return append(out, extra...)
}
