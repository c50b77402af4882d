package testutil

import (
	"time"

	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleInstant falls in Saturn / Mercury / Venus of SamplePeriods.
var SampleInstant = Date(2027, 1, 1)

// SampleStrength is a Sarvashtakavarga table in sign order, Aries first.
func SampleStrength() []float64 {
	return []float64{30, 25, 28, 22, 35, 20, 27, 24, 32, 19, 26, 31}
}

// SamplePeriods is a Rahu Mahadasha followed by a Saturn Mahadasha whose
// Mercury Antardasha is expanded one level further.
func SamplePeriods() []chart.Period {
	return []chart.Period{
		{Lord: "Rahu", Start: Date(2005, 1, 1), End: Date(2023, 1, 1)},
		{Lord: "Saturn", Start: Date(2023, 1, 1), End: Date(2042, 1, 1),
			Children: []chart.Period{
				{Lord: "Saturn", Start: Date(2023, 1, 1), End: Date(2026, 3, 1)},
				{Lord: "Mercury", Start: Date(2026, 3, 1), End: Date(2028, 9, 1),
					Children: []chart.Period{
						{Lord: "Mercury", Start: Date(2026, 3, 1), End: Date(2026, 8, 1)},
						{Lord: "Ketu", Start: Date(2026, 8, 1), End: Date(2026, 10, 1)},
						{Lord: "Venus", Start: Date(2026, 10, 1), End: Date(2027, 6, 1)},
						{Lord: "Sun", Start: Date(2027, 6, 1), End: Date(2028, 9, 1)},
					}},
				{Lord: "Ketu", Start: Date(2028, 9, 1), End: Date(2029, 10, 1)},
				{Lord: "Venus", Start: Date(2029, 10, 1), End: Date(2042, 1, 1)},
			}},
	}
}

// SampleTransits places five bodies around a Leo ascendant.
func SampleTransits() []chart.Placement {
	return []chart.Placement{
		{Name: "Mars", Sign: "Aries"},
		{Name: "Saturn", Sign: "Aquarius"},
		{Name: "Jupiter", Sign: "Taurus", Retrograde: true},
		{Name: "Venus", Sign: "Gemini"},
		{Name: "Rahu", Sign: "Pisces"},
	}
}

// SampleChart is a Leo-ascendant chart carrying SamplePeriods.
func SampleChart() chart.Chart {
	return chart.Chart{
		Name:      "sample",
		Ascendant: "Leo",
		Planets: []chart.Placement{
			{Name: "Sun", Sign: "Taurus", Degree: 12.5, Nakshatra: "Rohini"},
			{Name: "Moon", Sign: "Scorpio", Degree: 3, Nakshatra: "Anuradha"},
		},
		Strength: SampleStrength(),
		Dasha:    SamplePeriods(),
	}
}

// SampleAnalysisRequest analyses SampleChart at SampleInstant.
func SampleAnalysisRequest() *chart.AnalysisRequest {
	return &chart.AnalysisRequest{
		Chart:    SampleChart(),
		Transits: SampleTransits(),
		At:       SampleInstant,
	}
}

// SampleDashaRequest asks for the chain of SamplePeriods at SampleInstant.
func SampleDashaRequest() *chart.DashaRequest {
	return &chart.DashaRequest{Dasha: SamplePeriods(), At: SampleInstant, Window: 1}
}

//Personal.AI order the ending
