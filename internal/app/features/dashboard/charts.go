// internal/app/features/dashboard/charts.go
package dashboard

import (
	"math"

	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
)

// chartData is the Chart.js data object, encoded into the page script.
type chartData struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor,omitempty"`
	BorderWidth     int      `json:"borderWidth"`
	BorderRadius    int      `json:"borderRadius,omitempty"`
	MaxBarThickness int      `json:"maxBarThickness,omitempty"`
}

type chartSet struct {
	Petitions  chartData
	Signatures chartData
	Totals     chartData
	// TotalsMax is the bar chart's suggested y-axis maximum.
	TotalsMax int
}

func buildCharts(s models.DashboardStats) chartSet {
	b := s.Breakdown
	totals := []int{s.TotalPetitions, s.TotalSignatures, s.TotalUsers, s.Victories}
	return chartSet{
		Petitions: chartData{
			Labels: []string{"Active", "Successful"},
			Datasets: []dataset{{
				Label:           "Petitions",
				Data:            []int{b.ActivePetitions, b.SuccessfulPetitions},
				BackgroundColor: []string{"#3b82f6", "#22c55e"},
				BorderColor:     []string{"#ffffff"},
				BorderWidth:     2,
			}},
		},
		Signatures: chartData{
			Labels: []string{"Active", "Successful"},
			Datasets: []dataset{{
				Label:           "Signatures",
				Data:            []int{b.ActiveSignatures, b.SuccessfulSignatures},
				BackgroundColor: []string{"#60a5fa", "#34d399"},
				BorderColor:     []string{"#ffffff"},
				BorderWidth:     2,
			}},
		},
		Totals: chartData{
			Labels: []string{"Petitions", "Signatures", "Users", "Victories"},
			Datasets: []dataset{{
				Label:           "Totals",
				Data:            totals,
				BackgroundColor: []string{"#3b82f6", "#22c55e", "#a855f7", "#f59e0b"},
				BorderRadius:    10,
				MaxBarThickness: 40,
			}},
		},
		TotalsMax: suggestedMax(totals),
	}
}

// suggestedMax leaves 20% headroom above the tallest bar, never below 12.
func suggestedMax(values []int) int {
	m := 10
	for _, v := range values {
		m = max(m, v)
	}
	return int(math.Ceil(float64(m) * 1.2))
}
