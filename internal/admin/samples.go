package admin

import "github.com/avocado-ai/avocado-web/internal/domain"

// Samples is the demonstration data shown when the backend is unreachable
// and sample fallback is enabled.
type Samples struct {
	Jobs       []domain.Job
	News       []domain.News
	Cases      []domain.Case
	Techniques []domain.Technique
	Products   []domain.Product
}

func DefaultSamples() Samples {
	return Samples{
		Jobs: []domain.Job{{
			ID:           1,
			Title:        "AI Security Engineer",
			Department:   "Engineering",
			Location:     "Taipei",
			Type:         "Full-time",
			Salary:       "NT$ 80,000 - 120,000",
			Description:  "Join our AI security team...",
			Requirements: []string{"Bachelor's degree..."},
			Benefits:     []string{"Competitive salary..."},
			Tags:         []string{},
			PostedDate:   "2024-01-15",
			IsActive:     true,
		}},
		News: []domain.News{{
			ID:            1,
			Title:         "Avocado.ai Launches New AI Security Platform",
			Content:       "We are excited to announce...",
			Category:      "Product Launch",
			PublishedDate: "2024-01-15",
			IsPublished:   true,
			Images:        []string{},
		}},
		Cases: []domain.Case{{
			ID:        1,
			Title:     "Fortune 500 Financial Institution",
			Industry:  "Financial Services",
			Challenge: "Faced sophisticated cyber attacks...",
			Solution:  "Implemented Avocado AI Sentinel...",
			Results:   []string{"99.9% threat detection rate"},
			IsActive:  true,
		}},
		Techniques: []domain.Technique{{
			ID:          1,
			Name:        "Behavioral Threat Modeling",
			Category:    "Detection",
			Description: "Learns normal activity and flags deviations...",
			Features:    []string{"Real-time anomaly scoring"},
			IsActive:    true,
		}},
		Products: []domain.Product{{
			ID:          1,
			Name:        "Avocado AI Sentinel",
			Category:    "Threat Detection",
			Description: "AI-driven monitoring for enterprise networks...",
			Price:       "Contact sales",
			Features:    []string{"24/7 automated response"},
			IsActive:    true,
		}},
	}
}
