package store

import (
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// DemoItems returns the fixed dataset used when no snapshot exists yet (or
// the persisted one is unreadable). It covers the found and claim_requested
// states, with and without detected text and colors.
func DemoItems() []model.Item {
	now := time.Now()
	return []model.Item{
		{
			ID:            "demo-1",
			ImageURL:      "/api/items/demo-1/image",
			Category:      "Water Bottle",
			Description:   `Blue metal Hydroflask found on the bleachers. Has a "National Park" sticker and a dent on the bottom.`,
			Location:      "Campus Gym",
			Date:          now,
			Status:        model.StatusFound,
			Colors:        []string{"Blue", "Silver"},
			ReporterPhone: "9876543210",
			ReporterEmail: "gym.staff@college.edu",
		},
		{
			ID:            "demo-2",
			ImageURL:      "/api/items/demo-2/image",
			Category:      "Electronics",
			Description:   "White Apple AirPods Pro case. Found on Table 4 in the Quiet Zone. Case only, no buds inside.",
			Location:      "Library - 2nd Floor",
			Date:          now.Add(-24 * time.Hour),
			Status:        model.StatusClaimRequested,
			Colors:        []string{"White"},
			ReporterPhone: "9876543210",
			ClaimRequest: &model.ClaimRequest{
				ClaimerName:   "Alex Mercer",
				ContactNumber: "555-0199",
				Description:   "I lost the case while studying. It has a small scratch near the charging port.",
				RequestDate:   now,
			},
		},
		{
			ID:            "demo-3",
			ImageURL:      "/api/items/demo-3/image",
			Category:      "ID Cards",
			Description:   `Student ID card found near the Vending Machines. Name on card: "Rohan Das".`,
			Location:      "Student Center",
			Date:          now.Add(-48 * time.Hour),
			Status:        model.StatusFound,
			Colors:        []string{"White", "Green"},
			DetectedText:  "Rohan Das ID: 1905387",
			ReporterPhone: "1122334455",
		},
		{
			ID:            "demo-4",
			ImageURL:      "/api/items/demo-4/image",
			Category:      "Electronics",
			Description:   "Black scientific calculator (Casio FX-100MS). Left on the desk in the back row after Calculus 101.",
			Location:      "Science Block - Room 304",
			Date:          now.Add(-70 * time.Hour),
			Status:        model.StatusFound,
			Colors:        []string{"Black", "Grey"},
			ReporterPhone: "5551234567",
		},
	}
}
