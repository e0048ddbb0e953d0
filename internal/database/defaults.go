package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/wedplan/internal/database/repository"
	"github.com/jask/wedplan/internal/domain"
)

// SampleVendors is the catalog a fresh database starts with.
func SampleVendors() []domain.Vendor {
	return []domain.Vendor{
		{
			Name:         "Rajesh Photography",
			BusinessName: "Elite Wedding Photography",
			Email:        "rajesh@elitewedding.com",
			Phone:        "+91 9876543210",
			Category:     domain.CategoryPhotography,
			Services:     []string{"Candid Photography", "Traditional Photography", "Pre-Wedding Shoots"},
			PricingRange: domain.PriceRange{Min: 50000, Max: 150000},
			Location:     "Mumbai",
			Description:  "Award-winning wedding photographer with 8+ years of experience in capturing your special moments.",
			Rating:       4.8,
			TotalReviews: 156,
			Verified:     true,
		},
		{
			Name:         "Meera Caterers",
			BusinessName: "Royal Feast Catering",
			Email:        "meera@royalfeast.com",
			Phone:        "+91 9876543211",
			Category:     domain.CategoryCatering,
			Services:     []string{"Multi-Cuisine", "Traditional Indian", "Live Counters"},
			PricingRange: domain.PriceRange{Min: 800, Max: 2500},
			Location:     "Mumbai",
			Description:  "Premium catering services with authentic flavors and impeccable presentation for your dream wedding.",
			Rating:       4.6,
			TotalReviews: 89,
			Verified:     true,
		},
		{
			Name:         "Grand Palace Hotel",
			BusinessName: "Grand Palace Wedding Venue",
			Email:        "events@grandpalace.com",
			Phone:        "+91 9876543212",
			Category:     domain.CategoryVenue,
			Services:     []string{"Banquet Halls", "Garden Wedding", "Poolside Venue"},
			PricingRange: domain.PriceRange{Min: 200000, Max: 800000},
			Location:     "Mumbai",
			Description:  "Luxurious wedding venue with stunning architecture and world-class amenities.",
			Rating:       4.9,
			TotalReviews: 203,
			Verified:     true,
		},
		{
			Name:         "Elegant Decorators",
			BusinessName: "Elegant Event Decorators",
			Email:        "info@elegantdeco.com",
			Phone:        "+91 9876543213",
			Category:     domain.CategoryDecoration,
			Services:     []string{"Floral Decoration", "Theme Decoration", "Stage Design"},
			PricingRange: domain.PriceRange{Min: 75000, Max: 300000},
			Location:     "Mumbai",
			Description:  "Transform your wedding venue into a magical space with our creative decoration services.",
			Rating:       4.7,
			TotalReviews: 134,
			Verified:     true,
		},
	}
}

// SeedDefaults inserts the sample vendors into an empty catalog. It is
// idempotent and safe to run on every startup; it reports how many vendors
// were inserted.
func SeedDefaults(ctx context.Context, db *sql.DB) (int, error) {
	repo := repository.NewVendorRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	now := Now()
	vendors := SampleVendors()
	for _, v := range vendors {
		v.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("vendor:"+v.BusinessName)).String()
		v.CreatedAt = domain.Timestamp{Time: now}
		v.PortfolioImages = []string{}
		v.Availability = []string{}
		if err := repo.Create(ctx, v); err != nil {
			return 0, err
		}
	}
	return len(vendors), nil
}
