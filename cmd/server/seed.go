package main

import (
	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	catalogRepo "github.com/verdantgoods/storefront/internal/catalog/repository"
	contentdomain "github.com/verdantgoods/storefront/internal/content/domain"
	contentRepo "github.com/verdantgoods/storefront/internal/content/repository"
	userdomain "github.com/verdantgoods/storefront/internal/user/domain"
	userRepo "github.com/verdantgoods/storefront/internal/user/repository"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/auth"
	"github.com/verdantgoods/storefront/pkg/logger"
)

// seed loads development fixtures. It is idempotent: existing rows are
// left alone.
func seed(
	users *userRepo.GormUserRepository,
	products *catalogRepo.GormProductRepository,
	portfolio *catalogRepo.GormPortfolioRepository,
	faqs *contentRepo.GormFAQRepository,
) error {
	if _, err := users.FindByEmail("admin@verdantgoods.test"); err != nil {
		if !isNotFound(err) {
			return err
		}
		hash, err := auth.HashPassword(getEnv("SEED_ADMIN_PASSWORD", "admin123"))
		if err != nil {
			return err
		}
		admin := &userdomain.User{
			Email:        "admin@verdantgoods.test",
			Name:         "Admin",
			PasswordHash: hash,
			IsAdmin:      true,
		}
		if err := users.Create(admin); err != nil {
			return err
		}
		logger.Logger.Info().Str("email", admin.Email).Msg("Seeded admin user")
	}

	seedProducts := []catalogdomain.Product{
		{Slug: "eco-bottle", Name: "Eco Bottle", Description: "Insulated steel bottle, 750ml.", Price: 19.90, Category: "kitchen", Image: "/img/eco-bottle.jpg", Stock: 20},
		{Slug: "bamboo-cutlery", Name: "Bamboo Cutlery Set", Description: "Travel cutlery in a cotton pouch.", Price: 12.50, Category: "kitchen", Image: "/img/bamboo-cutlery.jpg", Stock: 35},
		{Slug: "hemp-tote", Name: "Hemp Tote Bag", Description: "Heavy duty tote, holds 15kg.", Price: 24.00, Category: "bags", Image: "/img/hemp-tote.jpg", Stock: 15},
		{Slug: "beeswax-wraps", Name: "Beeswax Wraps", Description: "Reusable food wraps, pack of three.", Price: 16.75, Category: "kitchen", Image: "/img/beeswax-wraps.jpg", Stock: 40},
		{Slug: "solar-charger", Name: "Solar Charger", Description: "10W folding panel with USB out.", Price: 49.00, Category: "outdoor", Image: "/img/solar-charger.jpg", Stock: 8},
	}
	for i := range seedProducts {
		if _, err := products.FindBySlug(seedProducts[i].Slug); err == nil {
			continue
		} else if !isNotFound(err) {
			return err
		}
		if err := products.Create(&seedProducts[i]); err != nil {
			return err
		}
	}

	seedPortfolio := []struct {
		item catalogdomain.PortfolioItem
		tags []string
	}{
		{catalogdomain.PortfolioItem{Slug: "riverside-market", Name: "Riverside Market", Image: "/img/riverside-market.jpg", Description: "Zero-waste pop-up store fit-out."}, []string{"retail", "zero-waste"}},
		{catalogdomain.PortfolioItem{Slug: "greenline-cafe", Name: "Greenline Cafe", Image: "/img/greenline-cafe.jpg", Description: "Full compostable packaging rollout."}, []string{"hospitality", "packaging"}},
	}
	existingWork, err := portfolio.FindAll()
	if err != nil {
		return err
	}
	if len(existingWork) == 0 {
		for i := range seedPortfolio {
			seedPortfolio[i].item.SetTags(seedPortfolio[i].tags)
			if err := portfolio.Create(&seedPortfolio[i].item); err != nil {
				return err
			}
		}
	}

	existing, err := faqs.FindAll(false)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		seedFAQs := []contentdomain.FAQ{
			{Question: "Do you ship internationally?", Answer: "We ship to most of Europe; other regions on request.", Position: 1, Published: true},
			{Question: "What is your return policy?", Answer: "Unused items can be returned within 30 days.", Position: 2, Published: true},
			{Question: "Are your products certified?", Answer: "All suppliers hold FSC or GOTS certification.", Position: 3, Published: true},
		}
		for i := range seedFAQs {
			if err := faqs.Create(&seedFAQs[i]); err != nil {
				return err
			}
		}
	}

	logger.Logger.Info().Msg("Seed data loaded")
	return nil
}

func isNotFound(err error) bool {
	return apperr.KindOf(err) == apperr.KindNotFound
}
