// Package seed 提供社区与目的类别的初始目录播种
package seed

import (
	"context"

	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// stateHubs 美国州级社区目录
var stateHubs = []struct{ regionID, name string }{
	{"us-california", "California"},
	{"us-texas", "Texas"},
	{"us-florida", "Florida"},
	{"us-new-york", "New York"},
	{"us-georgia", "Georgia"},
	{"us-maryland", "Maryland"},
	{"us-new-jersey", "New Jersey"},
	{"us-virginia", "Virginia"},
	{"us-illinois", "Illinois"},
	{"us-pennsylvania", "Pennsylvania"},
	{"us-north-carolina", "North Carolina"},
	{"us-ohio", "Ohio"},
	{"us-michigan", "Michigan"},
	{"us-massachusetts", "Massachusetts"},
	{"us-washington", "Washington"},
	{"us-minnesota", "Minnesota"},
	{"us-tennessee", "Tennessee"},
	{"us-missouri", "Missouri"},
	{"us-louisiana", "Louisiana"},
	{"us-arizona", "Arizona"},
}

// cityHubs 城市级社区目录
var cityHubs = []struct{ regionID, name string }{
	{"city-atlanta", "Atlanta"},
	{"city-houston", "Houston"},
	{"city-new-york-city", "New York City"},
	{"city-los-angeles", "Los Angeles"},
	{"city-chicago", "Chicago"},
	{"city-miami", "Miami"},
	{"city-dallas", "Dallas"},
	{"city-washington-dc", "Washington DC"},
	{"city-philadelphia", "Philadelphia"},
	{"city-boston", "Boston"},
	{"city-baltimore", "Baltimore"},
	{"city-charlotte", "Charlotte"},
	{"city-detroit", "Detroit"},
	{"city-minneapolis", "Minneapolis"},
	{"city-newark", "Newark"},
	{"city-brooklyn", "Brooklyn"},
	{"city-bronx", "Bronx"},
	{"city-memphis", "Memphis"},
	{"city-new-orleans", "New Orleans"},
	{"city-seattle", "Seattle"},
}

// diasporaHubs 侨民社区目录
var diasporaHubs = []struct{ regionID, name string }{
	{"diaspora-nigeria", "Nigerian Diaspora"},
	{"diaspora-ghana", "Ghanaian Diaspora"},
	{"diaspora-kenya", "Kenyan Diaspora"},
	{"diaspora-ethiopia", "Ethiopian Diaspora"},
	{"diaspora-jamaica", "Jamaican Diaspora"},
	{"diaspora-haiti", "Haitian Diaspora"},
	{"diaspora-trinidad", "Trinidadian Diaspora"},
	{"diaspora-senegal", "Senegalese Diaspora"},
	{"diaspora-cameroon", "Cameroonian Diaspora"},
	{"diaspora-somalia", "Somali Diaspora"},
	{"diaspora-liberia", "Liberian Diaspora"},
	{"diaspora-sierra-leone", "Sierra Leonean Diaspora"},
	{"diaspora-uganda", "Ugandan Diaspora"},
	{"diaspora-tanzania", "Tanzanian Diaspora"},
	{"diaspora-zimbabwe", "Zimbabwean Diaspora"},
	{"diaspora-south-africa", "South African Diaspora"},
	{"diaspora-ivory-coast", "Ivorian Diaspora"},
	{"diaspora-mali", "Malian Diaspora"},
	{"diaspora-dominican-republic", "Dominican Diaspora"},
	{"diaspora-guyana", "Guyanese Diaspora"},
}

// purposeCategories 目的类别目录
var purposeCategories = []struct{ slug, label string }{
	{"emergency-fund", "Emergency Fund"},
	{"home-ownership", "Home Ownership"},
	{"education", "Education"},
	{"business-capital", "Business Capital"},
	{"debt-freedom", "Debt Freedom"},
	{"travel", "Travel"},
	{"wedding", "Wedding"},
	{"general-savings", "General Savings"},
}

// Run 播种社区与类别目录。已播种过则跳过, 重复调用安全。
func Run(ctx context.Context, hubRepo *repository.HubRepository, categoryRepo *repository.CategoryRepository) error {
	hubCount, err := hubRepo.Count(ctx)
	if err != nil {
		return err
	}
	if hubCount == 0 {
		hubs := make([]*model.InterestHub, 0, len(stateHubs)+len(cityHubs)+len(diasporaHubs))
		for _, h := range stateHubs {
			hubs = append(hubs, &model.InterestHub{
				RegionID:   h.regionID,
				Name:       h.name,
				RegionKind: model.HubRegionKindState,
				Active:     true,
			})
		}
		for _, h := range cityHubs {
			hubs = append(hubs, &model.InterestHub{
				RegionID:   h.regionID,
				Name:       h.name,
				RegionKind: model.HubRegionKindCity,
				Active:     true,
			})
		}
		for _, h := range diasporaHubs {
			hubs = append(hubs, &model.InterestHub{
				RegionID:   h.regionID,
				Name:       h.name,
				RegionKind: model.HubRegionKindCountry,
				Active:     true,
			})
		}
		if err := hubRepo.CreateBatch(ctx, hubs); err != nil {
			return err
		}
		logger.Info("hub catalog seeded", "count", len(hubs))
	}

	categoryCount, err := categoryRepo.Count(ctx)
	if err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := make([]*model.PurposeCategory, 0, len(purposeCategories))
		for _, c := range purposeCategories {
			categories = append(categories, &model.PurposeCategory{
				Slug:   c.slug,
				Label:  c.label,
				Active: true,
			})
		}
		if err := categoryRepo.CreateBatch(ctx, categories); err != nil {
			return err
		}
		logger.Info("purpose category catalog seeded", "count", len(categories))
	}

	return nil
}
