package services

import "github.com/ivandex16/teslo-shop-curso-nest/internal/model"

func desc(s string) *string { return &s }

// InitialData is what GET /api/seed loads.
var InitialData = SeedData{
	Users: []SeedUser{
		{Email: "test1@google.com", FullName: "Test One", Password: "Abc123", Roles: []string{model.RoleAdmin}},
		{Email: "test2@google.com", FullName: "Test Two", Password: "Abc123", Roles: []string{model.RoleUser, model.RoleSuperUser}},
	},
	Products: []SeedProduct{
		{
			Product: model.Product{
				Title:       "Men's Chill Crew Neck Sweatshirt",
				Description: desc("Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season."),
				Price:       75,
				Stock:       7,
				Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
				Slug:        "mens_chill_crew_neck_sweatshirt",
				Gender:      "men",
				Tags:        []string{"sweatshirt"},
			},
			Images: []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
		},
		{
			Product: model.Product{
				Title:       "Men's Quilted Shirt Jacket",
				Description: desc("The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons."),
				Price:       200,
				Stock:       5,
				Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
				Slug:        "men_quilted_shirt_jacket",
				Gender:      "men",
				Tags:        []string{"jacket"},
			},
			Images: []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
		},
		{
			Product: model.Product{
				Title:       "Women's Cropped Puffer Jacket",
				Description: desc("The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style while on the go during the cozy season ahead."),
				Price:       225,
				Stock:       85,
				Sizes:       []string{"XS", "S", "M"},
				Slug:        "women_cropped_puffer_jacket",
				Gender:      "women",
				Tags:        []string{"hoodie"},
			},
			Images: []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
		},
		{
			Product: model.Product{
				Title:       "Kids Cybertruck Long Sleeve Tee",
				Description: desc("Designed for fit, comfort and style, the Kids Cybertruck Graffiti Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest."),
				Price:       30,
				Stock:       10,
				Sizes:       []string{"XS", "S", "M"},
				Slug:        "kids_cybertruck_long_sleeve_tee",
				Gender:      "kid",
				Tags:        []string{"shirt"},
			},
			Images: []string{"1742693-00-A_1_2000.jpg", "1742693-00-A_0.jpg"},
		},
		{
			Product: model.Product{
				Title:       "Tesla Logo Unisex Beanie",
				Description: desc("The Tesla Logo Beanie is made from a soft knit with a subtle embroidered T logo."),
				Price:       35,
				Stock:       15,
				Sizes:       []string{"M"},
				Slug:        "tesla_logo_unisex_beanie",
				Gender:      "unisex",
				Tags:        []string{"hats"},
			},
			Images: []string{"1657932-00-A_0_2000.jpg"},
		},
	},
}
