package models

import "time"

func rating(v float64) *float64 { return &v }

// SampleDishes returns the built-in demo deck.
func SampleDishes() []Dish {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return []Dish{
		{
			ID:    "sample-carbonara",
			Title: "Spaghetti Carbonara",
			Image: "asset:pasta.png",
			Tags:  []string{"italian", "dinner", "high_protein"},
			Ingredients: IngredientList{
				StructuredIngredient("spaghetti", "400", "g"),
				StructuredIngredient("guanciale", "150", "g"),
				StructuredIngredient("egg yolks", "4", ""),
				RawIngredient("Pecorino Romano, grated"),
				RawIngredient("Black pepper"),
			},
			Directions: StepList{
				"Boil the pasta in salted water.",
				"Crisp the guanciale in a dry pan.",
				"Whisk yolks with cheese and pepper.",
				"Toss pasta off the heat with the egg mixture and guanciale.",
			},
			Rating:    rating(8.5),
			Likes:     42,
			Privacy:   PrivacyPublic,
			CreatedAt: created,
		},
		{
			ID:    "sample-chickpea-curry",
			Title: "Chickpea Curry",
			Image: "asset:curry.png",
			Tags:  []string{"indian", "vegan", "dinner", "high_fiber"},
			Ingredients: IngredientList{
				StructuredIngredient("chickpeas", "2", "cans"),
				StructuredIngredient("coconut milk", "1", "can"),
				StructuredIngredient("curry paste", "2", "tbsp"),
				RawIngredient("1 onion, diced"),
			},
			Directions: StepList{
				"Soften the onion in oil.",
				"Fry the curry paste for a minute.",
				"Add chickpeas and coconut milk and simmer 15 minutes.",
			},
			Rating:    rating(7.5),
			Likes:     17,
			Privacy:   PrivacyPublic,
			CreatedAt: created,
		},
		{
			ID:    "sample-tacos",
			Title: "Fish Tacos",
			Image: "asset:tacos.png",
			Tags:  []string{"mexican", "pescatarian", "lunch"},
			Ingredients: IngredientList{
				StructuredIngredient("white fish fillets", "500", "g"),
				StructuredIngredient("corn tortillas", "8", ""),
				RawIngredient("Shredded cabbage"),
				RawIngredient("Lime wedges"),
			},
			Directions: StepList{
				"Season and pan-fry the fish.",
				"Warm the tortillas.",
				"Assemble with cabbage and lime.",
			},
			Likes:     8,
			Privacy:   PrivacyPublic,
			CreatedAt: created,
		},
		{
			ID:    "sample-pancakes",
			Title: "Fluffy Pancakes",
			Image: "asset:pancakes.png",
			Tags:  []string{"american", "breakfast", "vegetarian"},
			Ingredients: IngredientList{
				StructuredIngredient("flour", "1 1/2", "cups"),
				StructuredIngredient("milk", "1 1/4", "cups"),
				StructuredIngredient("baking powder", "3 1/2", "tsp"),
				StructuredIngredient("egg", "1", ""),
			},
			Directions: StepList{
				"Whisk the dry ingredients.",
				"Beat in milk and egg until just combined.",
				"Cook ladlefuls on a hot griddle until bubbles form, then flip.",
			},
			Rating:    rating(9),
			Likes:     64,
			Privacy:   PrivacyPublic,
			CreatedAt: created,
		},
		{
			ID:    "sample-greek-salad",
			Title: "Greek Salad",
			Image: "asset:salad.png",
			Tags:  []string{"mediterranean", "vegetarian", "gluten_free", "lunch"},
			Ingredients: IngredientList{
				RawIngredient("Tomatoes"),
				RawIngredient("Cucumber"),
				RawIngredient("Red onion"),
				StructuredIngredient("feta", "200", "g"),
				RawIngredient("Kalamata olives"),
			},
			Directions: StepList{
				"Chop the vegetables into chunks.",
				"Top with feta and olives, dress with oil and oregano.",
			},
			Rating:    rating(6.5),
			Likes:     5,
			Privacy:   PrivacyPublic,
			CreatedAt: created,
		},
	}
}
