package routes

import (
	"net/http"

	"foodgram/auth"
	"foodgram/ingredients"
	"foodgram/middleware"
	"foodgram/profile"
	"foodgram/ratelim"
	"foodgram/recipes"
	"foodgram/shopping"
	"foodgram/suggestions"
	"foodgram/tags"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddTagRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tags", ratelim.RateLimit(tags.GetTags))
	router.GET("/api/v1/tags/:id", ratelim.RateLimit(tags.GetTag))
	router.POST("/api/v1/tags", middleware.Authenticate(tags.CreateTag))
	router.PUT("/api/v1/tags/:id", middleware.Authenticate(tags.UpdateTag))
	router.DELETE("/api/v1/tags/:id", middleware.Authenticate(tags.DeleteTag))
}

func AddIngredientRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ingredients", ratelim.RateLimit(ingredients.GetIngredients))
	router.GET("/api/v1/ingredients/:id", ratelim.RateLimit(ingredients.GetIngredient))
	router.POST("/api/v1/ingredients", middleware.Authenticate(ingredients.CreateIngredient))
	router.PUT("/api/v1/ingredients/:id", middleware.Authenticate(ingredients.UpdateIngredient))
	router.DELETE("/api/v1/ingredients/:id", middleware.Authenticate(ingredients.DeleteIngredient))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/api/v1/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.POST("/api/v1/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PUT("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))

	router.POST("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(recipes.Favorite))
	router.DELETE("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(recipes.Unfavorite))
	router.POST("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(recipes.AddToShoppingCart))
	router.DELETE("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(recipes.RemoveFromShoppingCart))

	router.GET("/api/v1/recipes/download_shopping_cart", ratelim.RateLimit(middleware.Authenticate(shopping.DownloadShoppingCart)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/v1/users", middleware.OptionalAuth(profile.GetUsers))
	router.GET("/api/v1/users/user/:id", middleware.OptionalAuth(profile.GetUser))
	router.PUT("/api/v1/users/user/:id", middleware.Authenticate(profile.UpdateUser))

	router.POST("/api/v1/users/user/:id/subscribe", ratelim.RateLimit(middleware.Authenticate(profile.Follow)))
	router.DELETE("/api/v1/users/user/:id/subscribe", ratelim.RateLimit(middleware.Authenticate(profile.Unfollow)))
	router.GET("/api/v1/users/subscriptions", middleware.Authenticate(profile.Subscriptions))
}

func AddSuggestionsRoutes(router *httprouter.Router) {
	router.GET("/api/v1/suggestions/follow", ratelim.RateLimit(middleware.Authenticate(suggestions.SuggestFollowers)))
}
