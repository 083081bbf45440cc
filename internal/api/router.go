package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
)

// NewRouter registers every HTTP route on a fresh gin engine.
func NewRouter(h *BattleHandler, auth *AuthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(constants.RouteHealth, Health)
	router.GET(constants.RouteVersion, Version)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, auth.GoogleOAuthCallback)
		// Anonymous simulations are allowed; logged-in ones are attributed.
		apiRoutes.POST(constants.RouteBattleSimulate, OptionalAuth(), h.SimulateBattle)

		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.GET(constants.RoutePlayerStats, h.GetPlayerStats)
		protected.POST(constants.RouteBattles, h.CreateBattle)
		protected.GET(constants.RouteBattleByID, h.GetBattle)
		protected.POST(constants.RouteBattleMove, h.SubmitMove)
		protected.POST(constants.RouteBattleHack, h.SubmitHackAnswer)
		protected.POST(constants.RouteBattleForfeit, h.Forfeit)
		protected.GET(constants.RouteBattleStream, h.StreamBattle)
	}
	return router
}
