package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carsawa/site/config"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/ui"
)

func HandleHome(c *fiber.Ctx) error {
	featured, err := source.FindCars(c.UserContext(),
		filter.Criteria{Status: listing.StatusAvailable},
		1, sizeOr(config.FeaturedCarsCount, 6))
	if err != nil {
		hlog().Warn("featured cars failed", zap.Error(err))
	}
	return render(c, ui.HomePage(featured.Items, err))
}
