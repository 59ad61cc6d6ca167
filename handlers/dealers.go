package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/carsawa/site/config"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/ui"
)

func HandleDealers(c *fiber.Ctx) error {
	size := sizeOr(config.DealersPageSize, 6)
	page := max(c.QueryInt("page", 1), 1)

	dealers, err := source.ListDealers(c.UserContext(), page, size)
	if err != nil {
		hlog().Warn("list dealers failed", zap.Int("page", page), zap.Error(err))
		dealers.Page = page
	}
	return render(c, ui.DealersPage(dealers, size, err))
}

// HandleDealer loads the dealer and its cars in parallel. Only a failure to
// load the dealer fails the page; a failure to load the cars is shown inline.
func HandleDealer(c *fiber.Ctx) error {
	id := c.Params("id")
	size := sizeOr(config.DealerCarsPageSize, 9)
	page := max(c.QueryInt("page", 1), 1)
	ctx := c.UserContext()

	var (
		eg      errgroup.Group
		dealer  listing.Dealer
		cars    listing.Page[listing.Listing]
		carsErr error
	)
	eg.Go(func() error {
		var err error
		dealer, err = source.GetDealer(ctx, id)
		return err
	})
	eg.Go(func() error {
		cars, carsErr = source.ListDealerCars(ctx, id, page, size)
		return nil
	})
	if err := eg.Wait(); err != nil {
		hlog().Warn("get dealer failed", zap.String("id", id), zap.Error(err))
		return render(c, ui.DealerLoadError(id))
	}
	if carsErr != nil {
		hlog().Warn("list dealer cars failed", zap.String("id", id), zap.Int("page", page), zap.Error(carsErr))
		cars.Page = page
	}

	return render(c, ui.DealerPage(ui.DealerView{
		Dealer:   dealer,
		Cars:     cars,
		PageSize: size,
		CarsErr:  carsErr,
	}))
}
