package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carsawa/site/browse"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/logger"
)

// Source is where listings and dealers come from. The remote API client and
// the local catalog both satisfy it.
type Source interface {
	FindCars(ctx context.Context, criteria filter.Criteria, page, pageSize int) (listing.Page[listing.Listing], error)
	GetCar(ctx context.Context, id string) (listing.Listing, error)
	ListDealers(ctx context.Context, page, pageSize int) (listing.Page[listing.Dealer], error)
	GetDealer(ctx context.Context, id string) (listing.Dealer, error)
	ListDealerCars(ctx context.Context, id string, page, pageSize int) (listing.Page[listing.Listing], error)
	Ping(ctx context.Context) error
}

var (
	source   Source
	sessions *browse.Store
)

// Init wires the handlers to their data source and session store. It must be
// called before the routes are served.
func Init(src Source, store *browse.Store) {
	source = src
	sessions = store
}

func hlog() *zap.Logger {
	return logger.Named("handlers")
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// sizeOr returns n, or def when n has not been configured.
func sizeOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
