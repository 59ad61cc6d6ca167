// Package catalog serves listings and dealers from the local sqlite database.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/pagination"
)

// Schema creates the catalog tables. Car.dealer_id is a plain reference:
// removing a dealer leaves its cars in place.
const Schema = `
CREATE TABLE IF NOT EXISTS Dealer (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	location        TEXT NOT NULL DEFAULT '',
	whatsapp_number TEXT NOT NULL DEFAULT '',
	profile_image   TEXT NOT NULL DEFAULT '',
	verified        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS Car (
	id           TEXT PRIMARY KEY,
	make         TEXT NOT NULL,
	model        TEXT NOT NULL,
	year         INTEGER NOT NULL DEFAULT 0,
	price        INTEGER NOT NULL CHECK (price >= 0),
	mileage      INTEGER NOT NULL DEFAULT 0,
	transmission TEXT NOT NULL DEFAULT '',
	fuel_type    TEXT NOT NULL DEFAULT '',
	engine_size  TEXT NOT NULL DEFAULT '',
	body_type    TEXT NOT NULL DEFAULT '',
	condition    TEXT NOT NULL DEFAULT '',
	color        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	images       TEXT NOT NULL DEFAULT '[]',
	features     TEXT NOT NULL DEFAULT '[]',
	status       TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'sold')),
	dealer_id    TEXT NOT NULL DEFAULT '',
	position     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_car_dealer ON Car(dealer_id);
`

const carColumns = `c.id, c.make, c.model, c.year, c.price, c.mileage, c.transmission,
	c.fuel_type, c.engine_size, c.body_type, c.condition, c.color, c.description,
	c.image_url, c.images, c.features, c.status, c.dealer_id,
	d.id, d.name, d.location, d.whatsapp_number, d.profile_image, d.verified`

const carFrom = `FROM Car c LEFT JOIN Dealer d ON d.id = c.dealer_id`

const dealerColumns = `id, name, location, whatsapp_number, profile_image, verified`

type Catalog struct {
	db *sql.DB
}

func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// FindCars filters the whole inventory in process, then cuts out the page.
func (c *Catalog) FindCars(ctx context.Context, criteria filter.Criteria, page, pageSize int) (listing.Page[listing.Listing], error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+carColumns+` `+carFrom+` ORDER BY c.position, c.id`)
	if err != nil {
		return emptyCars(), fmt.Errorf("query cars: %w", err)
	}
	all, err := scanCars(rows)
	if err != nil {
		return emptyCars(), err
	}

	matched := filter.Apply(all, criteria)
	return pageOf(matched, page, pageSize), nil
}

func (c *Catalog) GetCar(ctx context.Context, id string) (listing.Listing, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+carColumns+` `+carFrom+` WHERE c.id = ?`, id)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("query car %s: %w", id, err)
	}
	cars, err := scanCars(rows)
	if err != nil {
		return listing.Listing{}, err
	}
	if len(cars) == 0 {
		return listing.Listing{}, fmt.Errorf("car %s: %w", id, sql.ErrNoRows)
	}
	return cars[0], nil
}

func (c *Catalog) ListDealers(ctx context.Context, page, pageSize int) (listing.Page[listing.Dealer], error) {
	var total int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Dealer`).Scan(&total); err != nil {
		return listing.Page[listing.Dealer]{Items: []listing.Dealer{}}, fmt.Errorf("count dealers: %w", err)
	}

	out := listing.Page[listing.Dealer]{Total: total, TotalPages: pagination.TotalPages(total, pageSize)}
	out.Page = pagination.Clamp(page, out.TotalPages)
	from, to := pagination.Bounds(out.Page, pageSize, total)

	rows, err := c.db.QueryContext(ctx,
		`SELECT `+dealerColumns+` FROM Dealer ORDER BY name LIMIT ? OFFSET ?`, to-from, from)
	if err != nil {
		return listing.Page[listing.Dealer]{Items: []listing.Dealer{}}, fmt.Errorf("query dealers: %w", err)
	}
	defer rows.Close()

	out.Items = []listing.Dealer{}
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return listing.Page[listing.Dealer]{Items: []listing.Dealer{}}, err
		}
		out.Items = append(out.Items, d)
	}
	if err := rows.Err(); err != nil {
		return listing.Page[listing.Dealer]{Items: []listing.Dealer{}}, err
	}
	return out, nil
}

func (c *Catalog) GetDealer(ctx context.Context, id string) (listing.Dealer, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+dealerColumns+` FROM Dealer WHERE id = ?`, id)
	d, err := scanDealer(row)
	if err != nil {
		return listing.Dealer{}, fmt.Errorf("dealer %s: %w", id, err)
	}
	return d, nil
}

func (c *Catalog) ListDealerCars(ctx context.Context, id string, page, pageSize int) (listing.Page[listing.Listing], error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+carColumns+` `+carFrom+` WHERE c.dealer_id = ? ORDER BY c.position, c.id`, id)
	if err != nil {
		return emptyCars(), fmt.Errorf("query cars for dealer %s: %w", id, err)
	}
	cars, err := scanCars(rows)
	if err != nil {
		return emptyCars(), err
	}
	return pageOf(cars, page, pageSize), nil
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func emptyCars() listing.Page[listing.Listing] {
	return listing.Page[listing.Listing]{Items: []listing.Listing{}}
}

func pageOf(all []listing.Listing, page, pageSize int) listing.Page[listing.Listing] {
	out := listing.Page[listing.Listing]{Total: len(all), TotalPages: pagination.TotalPages(len(all), pageSize)}
	out.Page = pagination.Clamp(page, out.TotalPages)
	from, to := pagination.Bounds(out.Page, pageSize, out.Total)
	out.Items = append([]listing.Listing{}, all[from:to]...)
	return out
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDealer(s scanner) (listing.Dealer, error) {
	var d listing.Dealer
	err := s.Scan(&d.ID, &d.Name, &d.Location, &d.WhatsAppNumber, &d.ProfileImage, &d.Verified)
	return d, err
}

func scanCars(rows *sql.Rows) ([]listing.Listing, error) {
	defer rows.Close()

	var cars []listing.Listing
	for rows.Next() {
		var (
			l                listing.Listing
			images, features string
			status           string
			dID, dName       sql.NullString
			dLoc, dPhone     sql.NullString
			dImage           sql.NullString
			dVerified        sql.NullBool
		)
		err := rows.Scan(&l.ID, &l.Make, &l.Model, &l.Year, &l.Price, &l.Mileage, &l.Transmission,
			&l.FuelType, &l.EngineSize, &l.BodyType, &l.Condition, &l.Color, &l.Description,
			&l.ImageURL, &images, &features, &status, &l.DealerID,
			&dID, &dName, &dLoc, &dPhone, &dImage, &dVerified)
		if err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		if l.Status, err = listing.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("car %s: %w", l.ID, err)
		}
		if err := decodeList(images, &l.Images); err != nil {
			return nil, fmt.Errorf("car %s images: %w", l.ID, err)
		}
		if err := decodeList(features, &l.Features); err != nil {
			return nil, fmt.Errorf("car %s features: %w", l.ID, err)
		}
		if dID.Valid {
			l.Dealer = &listing.Dealer{
				ID:             dID.String,
				Name:           dName.String,
				Location:       dLoc.String,
				WhatsAppNumber: dPhone.String,
				ProfileImage:   dImage.String,
				Verified:       dVerified.Bool,
			}
		}
		cars = append(cars, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars: %w", err)
	}
	return cars, nil
}

func decodeList(raw string, dst *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// Seed replaces the catalog contents with dealers and cars in one transaction.
func (c *Catalog) Seed(ctx context.Context, dealers []listing.Dealer, cars []listing.Listing) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM Car`); err != nil {
		return fmt.Errorf("clear cars: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM Dealer`); err != nil {
		return fmt.Errorf("clear dealers: %w", err)
	}

	for _, d := range dealers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Dealer (`+dealerColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Location, d.WhatsAppNumber, d.ProfileImage, d.Verified)
		if err != nil {
			return fmt.Errorf("insert dealer %s: %w", d.ID, err)
		}
	}

	for i, l := range cars {
		if err := l.Validate(); err != nil {
			return err
		}
		status, _ := listing.ParseStatus(string(l.Status))
		_, err := tx.ExecContext(ctx, `INSERT INTO Car (id, make, model, year, price, mileage,
			transmission, fuel_type, engine_size, body_type, condition, color, description,
			image_url, images, features, status, dealer_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Make, l.Model, l.Year, l.Price, l.Mileage,
			l.Transmission, l.FuelType, l.EngineSize, l.BodyType, l.Condition, l.Color, l.Description,
			l.ImageURL, encodeList(l.Images), encodeList(l.Features), string(status), l.DealerID, i)
		if err != nil {
			return fmt.Errorf("insert car %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteDealer removes a dealer. Its cars stay listed without dealer details.
func (c *Catalog) DeleteDealer(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM Dealer WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dealer %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("dealer %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
