package handlers

import (
	"encoding/xml"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carsawa/site/config"
	"github.com/carsawa/site/filter"
)

// sitemapLimit caps how many cars and dealers are listed.
const sitemapLimit = 1000

type SitemapURL struct {
	Loc        string    `xml:"loc"`
	LastMod    time.Time `xml:"lastmod"`
	ChangeFreq string    `xml:"changefreq"`
	Priority   string    `xml:"priority"`
}

type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

func HandleSitemap(c *fiber.Ctx) error {
	baseURL := config.SiteURL
	now := time.Now()
	entry := func(path, freq, priority string) SitemapURL {
		return SitemapURL{Loc: baseURL + path, LastMod: now, ChangeFreq: freq, Priority: priority}
	}

	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			entry("/", "daily", "1.0"),
			entry("/cars", "daily", "0.9"),
			entry("/used-cars", "daily", "0.9"),
			entry("/dealers", "weekly", "0.7"),
		},
	}

	ctx := c.UserContext()
	cars, err := source.FindCars(ctx, filter.Criteria{}, 1, sitemapLimit)
	if err != nil {
		hlog().Warn("sitemap cars failed", zap.Error(err))
	}
	for _, car := range cars.Items {
		sitemap.URLs = append(sitemap.URLs, entry("/cars/"+url.PathEscape(car.ID), "weekly", "0.8"))
	}

	dealers, err := source.ListDealers(ctx, 1, sitemapLimit)
	if err != nil {
		hlog().Warn("sitemap dealers failed", zap.Error(err))
	}
	for _, d := range dealers.Items {
		sitemap.URLs = append(sitemap.URLs, entry("/dealers/"+url.PathEscape(d.ID), "weekly", "0.6"))
	}

	c.Set("Content-Type", "application/xml")
	return c.XML(sitemap)
}
