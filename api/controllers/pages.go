package controllers

import (
	"net/http"

	"github.com/agrovia/agroexport-web/internal/products"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/agrovia/agroexport-web/web"
)

// productCategories is the fixed navigation taxonomy. The catalog itself is
// upstream data; these only seed the filter and the home page sections.
var productCategories = []string{"fruits", "vegetables", "grains", "spices"}

const featuredLimit = 6

type galleryImage struct {
	URL     string
	Caption string
}

type certification struct {
	Name        string
	Description string
}

var galleryImages = []galleryImage{
	{URL: "/static/img/orchard.svg", Caption: "Mango orchards at first light"},
	{URL: "/static/img/packing.svg", Caption: "Grading and packing line, Kochi facility"},
	{URL: "/static/img/reefer.svg", Caption: "Reefer loading for the Gulf route"},
	{URL: "/static/img/spices.svg", Caption: "Sun-dried chillies ready for sorting"},
}

var certifications = []certification{
	{Name: "APEDA RCMC", Description: "Registered exporter with the Agricultural and Processed Food Products Export Development Authority."},
	{Name: "FSSAI", Description: "Licensed under the Food Safety and Standards Authority of India."},
	{Name: "GlobalG.A.P.", Description: "Partner farms certified for good agricultural practices."},
	{Name: "ISO 22000", Description: "Food safety management certified packing facilities."},
	{Name: "Phytosanitary", Description: "Every shipment leaves with a plant health certificate from the NPPO."},
}

// Home renders the landing page with a slice of the live catalog. A catalog
// outage degrades to the static page rather than erroring.
func Home(renderer *web.Renderer, catalog products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var featured []upstream.Product
		if catalog != nil {
			listed, err := catalog.Catalog(r.Context(), "")
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "home.catalog.unavailable")
				}
			} else {
				if len(listed) > featuredLimit {
					listed = listed[:featuredLimit]
				}
				featured = listed
			}
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "home", map[string]any{
			"Categories": productCategories,
			"Products":   featured,
		})
	}
}

func About(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "about", nil)
	}
}

func Services(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "services", nil)
	}
}

func Gallery(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "gallery", map[string]any{
			"Images": galleryImages,
		})
	}
}

func Certifications(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "certifications", map[string]any{
			"Certifications": certifications,
		})
	}
}

// ProductCatalog renders the public product listing with the optional
// category filter.
func ProductCatalog(renderer *web.Renderer, catalog products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		data := map[string]any{
			"Categories": productCategories,
			"Selected":   category,
		}

		listed, err := catalog.Catalog(r.Context(), category)
		if err != nil {
			data["Error"] = publicMessage(err)
			renderPage(w, r, renderer, logg, http.StatusOK, "products", data)
			return
		}

		data["Products"] = listed
		renderPage(w, r, renderer, logg, http.StatusOK, "products", data)
	}
}
