package server

import (
	"net/http"

	"github.com/me/unishop/pkg/model"
)

// defaultCatalog is the canned product list served by the stub.
func defaultCatalog() []model.Product {
	return []model.Product{
		{ID: "p_notebook", Name: "Spiral Notebook A5", Price: 3.50, OriginalPrice: 4.20, CategoryName: "stationery"},
		{ID: "p_backpack", Name: "Campus Backpack 25L", Price: 34.90, OriginalPrice: 49.90, CategoryName: "bags"},
		{ID: "p_usb", Name: "USB-C Flash Drive 64GB", Price: 11.99, CategoryName: "electronics"},
		{ID: "p_bottle", Name: "Insulated Water Bottle", Price: 14.50, OriginalPrice: 18.00, CategoryName: "lifestyle"},
		{ID: "p_hoodie", Name: "University Hoodie", Price: 27.00, CategoryName: "apparel"},
		{ID: "p_lamp", Name: "Clip-on Desk Lamp", Price: 9.80, CategoryName: "dorm"},
	}
}

func (s *Server) findProduct(id string) *model.Product {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i]
		}
	}
	return nil
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": s.catalog,
	})
}
