package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/unishop/pkg/model"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	s.mu.Lock()
	items := append([]model.CartItem(nil), s.carts[user.ID]...)
	s.mu.Unlock()

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, CartItems: items})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req model.CartMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidation, "invalid JSON body: "+err.Error())
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, model.CodeValidation, "quantity must be positive")
		return
	}

	product := s.findProduct(req.ProductID)
	if product == nil {
		writeError(w, http.StatusNotFound, model.CodeNotFound, "product "+req.ProductID+" not found")
		return
	}

	s.mu.Lock()
	cart := s.carts[user.ID]
	merged := false
	for i := range cart {
		if cart[i].ProductID == req.ProductID {
			cart[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, product.ToCartItem(req.Quantity))
	}
	s.carts[user.ID] = cart
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	s.mu.Lock()
	cart := s.carts[user.ID]
	for i := range cart {
		if cart[i].ProductID == productID {
			s.carts[user.ID] = append(cart[:i], cart[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true})
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req model.CartMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidation, "invalid JSON body: "+err.Error())
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, model.CodeValidation, "quantity must be >= 0")
		return
	}

	s.mu.Lock()
	cart := s.carts[user.ID]
	for i := range cart {
		if cart[i].ProductID == req.ProductID {
			if req.Quantity == 0 {
				s.carts[user.ID] = append(cart[:i], cart[i+1:]...)
			} else {
				cart[i].Quantity = req.Quantity
			}
			break
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	s.mu.Lock()
	delete(s.carts, user.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true})
}
