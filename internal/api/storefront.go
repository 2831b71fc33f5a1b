package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/khayr-gifts/khayr/internal/app/router"
	"github.com/khayr-gifts/khayr/internal/app/session"
	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
)

// ─── Catalog Handlers ───────────────────────────────────────────────────────

// handleCatalogList returns the held product set, optionally filtered.
// GET /api/catalog?category=home&featured=true
func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.ByCategory(r.URL.Query().Get("category"))
	if r.URL.Query().Get("featured") == "true" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.Featured {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": products})
}

// handleCatalogGet returns one product.
// GET /api/catalog/{id}
func (s *Server) handleCatalogGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}
	p, err := s.catalog.FindByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCatalogRefresh re-fetches the product set from the content API.
// A failed fetch leaves an empty catalog and reports the count as 0 —
// the storefront renders empty rather than erroring.
// POST /api/catalog/refresh
func (s *Server) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	_ = s.catalog.Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": s.catalog.Len()})
}

// ─── Session Handlers ───────────────────────────────────────────────────────

// handleSessionCreate opens a new storefront session.
// POST /api/sessions {"path": "/products"}
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body) // empty body is fine
	}

	sess := s.sessions.Create(body.Path)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   sess.ID,
		"view": sess.Router.Model(),
	})
}

// handleSessionClose ends a session.
// DELETE /api/sessions/{sid}
func (s *Server) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.sessions.Close(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleView returns the latest rendered view-model.
// GET /api/sessions/{sid}/view
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Router.Model())
}

// handleNavigate performs a navigation by path or by view name.
// POST /api/sessions/{sid}/navigate {"path":"/products.html"}
// POST /api/sessions/{sid}/navigate {"view":"product-detail","product_id":7}
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Path      string      `json:"path"`
		View      domain.View `json:"view"`
		ProductID int         `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid navigation body")
		return
	}

	var state domain.ViewState
	switch {
	case body.Path != "":
		state = router.Resolve(body.Path)
	case body.View.Valid():
		state = domain.ViewState{View: body.View}
		if body.View == domain.ViewProductDetail {
			state.ProductID = body.ProductID
		}
	default:
		state = domain.Home()
	}

	if err := sess.Router.Navigate(state); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Router.Model())
}

// handleBack replays a history pop backward.
// POST /api/sessions/{sid}/back
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.History.Back()
	writeJSON(w, http.StatusOK, sess.Router.Model())
}

// handleForward replays a history pop forward.
// POST /api/sessions/{sid}/forward
func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.History.Forward()
	writeJSON(w, http.StatusOK, sess.Router.Model())
}

// handleEvent dispatches one declarative event binding.
// POST /api/sessions/{sid}/events {"action":"add-to-cart","product_id":101,"quantity":2}
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var binding view.Binding
	if err := json.NewDecoder(r.Body).Decode(&binding); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	if err := sess.Dispatcher.Dispatch(binding); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Router.Model())
}

// ─── Cart Handlers ──────────────────────────────────────────────────────────

// cartResponse is the cart REST shape.
func cartResponse(sess *session.Session) map[string]interface{} {
	return map[string]interface{}{
		"items":       sess.Cart.Items(),
		"item_count":  sess.Cart.TotalItemCount(),
		"total_price": sess.Cart.TotalPrice(),
		"empty":       sess.Cart.IsEmpty(),
	}
}

// handleCartGet returns the cart contents and totals.
// GET /api/sessions/{sid}/cart
func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(sess))
}

// handleCartAdd adds a product to the cart.
// POST /api/sessions/{sid}/cart/items {"product_id":101,"quantity":2}
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart body")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	if err := sess.Cart.Add(body.ProductID, body.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	sess.Router.Refresh()
	writeJSON(w, http.StatusOK, cartResponse(sess))
}

// handleCartSetQuantity sets a line quantity; 0 removes the line.
// PUT /api/sessions/{sid}/cart/items/{productID} {"quantity":3}
func (s *Server) handleCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart body")
		return
	}

	if err := sess.Cart.SetQuantity(productID, body.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	sess.Router.Refresh()
	writeJSON(w, http.StatusOK, cartResponse(sess))
}

// handleCartRemove deletes a cart line.
// DELETE /api/sessions/{sid}/cart/items/{productID}
func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	if err := sess.Cart.Remove(productID); err != nil {
		writeDomainError(w, err)
		return
	}
	sess.Router.Refresh()
	writeJSON(w, http.StatusOK, cartResponse(sess))
}

// session resolves the {sid} URL parameter, writing a 404 on a miss.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return sess, true
}
