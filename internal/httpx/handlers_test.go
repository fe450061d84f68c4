package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/chatbot"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/design"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/notify"
	"github.com/worksteamwear/storefront/internal/order"
	"github.com/worksteamwear/storefront/internal/shipping"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

//
// ---------- STUBS ----------
//

// stubCatalog implements catalog.Repository in memory.
type stubCatalog struct {
	products map[string]*catalog.Product
}

func (s *stubCatalog) Create(_ context.Context, p *catalog.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (s *stubCatalog) List(_ context.Context, _ catalog.Query) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubCatalog) Update(_ context.Context, p *catalog.Product, updatePrice bool) error {
	cur, ok := s.products[p.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	if p.Name != "" {
		cur.Name = p.Name
	}
	if updatePrice {
		cur.Price = p.Price
	}
	cur.Quantity = p.Quantity
	return nil
}

func (s *stubCatalog) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *stubCatalog) DecrementQuantity(_ context.Context, id string, qty int) error {
	if p, ok := s.products[id]; ok {
		p.Quantity -= qty
	}
	return nil
}

func (s *stubCatalog) Restock(_ context.Context, quantities map[string]int) error {
	for id, qty := range quantities {
		if p, ok := s.products[id]; ok {
			p.Quantity += qty
		}
	}
	return nil
}

// stubInventory implements inventory.Store over a quantity map.
type stubInventory struct {
	qty map[string]int
}

func (s *stubInventory) Get(_ context.Context, key string) (*inventory.Item, error) {
	q, ok := s.qty[key]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	return &inventory.Item{Name: key, Quantity: q}, nil
}

func (s *stubInventory) List(context.Context) ([]inventory.Item, error) {
	var out []inventory.Item
	for k, q := range s.qty {
		out = append(out, inventory.Item{Name: k, Quantity: q})
	}
	return out, nil
}

func (s *stubInventory) Create(_ context.Context, it *inventory.Item) error {
	s.qty[it.Name] = it.Quantity
	return nil
}

func (s *stubInventory) SetQuantity(context.Context, int64, int) error { return nil }
func (s *stubInventory) Delete(context.Context, int64) (bool, error)   { return true, nil }

func (s *stubInventory) DecrementAll(_ context.Context, needs []inventory.Need) (*inventory.Report, error) {
	rep := &inventory.Report{}
	for _, n := range needs {
		have, ok := s.qty[n.Key]
		if !ok {
			rep.Missing = append(rep.Missing, n.Key)
			continue
		}
		if have < n.Qty {
			rep.Shortages = append(rep.Shortages, inventory.Shortage{Key: n.Key, Required: n.Qty, Available: have})
		}
	}
	if len(rep.Shortages) > 0 {
		return rep, nil
	}
	for _, n := range needs {
		if _, ok := s.qty[n.Key]; ok {
			s.qty[n.Key] -= n.Qty
		}
	}
	rep.Applied = true
	return rep, nil
}

func (s *stubInventory) Restock(_ context.Context, key string, qty int) error {
	if _, ok := s.qty[key]; ok {
		s.qty[key] += qty
	}
	return nil
}

// stubOrders implements order.Store for a single order.
type stubOrders struct {
	order *order.Order
	items []order.Item
}

func (s *stubOrders) Create(_ context.Context, o *order.Order, items []order.Item) error {
	o.ID = 1
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	s.order = &cp
	s.items = append([]order.Item(nil), items...)
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id int64) (*order.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, order.ErrNotFound
	}
	cp := *s.order
	return &cp, nil
}

func (s *stubOrders) GetByRef(_ context.Context, ref string) (*order.Order, error) {
	if s.order == nil || s.order.Ref != ref {
		return nil, order.ErrNotFound
	}
	cp := *s.order
	return &cp, nil
}

func (s *stubOrders) Items(_ context.Context, orderID int64) ([]order.Item, error) {
	return append([]order.Item(nil), s.items...), nil
}

func (s *stubOrders) ListByStatus(_ context.Context, st order.Status) ([]order.Order, error) {
	if s.order != nil && s.order.Status == st {
		return []order.Order{*s.order}, nil
	}
	return nil, nil
}

func (s *stubOrders) ListByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	if s.order != nil && s.order.CustomerID == customerID {
		return []order.Order{*s.order}, nil
	}
	return nil, nil
}

func (s *stubOrders) ListActive(context.Context) ([]order.Order, error) {
	if s.order != nil && !s.order.Status.Terminal() {
		return []order.Order{*s.order}, nil
	}
	return nil, nil
}

func (s *stubOrders) CountByStatus(context.Context) (map[order.Status]int, error) {
	out := map[order.Status]int{}
	if s.order != nil {
		out[s.order.Status] = 1
	}
	return out, nil
}

func (s *stubOrders) SetStatus(_ context.Context, id int64, st order.Status, at time.Time) error {
	if s.order == nil || s.order.ID != id {
		return order.ErrNotFound
	}
	s.order.Status = st
	t := at
	s.order.StatusUpdatedAt = &t
	return nil
}

func (s *stubOrders) SetEstimatedDelivery(_ context.Context, id int64, est time.Time) error {
	if s.order == nil || s.order.ID != id {
		return order.ErrNotFound
	}
	t := est
	s.order.EstimatedDelivery = &t
	return nil
}

func (s *stubOrders) Delete(_ context.Context, id int64) (bool, error) {
	if s.order == nil || s.order.ID != id {
		return false, nil
	}
	s.order = nil
	return true, nil
}

type stubRates struct{}

func (stubRates) FindFee(context.Context, string, string, string, decimal.Decimal) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}
func (stubRates) List(context.Context) ([]shipping.Rate, error) { return nil, nil }
func (stubRates) Upsert(context.Context, *shipping.Rate) error  { return nil }

func testEngine(orders order.Store, stock inventory.Store, cat catalog.Repository) *order.Engine {
	settings := config.DefaultSettings()
	ship := shipping.NewService(stubRates{}, settings, zap.NewNop())
	return order.NewEngine(orders, stock, cat, ship, &notify.Recorder{}, settings, nil, zap.NewNop())
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

//
// ---------- TESTS ----------
//

func TestCreateProduct_HappyPath(t *testing.T) {
	t.Parallel()

	repo := &stubCatalog{products: map[string]*catalog.Product{}}
	r := gin.New()
	r.POST("/admin/products", createProductHandler(repo))

	body := `{"name":"Home Jersey","price":"899.00","quantity":10,"size":"M"}`
	w := doJSON(r, http.MethodPost, "/admin/products", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var p catalog.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ID == "" || p.Name != "Home Jersey" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if len(repo.products) != 1 {
		t.Fatalf("product was not persisted")
	}
}

func TestCreateProduct_BadSize(t *testing.T) {
	t.Parallel()

	repo := &stubCatalog{products: map[string]*catalog.Product{}}
	r := gin.New()
	r.POST("/admin/products", createProductHandler(repo))

	body := `{"name":"Home Jersey","price":"899.00","size":"XXL"}`
	w := doJSON(r, http.MethodPost, "/admin/products", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (expected 400)", w.Code, w.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCatalog{products: map[string]*catalog.Product{}}
	r := gin.New()
	r.GET("/products/:id", getProductHandler(repo))

	w := doJSON(r, http.MethodGet, "/products/ghost", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (expected 404)", w.Code, w.Body.String())
	}
}

func TestProductSizes(t *testing.T) {
	t.Parallel()

	repo := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Home Jersey", Price: "899.00", Quantity: 4, Size: "M"},
	}}
	stock := &stubInventory{qty: map[string]int{
		"Home Jersey - S": 7,
		"Home Jersey - L": 2,
	}}
	r := gin.New()
	r.GET("/products/:id/sizes", productSizesHandler(repo, stock))

	w := doJSON(r, http.MethodGet, "/products/p1/sizes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Sizes map[string]int `json:"sizes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Sizes["S"] != 7 || resp.Sizes["L"] != 2 {
		t.Fatalf("ledger sizes wrong: %+v", resp.Sizes)
	}
	if resp.Sizes["M"] != 4 {
		t.Fatalf("base size should fall back to catalog quantity, got %d", resp.Sizes["M"])
	}
	if resp.Sizes["XS"] != 0 || resp.Sizes["XL"] != 0 {
		t.Fatalf("untracked sizes should be zero: %+v", resp.Sizes)
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	t.Parallel()

	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Home Jersey", Price: "100.00", Quantity: 5, Size: "M"},
	}}
	stock := &stubInventory{qty: map[string]int{"Home Jersey - M": 5}}
	orders := &stubOrders{}
	engine := testEngine(orders, stock, cat)

	r := gin.New()
	r.POST("/checkout", checkoutHandler(engine, nil, config.DefaultSettings()))

	body := `{"customer_id":"cust-1","region":"NCR","payment_method":"cod",
	          "items":[{"product_id":"p1","quantity":2,"size":"M"}]}`
	w := doJSON(r, http.MethodPost, "/checkout", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if orders.order == nil || len(orders.items) != 1 {
		t.Fatalf("order was not persisted")
	}
	if orders.order.Status != order.StatusPending {
		t.Fatalf("status=%s, expected Pending", orders.order.Status)
	}
	if stock.qty["Home Jersey - M"] != 3 {
		t.Fatalf("stock=%d, expected 3", stock.qty["Home Jersey - M"])
	}

	var resp struct {
		Totals order.VATBreakdown `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// 200.00 inclusive of 12% VAT -> 21.43 tax
	if !resp.Totals.VATAmount.Equal(decimal.RequireFromString("21.43")) {
		t.Fatalf("vat=%s, expected 21.43", resp.Totals.VATAmount)
	}
}

func TestUpdateOrderStatus_DeliveredInsufficientStock(t *testing.T) {
	t.Parallel()

	cat := &stubCatalog{products: map[string]*catalog.Product{}}
	stock := &stubInventory{qty: map[string]int{"Home Jersey - M": 1}}
	orders := &stubOrders{
		order: &order.Order{ID: 1, Ref: "REFREFREF123", CustomerID: "cust-1", Status: order.StatusOutForDelivery},
		items: []order.Item{{ID: 1, OrderID: 1, ProductID: "p1", ProductName: "Home Jersey",
			Quantity: 2, Price: decimal.RequireFromString("100.00"), Size: "M"}},
	}
	engine := testEngine(orders, stock, cat)

	r := gin.New()
	r.PUT("/admin/orders/:id/status", adminUpdateStatusHandler(engine))

	w := doJSON(r, http.MethodPut, "/admin/orders/1/status", `{"status":"Delivered"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (expected 409)", w.Code, w.Body.String())
	}
	if orders.order.Status != order.StatusOutForDelivery {
		t.Fatalf("status changed despite shortage: %s", orders.order.Status)
	}
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{
		order: &order.Order{ID: 1, Ref: "REFREFREF123", Status: order.StatusDelivered},
	}
	engine := testEngine(orders, &stubInventory{qty: map[string]int{}}, &stubCatalog{products: map[string]*catalog.Product{}})

	r := gin.New()
	r.PUT("/admin/orders/:id/status", adminUpdateStatusHandler(engine))

	w := doJSON(r, http.MethodPut, "/admin/orders/1/status", `{"status":"Processing"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s (expected 422)", w.Code, w.Body.String())
	}
}

func TestCancelOrder_RestoresProductStock(t *testing.T) {
	t.Parallel()

	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Home Jersey", Price: "100.00", Quantity: 3, Size: "M"},
	}}
	orders := &stubOrders{
		order: &order.Order{ID: 1, Ref: "REFREFREF123", CustomerID: "cust-1", Status: order.StatusPending},
		items: []order.Item{{ID: 1, OrderID: 1, ProductID: "p1", ProductName: "Home Jersey",
			Quantity: 2, Price: decimal.RequireFromString("100.00"), Size: "M"}},
	}
	engine := testEngine(orders, &stubInventory{qty: map[string]int{}}, cat)

	r := gin.New()
	r.POST("/orders/:ref/cancel", cancelOrderHandler(engine, orders))

	w := doJSON(r, http.MethodPost, "/orders/REFREFREF123/cancel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cat.products["p1"].Quantity != 5 {
		t.Fatalf("restock failed: quantity=%d, expected 5", cat.products["p1"].Quantity)
	}
	if orders.order.Status != order.StatusCancelled {
		t.Fatalf("status=%s, expected Cancelled", orders.order.Status)
	}
}

func TestShippingQuote(t *testing.T) {
	t.Parallel()

	svc := shipping.NewService(stubRates{}, config.DefaultSettings(), zap.NewNop())
	r := gin.New()
	r.GET("/shipping/quote", quoteFeeHandler(svc))

	w := doJSON(r, http.MethodGet, "/shipping/quote?destination=R4A&weight_kg=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Destination string `json:"destination"`
		Fee         string `json:"fee"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Destination != "Region IV-A" {
		t.Fatalf("destination=%q, expected canonical Region IV-A", resp.Destination)
	}
	fee := decimal.RequireFromString(resp.Fee)
	if !fee.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("fee=%q, expected default 50.00", resp.Fee)
	}

	w = doJSON(r, http.MethodGet, "/shipping/quote", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d (expected 400 without destination)", w.Code)
	}
}

func TestDesignGenerate(t *testing.T) {
	t.Parallel()

	gen, err := design.NewGenerator()
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	r := gin.New()
	r.POST("/design/generate", generateDesignHandler(gen))

	w := doJSON(r, http.MethodPost, "/design/generate", `{"prompt":"fire basketball jersey"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var d design.Design
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if d.Theme != "fire" || d.Sport != "basketball" {
		t.Fatalf("unexpected design: %+v", d)
	}

	w = doJSON(r, http.MethodPost, "/design/generate", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d (expected 400 without prompt)", w.Code)
	}
}

// memChat implements chatbot.SessionStore in memory.
type memChat struct {
	sessions map[string]*chatbot.Session
	messages []chatbot.Message
}

func (m *memChat) CreateSession(_ context.Context, customerID string) (*chatbot.Session, error) {
	s := &chatbot.Session{ID: fmt.Sprintf("sess-%d", len(m.sessions)+1), CustomerID: customerID, Status: chatbot.SessionBot}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memChat) GetSession(_ context.Context, id string) (*chatbot.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, chatbot.ErrSessionNotFound
	}
	return s, nil
}

func (m *memChat) SetSessionStatus(_ context.Context, id string, st chatbot.SessionStatus) error {
	s, ok := m.sessions[id]
	if !ok {
		return chatbot.ErrSessionNotFound
	}
	s.Status = st
	return nil
}

func (m *memChat) ListWaiting(context.Context) ([]chatbot.Session, error) {
	var out []chatbot.Session
	for _, s := range m.sessions {
		if s.Status == chatbot.SessionRequested {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memChat) AppendMessage(_ context.Context, msg *chatbot.Message) error {
	msg.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memChat) Messages(_ context.Context, sessionID string) ([]chatbot.Message, error) {
	var out []chatbot.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func TestChat_HandoverFlow(t *testing.T) {
	t.Parallel()

	bot, err := chatbot.New()
	if err != nil {
		t.Fatalf("bot: %v", err)
	}
	store := &memChat{sessions: map[string]*chatbot.Session{}}
	svc := chatbot.NewService(bot, store)

	r := gin.New()
	r.POST("/chat/sessions", startChatHandler(svc))
	r.POST("/chat/sessions/:session_id/messages", chatMessageHandler(svc))

	w := doJSON(r, http.MethodPost, "/chat/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Session chatbot.Session `json:"session"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	w = doJSON(r, http.MethodPost, "/chat/sessions/"+created.Session.ID+"/messages",
		`{"message":"let me talk to a real person"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var reply chatbot.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !reply.Handover {
		t.Fatalf("expected handover reply, got %+v", reply)
	}
	if store.sessions[created.Session.ID].Status != chatbot.SessionRequested {
		t.Fatalf("session not queued for staff: %s", store.sessions[created.Session.ID].Status)
	}
}
