package checkoutControllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartControllers "github.com/knirb/bikeshop-api/controllers/cart"
	"github.com/knirb/bikeshop-api/models"
	"github.com/knirb/bikeshop-api/store"
)

// fakeCatalog implements ProductFinder over a fixed product set.
type fakeCatalog struct {
	products map[string]models.Product
	err      error
}

func (f *fakeCatalog) FindByID(id string) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, store.ErrProductNotFound
	}
	return p, nil
}

// fakeOrders records created orders, or fails every create.
type fakeOrders struct {
	created []*models.Order
	err     error
}

func (f *fakeOrders) Create(order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = uint(len(f.created) + 1)
	f.created = append(f.created, order)
	return nil
}

// fakeNotifier counts confirmations, or fails every send.
type fakeNotifier struct {
	sent []*models.Order
	err  error
}

func (f *fakeNotifier) SendConfirmation(order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, order)
	return nil
}

func freshCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]models.Product{
		"1": {ID: 1, Name: "Road Racer 500", Price: 899},
		"2": {ID: 2, Name: "City Cruiser", Price: 449},
	}}
}

// staleCart holds snapshots that deliberately disagree with the catalog, so
// the tests can prove checkout attaches catalog records, not snapshots.
func staleCart() models.Cart {
	return models.Cart{
		"1": {ProductID: 1, Name: "Road Racer 500 (old listing)", Price: 10},
		"2": {ProductID: 2, Name: "City Cruiser (old listing)", Price: 15},
	}
}

// -------- PlaceOrder --------

func TestPlaceOrderResolvesProductsFromCatalog(t *testing.T) {
	catalog := freshCatalog()
	orders := &fakeOrders{}
	form := OrderForm{Name: "Viktor", Email: "viktor@example.se", Address: "Cykelgatan 1"}

	order, err := PlaceOrder(catalog, orders, staleCart(), form)
	require.NoError(t, err)

	require.Len(t, orders.created, 1)
	require.Len(t, order.Products, 2)

	names := []string{order.Products[0].Name, order.Products[1].Name}
	assert.ElementsMatch(t, []string{"Road Racer 500", "City Cruiser"}, names,
		"order must reference catalog records, never session snapshots")
	assert.Equal(t, "Viktor", order.Name)
	assert.Equal(t, "viktor@example.se", order.Email)
	assert.NotEmpty(t, order.OrderRef)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orders := &fakeOrders{}

	order, err := PlaceOrder(freshCatalog(), orders, models.Cart{}, OrderForm{
		Name: "Viktor", Email: "viktor@example.se", Address: "Cykelgatan 1",
	})
	require.NoError(t, err, "an empty cart may still check out")
	assert.Empty(t, order.Products)
	assert.Len(t, orders.created, 1)
}

func TestPlaceOrderUnknownCartProduct(t *testing.T) {
	orders := &fakeOrders{}
	cart := models.Cart{"99": {ProductID: 99, Name: "Ghost bike", Price: 1}}

	_, err := PlaceOrder(freshCatalog(), orders, cart, OrderForm{
		Name: "Viktor", Email: "viktor@example.se", Address: "Cykelgatan 1",
	})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.Empty(t, orders.created, "nothing may be persisted when a lookup fails")
}

func TestPlaceOrderStorageFailure(t *testing.T) {
	orders := &fakeOrders{err: errors.New("connection refused")}

	_, err := PlaceOrder(freshCatalog(), orders, staleCart(), OrderForm{
		Name: "Viktor", Email: "viktor@example.se", Address: "Cykelgatan 1",
	})
	assert.Error(t, err)
	assert.Empty(t, orders.created)
}

// -------- Handlers --------

func newCheckoutRouter(catalog ProductFinder, orders OrderCreator, notifier *fakeNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("bikeshop_session", cookie.NewStore([]byte("test-secret"))))
	r.LoadHTMLGlob("../../templates/*.html")

	r.POST("/seed", func(c *gin.Context) {
		if err := cartControllers.SaveCart(sessions.Default(c), staleCart()); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/cartsize", func(c *gin.Context) {
		cart := cartControllers.LoadCart(sessions.Default(c))
		c.String(http.StatusOK, "%d", len(cart))
	})
	r.GET("/checkout", ShowCheckout())
	r.POST("/checkout", SubmitOrder(catalog, orders, notifier))
	return r
}

func doRequest(r http.Handler, method, path string, form url.Values, cookies []string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCart(t *testing.T, r http.Handler) []string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/seed", url.Values{}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Header.Values("Set-Cookie")
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Viktor"},
		"email":   {"viktor@example.se"},
		"address": {"Cykelgatan 1, Stockholm"},
	}
}

func TestShowCheckoutDisplaysTotal(t *testing.T) {
	r := newCheckoutRouter(freshCatalog(), &fakeOrders{}, &fakeNotifier{})
	cookies := seedCart(t, r)

	w := doRequest(r, http.MethodGet, "/checkout", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total: 25.00")
}

func TestSubmitOrderSuccess(t *testing.T) {
	orders := &fakeOrders{}
	notifier := &fakeNotifier{}
	r := newCheckoutRouter(freshCatalog(), orders, notifier)
	cookies := seedCart(t, r)

	w := doRequest(r, http.MethodPost, "/checkout", validForm(), cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your order")

	require.Len(t, orders.created, 1)
	require.Len(t, notifier.sent, 1, "exactly one confirmation per order")
	assert.Same(t, orders.created[0], notifier.sent[0])

	// The submit response re-saved the session with an empty cart.
	after := doRequest(r, http.MethodGet, "/cartsize", nil, w.Result().Header.Values("Set-Cookie"))
	assert.Equal(t, "0", after.Body.String())
}

func TestSubmitOrderInvalidEmail(t *testing.T) {
	orders := &fakeOrders{}
	notifier := &fakeNotifier{}
	r := newCheckoutRouter(freshCatalog(), orders, notifier)
	cookies := seedCart(t, r)

	form := validForm()
	form.Set("email", "not-an-email")

	w := doRequest(r, http.MethodPost, "/checkout", form, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email address")
	assert.Contains(t, w.Body.String(), "not-an-email", "entered values are echoed back")
	assert.Contains(t, w.Body.String(), "Viktor", "valid fields keep their values")

	assert.Empty(t, orders.created)
	assert.Empty(t, notifier.sent)

	// Cart untouched.
	after := doRequest(r, http.MethodGet, "/cartsize", nil, cookies)
	assert.Equal(t, "2", after.Body.String())
}

func TestSubmitOrderMissingFields(t *testing.T) {
	orders := &fakeOrders{}
	r := newCheckoutRouter(freshCatalog(), orders, &fakeNotifier{})
	cookies := seedCart(t, r)

	w := doRequest(r, http.MethodPost, "/checkout", url.Values{}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your name")
	assert.Contains(t, w.Body.String(), "Please enter your email address")
	assert.Contains(t, w.Body.String(), "Please enter your shipping address")
	assert.Empty(t, orders.created)
}

func TestSubmitOrderStorageFailureKeepsCart(t *testing.T) {
	orders := &fakeOrders{err: errors.New("insert failed")}
	notifier := &fakeNotifier{}
	r := newCheckoutRouter(freshCatalog(), orders, notifier)
	cookies := seedCart(t, r)

	w := doRequest(r, http.MethodPost, "/checkout", validForm(), cookies)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, notifier.sent)

	// No order exists and the cart survives for a retry.
	after := doRequest(r, http.MethodGet, "/cartsize", nil, cookies)
	assert.Equal(t, "2", after.Body.String())
}

func TestSubmitOrderNotificationFailureKeepsOrder(t *testing.T) {
	orders := &fakeOrders{}
	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}
	r := newCheckoutRouter(freshCatalog(), orders, notifier)
	cookies := seedCart(t, r)

	w := doRequest(r, http.MethodPost, "/checkout", validForm(), cookies)
	assert.Equal(t, http.StatusOK, w.Code, "a failed confirmation email does not undo the order")
	assert.Contains(t, w.Body.String(), "Thank you for your order")
	require.Len(t, orders.created, 1)

	after := doRequest(r, http.MethodGet, "/cartsize", nil, w.Result().Header.Values("Set-Cookie"))
	assert.Equal(t, "0", after.Body.String())
}
