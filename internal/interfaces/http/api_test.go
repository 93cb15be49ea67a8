package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/zonekids/zonekids-api/internal/application/analytics"
	"github.com/zonekids/zonekids-api/internal/application/apptest"
	"github.com/zonekids/zonekids-api/internal/application/auth"
	cartuc "github.com/zonekids/zonekids-api/internal/application/cart"
	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	domcheckout "github.com/zonekids/zonekids-api/internal/domain/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/infrastructure/html"
	"github.com/zonekids/zonekids-api/internal/infrastructure/memory"
	"github.com/zonekids/zonekids-api/internal/infrastructure/pdf"
	apphttp "github.com/zonekids/zonekids-api/internal/interfaces/http"
)

type apiEnv struct {
	app      *fiber.App
	products *apptest.Products
	orders   *apptest.Orders
}

// envelope sobre de respuesta con data sin tipar.
type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field          string `json:"field"`
		DefaultMessage string `json:"defaultMessage"`
	} `json:"errors"`
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	products := apptest.NewProducts(
		&entity.Product{ID: "p1", Name: "Polera rayas", Price: 10000, Stock: 3, Category: "Poleras", Status: entity.ProductStatusActive, ImageURLs: []string{"/a.png", "/b.png"}},
		&entity.Product{ID: "p2", Name: "Short jeans", Price: 15000, Stock: 1, Category: "Shorts", Status: entity.ProductStatusActive, ImageURLs: []string{"/c.png", "/d.png"}},
		&entity.Product{ID: "p3", Name: "Gorro lana", Price: 5000, Stock: 9, Category: "Accesorios", Status: entity.ProductStatusInactive, ImageURLs: []string{"/e.png", "/f.png"}},
	)
	users := apptest.NewUsers(
		&entity.User{ID: testUserID, Name: "Ana", Email: testEmail, Role: entity.RoleCliente, Status: entity.UserStatusActive},
	)
	orders := apptest.NewOrders()
	tx := &apptest.TxRunner{Products: products, Orders: orders}
	carts := cartuc.NewCartUseCase(memory.NewCartStore(24*time.Hour, nil), products, 24*time.Hour, nil)
	orderUC := checkout.NewOrderUseCase(orders, tx, nil)
	renderer, err := html.NewVoucherRenderer()
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(users, apptest.NewPersonalData(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, "jefe@zonekids.cl", nil),
		ProductUC:      usecase.NewProductUseCase(products, nil, nil),
		UserUC:         usecase.NewUserUseCase(users, "jefe@zonekids.cl", nil),
		PersonalDataUC: usecase.NewPersonalDataUseCase(apptest.NewPersonalData()),
		CartUC:         carts,
		CheckoutUC:     checkout.NewCheckoutUseCase(carts, products, users, tx, domcheckout.DefaultRates(), nil),
		OrderUC:        orderUC,
		VoucherUC:      checkout.NewVoucherUseCase(orderUC, pdf.NewMarotoPDFGenerator(), renderer),
		DashboardUC:    appanalytics.NewDashboardUseCase(&apptest.Dashboard{}),
		JWTSecret:      testJWTSecret,
	})
	return &apiEnv{app: app, products: products, orders: orders}
}

func (e *apiEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	resp.Body.Close()
	return resp, env
}

func TestAPI_CatalogoPublicoOcultaInactivos(t *testing.T) {
	e := newAPI(t)

	resp, env := e.do(t, http.MethodGet, "/api/v1/productos", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	resp, _ = e.do(t, http.MethodGet, "/api/v1/productos/p3", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/api/v1/productos/p3/similares", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/api/v1/productos/p3/similares", nil, map[string]string{"Authorization": tokenForRole(t, "vendedor")})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = e.do(t, http.MethodGet, "/api/v1/productos", nil, map[string]string{"Authorization": tokenForRole(t, "vendedor")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 3)
}

func TestAPI_CrearProductoRequiereStaff(t *testing.T) {
	e := newAPI(t)
	body := map[string]interface{}{
		"nombre": "Vestido flores", "precio": "$12.990", "stock": 4, "categoria": "Vestidos",
		"imagenesUrl": []string{"/x.png", "/y.png"},
	}

	resp, _ := e.do(t, http.MethodPost, "/api/v1/productos", body, map[string]string{"Authorization": tokenForRole(t, "cliente")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := e.do(t, http.MethodPost, "/api/v1/productos", body, map[string]string{"Authorization": tokenForRole(t, "admin")})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, float64(12990), p["precio"])
	assert.Equal(t, "activo", p["estado"])
}

func TestAPI_CrearProductoValidaCampos(t *testing.T) {
	e := newAPI(t)
	body := map[string]interface{}{"nombre": "Ve", "precio": 0, "imagenesUrl": []string{"/x.png"}}

	resp, env := e.do(t, http.MethodPost, "/api/v1/productos", body, map[string]string{"Authorization": tokenForRole(t, "admin")})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	fields := map[string]bool{}
	for _, fe := range env.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["nombre"])
	assert.True(t, fields["precio"])
	assert.True(t, fields["categoria"])
	assert.True(t, fields["imagenesUrl"])
}

func TestAPI_CarritoInvitado(t *testing.T) {
	e := newAPI(t)

	resp, _ := e.do(t, http.MethodPost, "/api/v1/carrito/items", map[string]string{"productoId": "p1"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := resp.Header.Get(apphttp.HeaderCartToken)
	require.NotEmpty(t, token, "el servidor debe entregar un token de invitado")

	h := map[string]string{apphttp.HeaderCartToken: token}
	_, _ = e.do(t, http.MethodPost, "/api/v1/carrito/items", map[string]string{"productoId": "p1"}, h)
	resp, env := e.do(t, http.MethodGet, "/api/v1/carrito", nil, h)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart struct {
		Count int   `json:"cantidadTotal"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, int64(20000), cart.Total)

	// cantidad 0 elimina
	resp, env = e.do(t, http.MethodPut, "/api/v1/carrito/items/p1", map[string]int{"cantidad": 0}, h)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 0, cart.Count)
}

func TestAPI_CarritoProductoInactivo(t *testing.T) {
	e := newAPI(t)
	resp, env := e.do(t, http.MethodPost, "/api/v1/carrito/items", map[string]string{"productoId": "p3"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "PRODUCT_INACTIVE", env.Code)

	resp, env = e.do(t, http.MethodPost, "/api/v1/carrito/items", map[string]string{"productoId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestAPI_FusionarCarrito(t *testing.T) {
	e := newAPI(t)
	resp, _ := e.do(t, http.MethodPost, "/api/v1/carrito/items", map[string]string{"productoId": "p2"}, nil)
	token := resp.Header.Get(apphttp.HeaderCartToken)

	bearer := tokenForRole(t, "cliente")
	resp, env := e.do(t, http.MethodPost, "/api/v1/carrito/fusionar", nil, map[string]string{
		"Authorization": bearer, apphttp.HeaderCartToken: token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart struct {
		Count int `json:"cantidadTotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 1, cart.Count)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/carrito/fusionar", nil, map[string]string{"Authorization": bearer})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Cupon(t *testing.T) {
	e := newAPI(t)

	resp, env := e.do(t, http.MethodPost, "/api/v1/checkout/cupon", map[string]string{"codigo": "saco7"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "SACO7", c["codigo"])
	assert.Equal(t, float64(50), c["descuentoPorcentaje"])

	resp, env = e.do(t, http.MethodPost, "/api/v1/checkout/cupon", map[string]string{"codigo": "NOEXISTE"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_COUPON", env.Code)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/checkout/cupon", map[string]string{"codigo": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func validOrderBody(items ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"comprador": map[string]string{
			"nombre": "Ana Pérez", "email": "ana@zonekids.cl", "rut": "123456785",
			"direccion": "Av. Matta 100", "metodoPago": "tarjeta",
		},
		"cupon": "PROFEVIVIAN",
		"items": items,
	}
}

func TestAPI_CheckoutRequiereSesion(t *testing.T) {
	e := newAPI(t)
	resp, _ := e.do(t, http.MethodPost, "/api/v1/checkout", validOrderBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CheckoutCompradorInvalido(t *testing.T) {
	e := newAPI(t)
	body := validOrderBody(map[string]interface{}{"productoId": "p1", "cantidad": 1})
	body["comprador"] = map[string]string{"nombre": "A1", "email": "malo", "rut": "12", "direccion": "x", "metodoPago": "bitcoin"}

	resp, env := e.do(t, http.MethodPost, "/api/v1/checkout", body, map[string]string{"Authorization": tokenForRole(t, "cliente")})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	assert.Len(t, env.Errors, 5)
}

func TestAPI_CheckoutCreaOrdenYDescuentaStock(t *testing.T) {
	e := newAPI(t)
	headers := map[string]string{"Authorization": tokenForRole(t, "cliente")}

	resp, env := e.do(t, http.MethodPost, "/api/v1/checkout",
		validOrderBody(map[string]interface{}{"productoId": "p1", "cantidad": 2}), headers)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var order struct {
		ID     string `json:"id"`
		Status string `json:"estado"`
		Totals struct {
			FreeShipping bool   `json:"envioGratis"`
			Total        string `json:"total"`
		} `json:"totales"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.Totals.FreeShipping)
	assert.Equal(t, "21000", order.Totals.Total) // 20000 + 5% IVA, envío gratis

	p, err := e.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	// historial
	resp, env = e.do(t, http.MethodGet, "/api/v1/ordenes/mias", nil, headers)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	// boleta HTML imprimible
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ordenes/"+order.ID+"/boleta.html", nil)
	req.Header.Set("Authorization", headers["Authorization"])
	raw, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Contains(t, raw.Header.Get("Content-Type"), "text/html")

	// otro cliente no ve la orden
	resp, _ = e.do(t, http.MethodGet, "/api/v1/ordenes/"+order.ID, nil,
		map[string]string{"Authorization": tokenFor(t, "otro-usuario", "cliente")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_CheckoutStockInsuficiente(t *testing.T) {
	e := newAPI(t)
	resp, env := e.do(t, http.MethodPost, "/api/v1/checkout",
		validOrderBody(map[string]interface{}{"productoId": "p2", "cantidad": 5}),
		map[string]string{"Authorization": tokenForRole(t, "cliente")})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Code)

	p, err := e.products.GetByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock, "una compra rechazada no toca el stock")
}

func TestAPI_CheckoutCarritoVacio(t *testing.T) {
	e := newAPI(t)
	resp, env := e.do(t, http.MethodPost, "/api/v1/checkout", validOrderBody(),
		map[string]string{"Authorization": tokenForRole(t, "cliente")})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", env.Code)
}

func TestAPI_UsuariosSoloAdmin(t *testing.T) {
	e := newAPI(t)
	resp, _ := e.do(t, http.MethodGet, "/api/v1/usuarios", nil, map[string]string{"Authorization": tokenForRole(t, "vendedor")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/v1/usuarios", nil, map[string]string{"Authorization": tokenForRole(t, "admin")})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_AdminNoJefeNoCreaAdmins(t *testing.T) {
	e := newAPI(t)
	body := map[string]string{"nombre": "Carlos", "email": "carlos@zonekids.cl", "contrasena": "secreta123", "rol": "admin"}

	resp, env := e.do(t, http.MethodPost, "/api/v1/usuarios", body, map[string]string{"Authorization": tokenForRole(t, "admin")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "OWNER_ONLY", env.Code)
}

func TestAPI_RutaInexistente(t *testing.T) {
	e := newAPI(t)
	resp, env := e.do(t, http.MethodGet, "/api/v1/no-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)
}
